package cmdroot

import (
	"fmt"

	"github.com/elabkit/holecalc/internal/surface"
	"github.com/spf13/cobra"
)

var prettyCmd = &cobra.Command{
	Use:   "pretty [file]",
	Short: "Parse a term and echo back how it parsed, without elaborating",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPretty,
}

func init() {
	rootCmd.AddCommand(prettyCmd)
}

func runPretty(cmd *cobra.Command, args []string) error {
	raw, err := parseInput(args)
	if err != nil {
		return err
	}
	fmt.Println(surface.Print(raw))
	return nil
}
