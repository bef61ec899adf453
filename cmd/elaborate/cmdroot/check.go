package cmdroot

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Elaborate a term and report its inferred type",
	Long: `Elaborate parses and infers the top-level term in file (or stdin),
printing the term's inferred type on success and a structured error
report on failure.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	res, cfg, err := runElaborate(args)
	if err != nil {
		return err
	}
	_, okf := colorizer(cfg)
	fmt.Println(okf(termString(res.Type)))
	return nil
}
