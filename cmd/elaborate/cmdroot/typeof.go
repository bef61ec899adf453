package cmdroot

import (
	"fmt"

	"github.com/elabkit/holecalc/internal/elaborate"
	"github.com/spf13/cobra"
)

var typeOfCmd = &cobra.Command{
	Use:   "type-of [file]",
	Short: "Print a term's inferred type in normal form",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTypeOf,
}

func init() {
	rootCmd.AddCommand(typeOfCmd)
}

func runTypeOf(cmd *cobra.Command, args []string) error {
	res, cfg, err := runElaborate(args)
	if err != nil {
		return err
	}
	nf := elaborate.NormalForm(res.Metas, res.Type)
	_, okf := colorizer(cfg)
	fmt.Println(okf(termString(nf)))
	return nil
}
