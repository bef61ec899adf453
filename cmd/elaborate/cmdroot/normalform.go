package cmdroot

import (
	"fmt"

	"github.com/elabkit/holecalc/internal/elaborate"
	"github.com/spf13/cobra"
)

var normalFormCmd = &cobra.Command{
	Use:     "normal-form [file]",
	Aliases: []string{"nf"},
	Short:   "Elaborate a term and print its normal form",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runNormalForm,
}

func init() {
	rootCmd.AddCommand(normalFormCmd)
}

func runNormalForm(cmd *cobra.Command, args []string) error {
	res, cfg, err := runElaborate(args)
	if err != nil {
		return err
	}
	nf := elaborate.NormalForm(res.Metas, res.Term)
	_, okf := colorizer(cfg)
	fmt.Println(okf(termString(nf)))
	return nil
}
