package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsheet/pkg/grid"
	"github.com/matzehuels/qrsheet/pkg/pipeline"
)

// layoutCommand previews the page grid for a request without encoding
// anything.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags      generationFlags
		count      int
		placements bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show the page grid for a symbol size and margins",
		Example: `  qrsheet layout --count 500 --size 75 --page-margin 20
  qrsheet layout --count 3 --placements`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, c.Config.Defaults)
			opts.Output = pipeline.OutputPDF
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			l, err := grid.Compute(opts.LayoutParams(), count)
			if err != nil {
				return err
			}
			printLayout(l, opts.Page)
			if placements {
				printPlacements(l)
			}
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of codes to paginate")
	cmd.Flags().BoolVar(&placements, "placements", false, "list the position of every symbol")
	return cmd
}

func printLayout(l grid.Layout, page string) {
	printKeyValue("page", fmt.Sprintf("%s (%.1f × %.1f pt)", page, l.PageWidth, l.PageHeight))
	printKeyValue("symbol", fmt.Sprintf("%g pt, margin %g pt", l.SymbolSize, l.SymbolMargin))
	printKeyValue("grid", fmt.Sprintf("%d columns × %d rows", l.Columns, l.Rows))
	printKeyValue("per page", StyleNumber.Render(fmt.Sprint(l.ItemsPerPage)))
	printKeyValue("spacing", fmt.Sprintf("%.2f pt horizontal, %.2f pt vertical", l.HorizontalSpacing, l.VerticalSpacing))
	if l.ItemCount > 0 {
		printKeyValue("pages", StyleNumber.Render(fmt.Sprintf("%d for %d codes", l.TotalPages, l.ItemCount)))
	}
}

func printPlacements(l grid.Layout) {
	var rows [][]string
	for i, p := range l.Placements() {
		rows = append(rows, []string{
			fmt.Sprint(i),
			fmt.Sprint(p.Page + 1),
			fmt.Sprintf("%.2f", p.X),
			fmt.Sprintf("%.2f", p.Y),
		})
	}
	printTable([]string{"#", "Page", "X", "Y"}, rows)
}
