package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsheet/pkg/source"
)

// columnsCommand lists the columns of a spreadsheet with sample values.
func (c *CLI) columnsCommand() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "columns <file>",
		Short: "List the columns of a spreadsheet",
		Long: `Columns prints every header of a spreadsheet with its 0-based index and the
first few values, to find the index to pass to "generate --column".`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: spreadsheetArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := source.Preview(args[0], sheet, pickerSamples)
			if err != nil {
				return err
			}
			if len(t.Header) == 0 {
				printWarning("No columns found")
				return nil
			}

			headers := []string{"", "#", "Header"}
			for i := 0; i < pickerSamples; i++ {
				headers = append(headers, fmt.Sprintf("Row %d", i+1))
			}
			printTable(headers, columnRows(t, -1))
			printNextStep("Generate from a column", fmt.Sprintf("qrsheet generate %s --column <#>", args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet name (default: first sheet)")
	return cmd
}
