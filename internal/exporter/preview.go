package exporter

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"likecli/pkg/contracts/domain"
)

// Preview prints every sheet of report as a text table
func Preview(out io.Writer, report *domain.Report) error {
	for i, sheet := range report.Sheets() {
		if i > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(out, "== %s ==\n", sheet.Name()); err != nil {
			return err
		}

		table := tablewriter.NewWriter(out)
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)
		table.SetHeader(sheet.Headers())
		table.AppendBulk(sheet.Rows())
		table.Render()
	}
	return nil
}
