// Package exporter renders analysis results into the report and writes it out.
//
// BuildReport turns analytics.Results into the eight display sheets, using
// FormatOptions for percentages ("50,0%") and FormatHoursMinutes for
// durations ("1h 30m"). The writers then store the report:
//
// XLSXWriter: one workbook, one sheet per table, bold headers and columns
// sized to their content.
//
// CSVWriter: one semicolon separated file per sheet with a UTF-8 BOM.
//
// Preview: text tables for the terminal.
//
// Both file writers go through a temporary file and a rename, so a failed
// export never leaves a partial report behind.
//
// Example usage:
//
//	report, err := exporter.BuildReport(results, exporter.DefaultFormatOptions())
//	if err != nil {
//		return err
//	}
//	path, err := exporter.NewXLSXWriter(logger, exporter.WriterOptions{Overwrite: true}).
//		Write(ctx, report, "out/20240131_Like_Auswertung.xlsx")
package exporter
