package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"likecli/internal/errors"
	"likecli/pkg/contracts/domain"
)

// utf8BOM lets spreadsheet programs recognise the encoding
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter exports every report sheet as its own semicolon separated file
type CSVWriter struct {
	logger  *slog.Logger
	options WriterOptions
	comma   rune
}

// NewCSVWriter creates a CSV writer; a nil logger uses slog.Default()
func NewCSVWriter(logger *slog.Logger, options WriterOptions) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{
		logger:  logger.With(slog.String("component", "csv_writer")),
		options: options,
		comma:   ';',
	}
}

// SheetFileName is the file a sheet is exported to, next to base:
// "20240131_Like_Auswertung.xlsx" + "Time Needed" -> "20240131_Like_Auswertung_Time_Needed.csv"
func SheetFileName(base, sheet string) string {
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "_" + strings.ReplaceAll(sheet, " ", "_") + ".csv"
}

// Write exports each sheet of report and returns the paths written, in sheet
// order. Every sheet is staged first, so a failure leaves none of them behind.
func (w *CSVWriter) Write(ctx context.Context, report *domain.Report, destination string) ([]string, error) {
	if report == nil || report.Len() == 0 {
		return nil, errors.NewAppValidationError("report has no sheets")
	}

	staged := make([]*stagedFile, 0, report.Len())
	discard := func() {
		for _, f := range staged {
			f.discard()
		}
	}

	for _, sheet := range report.Sheets() {
		target, err := resolveDestination(SheetFileName(destination, sheet.Name()), w.options.Overwrite)
		if err != nil {
			discard()
			return nil, err
		}

		f, err := stageFile(target, func(f *os.File) error {
			return w.writeSheet(f, sheet)
		})
		if err != nil {
			w.logger.ErrorContext(ctx, "CSV export failed",
				slog.String("sheet", sheet.Name()),
				slog.String("path", target),
				slog.String("error", err.Error()))
			discard()
			return nil, err
		}
		staged = append(staged, f)
	}

	if err := commitAll(ctx, staged); err != nil {
		w.logger.ErrorContext(ctx, "CSV export failed", slog.String("error", err.Error()))
		return nil, err
	}

	paths := make([]string, 0, len(staged))
	for _, f := range staged {
		paths = append(paths, f.target)
	}
	w.logger.InfoContext(ctx, "CSV export complete", slog.Int("files", len(paths)))
	return paths, nil
}

func (w *CSVWriter) writeSheet(out io.Writer, sheet domain.Sheet) error {
	if _, err := out.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(out)
	writer.Comma = w.comma

	if err := writer.Write(sheet.Headers()); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, row := range sheet.Rows() {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
