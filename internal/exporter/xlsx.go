package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"likecli/internal/errors"
	"likecli/pkg/contracts/domain"
)

// DefaultMinColumnWidth is the narrowest column the workbook writer produces
const DefaultMinColumnWidth = 10

// integerCell matches the values of numeric columns written as numbers
var integerCell = regexp.MustCompile(`^-?(0|[1-9]\d{0,14})$`)

// WriterOptions configures report file writers
type WriterOptions struct {
	// Overwrite replaces an existing destination; otherwise a numeric suffix is added
	Overwrite      bool
	MinColumnWidth int
}

// XLSXWriter writes a report as a workbook with one sheet per table
type XLSXWriter struct {
	logger  *slog.Logger
	options WriterOptions
}

// NewXLSXWriter creates a workbook writer; a nil logger uses slog.Default()
func NewXLSXWriter(logger *slog.Logger, options WriterOptions) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if options.MinColumnWidth <= 0 {
		options.MinColumnWidth = DefaultMinColumnWidth
	}
	return &XLSXWriter{
		logger:  logger.With(slog.String("component", "xlsx_writer")),
		options: options,
	}
}

// Write stores report at destination and returns the path actually written.
// The workbook is built in a temporary file next to the destination and
// renamed into place, so a failed write never leaves a partial report.
func (w *XLSXWriter) Write(ctx context.Context, report *domain.Report, destination string) (string, error) {
	if report == nil || report.Len() == 0 {
		return "", errors.NewAppValidationError("report has no sheets")
	}

	target, err := resolveDestination(destination, w.options.Overwrite)
	if err != nil {
		return "", err
	}

	w.logger.InfoContext(ctx, "Writing workbook",
		slog.String("path", target),
		slog.Int("sheets", report.Len()))

	book, err := w.buildWorkbook(report)
	if err != nil {
		return "", errors.NewStorageError("failed to build workbook", err)
	}
	defer book.Close()

	err = writeAtomic(ctx, target, func(f *os.File) error {
		return book.Write(f)
	})
	if err != nil {
		w.logger.ErrorContext(ctx, "Workbook write failed",
			slog.String("path", target),
			slog.String("error", err.Error()))
		return "", err
	}

	w.logger.InfoContext(ctx, "Workbook written", slog.String("path", target))
	return target, nil
}

func (w *XLSXWriter) buildWorkbook(report *domain.Report) (*excelize.File, error) {
	book := excelize.NewFile()

	bold, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		book.Close()
		return nil, err
	}

	for i, sheet := range report.Sheets() {
		if i == 0 {
			if err := book.SetSheetName(book.GetSheetName(0), sheet.Name()); err != nil {
				book.Close()
				return nil, err
			}
		} else if _, err := book.NewSheet(sheet.Name()); err != nil {
			book.Close()
			return nil, err
		}
		if err := w.fillSheet(book, sheet, bold); err != nil {
			book.Close()
			return nil, fmt.Errorf("sheet %q: %w", sheet.Name(), err)
		}
	}
	book.SetActiveSheet(0)
	return book, nil
}

func (w *XLSXWriter) fillSheet(book *excelize.File, sheet domain.Sheet, headerStyle int) error {
	name := sheet.Name()
	headers := sheet.Headers()
	widths := make([]int, len(headers))

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := book.SetCellStr(name, cell, h); err != nil {
			return err
		}
		widths[col] = utf8.RuneCountInString(h)
	}
	if len(headers) > 0 {
		last, err := excelize.CoordinatesToCellName(len(headers), 1)
		if err != nil {
			return err
		}
		if err := book.SetCellStyle(name, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range sheet.Rows() {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := setCell(book, name, cell, value, sheet.IsNumeric(col)); err != nil {
				return err
			}
			if n := utf8.RuneCountInString(value); n > widths[col] {
				widths[col] = n
			}
		}
	}

	for col, width := range widths {
		letter, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := book.SetColWidth(name, letter, letter, float64(columnWidth(width, w.options.MinColumnWidth))); err != nil {
			return err
		}
	}
	return nil
}

// setCell writes integers of numeric columns as numbers; everything else,
// including a numeric-looking class or objective name, stays text.
func setCell(book *excelize.File, sheet, cell, value string, numeric bool) error {
	if numeric && integerCell.MatchString(value) {
		n, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return book.SetCellValue(sheet, cell, n)
		}
	}
	return book.SetCellStr(sheet, cell, value)
}

// columnWidth is the content length plus padding, never below min
func columnWidth(contentLen, minWidth int) int {
	if contentLen+2 > minWidth {
		return contentLen + 2
	}
	return minWidth
}

// resolveDestination returns destination, or the first free "name (n).ext"
// when overwriting is disabled and destination exists.
func resolveDestination(destination string, overwrite bool) (string, error) {
	if destination == "" {
		return "", errors.NewAppValidationError("destination path is empty")
	}
	if overwrite {
		return destination, nil
	}
	if _, err := os.Stat(destination); os.IsNotExist(err) {
		return destination, nil
	}

	ext := filepath.Ext(destination)
	base := strings.TrimSuffix(destination, ext)
	for n := 1; n < 1000; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, n, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", errors.NewStorageError("no free file name for "+destination, nil)
}

// stagedFile is a fully written temporary file waiting to replace target
type stagedFile struct {
	tmp    string
	target string
}

// stageFile writes through a temporary file in the target directory. The
// target itself is untouched until commit.
func stageFile(target string, write func(*os.File) error) (*stagedFile, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.NewStorageError("failed to create output directory", err).
			WithContext("dir", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return nil, errors.NewStorageError("failed to create temporary file", err).
			WithContext("dir", dir)
	}
	tmpName := tmp.Name()
	written := false
	defer func() {
		if !written {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err := write(tmp); err != nil {
		return nil, errors.NewStorageError("failed to write report", err).WithContext("path", target)
	}
	if err := tmp.Sync(); err != nil {
		return nil, errors.NewStorageError("failed to flush report", err).WithContext("path", target)
	}
	if err := tmp.Close(); err != nil {
		return nil, errors.NewStorageError("failed to close report", err).WithContext("path", target)
	}
	written = true
	return &stagedFile{tmp: tmpName, target: target}, nil
}

// commit renames the temporary file over target
func (f *stagedFile) commit() error {
	if err := os.Rename(f.tmp, f.target); err != nil {
		return errors.NewStorageError("failed to move report into place", err).WithContext("path", f.target)
	}
	return nil
}

// discard removes the temporary file
func (f *stagedFile) discard() {
	os.Remove(f.tmp)
}

// commitAll renames every staged file into place. When one rename fails the
// files already moved are removed and the rest discarded.
func commitAll(ctx context.Context, staged []*stagedFile) error {
	if err := ctx.Err(); err != nil {
		for _, f := range staged {
			f.discard()
		}
		return errors.NewStorageError("report write cancelled", err)
	}
	for i, f := range staged {
		if err := f.commit(); err != nil {
			for _, done := range staged[:i] {
				os.Remove(done.target)
			}
			for _, rest := range staged[i:] {
				rest.discard()
			}
			return err
		}
	}
	return nil
}

// writeAtomic stages target and renames it into place once write succeeded
func writeAtomic(ctx context.Context, target string, write func(*os.File) error) error {
	staged, err := stageFile(target, write)
	if err != nil {
		return err
	}
	return commitAll(ctx, []*stagedFile{staged})
}
