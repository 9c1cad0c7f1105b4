package dataprocessing

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"likecli/internal/errors"
)

// DefaultDelimiter is the field separator used by the platform exports
const DefaultDelimiter = ';'

// RawTable is a delimiter-separated export loaded as strings.
// Column names keep their case; surrounding whitespace and any BOM are removed.
type RawTable struct {
	Source  string
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named column, or -1.
// An exact match wins; otherwise the first case-insensitive match of the
// trimmed name is used, which is the same rule the schema detector applies.
func (t *RawTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	want := normalizeColumn(name)
	for i, c := range t.Columns {
		if normalizeColumn(c) == want {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column is present
func (t *RawTable) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the value at row, col or "" when the row is short
func (t *RawTable) Cell(row, col int) string {
	if col < 0 || row < 0 || row >= len(t.Rows) || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Len returns the number of data rows
func (t *RawTable) Len() int {
	return len(t.Rows)
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// TableReader loads platform exports into RawTables.
type TableReader struct {
	logger    *slog.Logger
	delimiter rune
}

// NewTableReader creates a reader for the given delimiter.
// A zero delimiter selects DefaultDelimiter.
func NewTableReader(logger *slog.Logger, delimiter rune) *TableReader {
	if logger == nil {
		logger = slog.Default()
	}
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	return &TableReader{
		logger:    logger.With(slog.String("component", "table_reader")),
		delimiter: delimiter,
	}
}

// ReadFile loads the whole file at path
func (r *TableReader) ReadFile(ctx context.Context, path string) (*RawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer file.Close()

	table, err := r.Read(path, file)
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "Table loaded",
		slog.String("file", path),
		slog.Int("columns", len(table.Columns)),
		slog.Int("rows", table.Len()))
	return table, nil
}

// Read parses a table from in; source names it in errors.
func (r *TableReader) Read(source string, in io.Reader) (*RawTable, error) {
	cr := r.newCSVReader(in)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewDataError(fmt.Sprintf("%s has no header row", source)).
			WithContext("source", source)
	}
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to read header of %s", source), err)
	}

	table := &RawTable{Source: source, Columns: cleanHeader(header)}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParsingError(fmt.Sprintf("failed to read %s", source), err)
		}
		table.Rows = append(table.Rows, record)
	}
	return table, nil
}

// ReadHeader reads only the first row of the file at path
func (r *TableReader) ReadHeader(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer file.Close()

	header, err := r.newCSVReader(file).Read()
	if err == io.EOF {
		return nil, errors.NewDataError(fmt.Sprintf("%s has no header row", path))
	}
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to read header of %s", path), err)
	}
	return cleanHeader(header), nil
}

// newCSVReader decodes UTF-8 with or without BOM (and BOM-marked UTF-16)
func (r *TableReader) newCSVReader(in io.Reader) *csv.Reader {
	decoded := transform.NewReader(in, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(decoded)
	cr.Comma = r.delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return out
}
