package domain

import "fmt"

// Report sheet names in their fixed order
const (
	SheetParticipants   = "Participants Completed"
	SheetTimeNeeded     = "Time Needed"
	SheetAvgAccuracy    = "Avg Accuracy"
	SheetMetacognition  = "Metacognition Progress"
	SheetModuleAccuracy = "Accuracy Per Module"
	SheetSelfAssessment = "Self Assessment Per Module"
	SheetCompetence     = "Competence Level Per Module"
	SheetObjectives     = "5 Most Difficult Objectives"
)

// SheetNames lists every report sheet in output order
var SheetNames = []string{
	SheetParticipants,
	SheetTimeNeeded,
	SheetAvgAccuracy,
	SheetMetacognition,
	SheetModuleAccuracy,
	SheetSelfAssessment,
	SheetCompetence,
	SheetObjectives,
}

// Sheet is one named table of display strings
type Sheet struct {
	name    string
	headers []string
	rows    [][]string
	numeric []bool
}

// NewSheet builds a sheet, copying its inputs. Every row must have one cell per header.
func NewSheet(name string, headers []string, rows [][]string) (Sheet, error) {
	if name == "" {
		return Sheet{}, fmt.Errorf("sheet name is empty")
	}
	copied := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) != len(headers) {
			return Sheet{}, fmt.Errorf("sheet %q row %d has %d cells, want %d", name, i, len(row), len(headers))
		}
		copied[i] = append([]string(nil), row...)
	}
	return Sheet{
		name:    name,
		headers: append([]string(nil), headers...),
		rows:    copied,
	}, nil
}

// Name returns the sheet name
func (s Sheet) Name() string { return s.name }

// Headers returns a copy of the column headers
func (s Sheet) Headers() []string { return append([]string(nil), s.headers...) }

// RowCount returns the number of data rows
func (s Sheet) RowCount() int { return len(s.rows) }

// Row returns a copy of data row i
func (s Sheet) Row(i int) []string { return append([]string(nil), s.rows[i]...) }

// WithNumericColumns returns a copy of s whose named columns hold integer
// counts. Names that are not headers of s are ignored.
func (s Sheet) WithNumericColumns(names ...string) Sheet {
	numeric := make([]bool, len(s.headers))
	copy(numeric, s.numeric)
	for _, name := range names {
		for i, h := range s.headers {
			if h == name {
				numeric[i] = true
			}
		}
	}
	s.numeric = numeric
	return s
}

// IsNumeric reports whether column col holds integer counts
func (s Sheet) IsNumeric(col int) bool {
	return col >= 0 && col < len(s.numeric) && s.numeric[col]
}

// Rows returns a copy of all data rows
func (s Sheet) Rows() [][]string {
	out := make([][]string, len(s.rows))
	for i := range s.rows {
		out[i] = s.Row(i)
	}
	return out
}

// Report is the ordered, immutable set of sheets produced by one run
type Report struct {
	sheets []Sheet
}

// NewReport builds a report from sheets in output order. Names must be unique.
func NewReport(sheets ...Sheet) (*Report, error) {
	seen := make(map[string]bool, len(sheets))
	for _, s := range sheets {
		if seen[s.name] {
			return nil, fmt.Errorf("duplicate sheet name %q", s.name)
		}
		seen[s.name] = true
	}
	return &Report{sheets: append([]Sheet(nil), sheets...)}, nil
}

// Sheets returns the sheets in output order
func (r *Report) Sheets() []Sheet {
	return append([]Sheet(nil), r.sheets...)
}

// Sheet returns the sheet with the given name
func (r *Report) Sheet(name string) (Sheet, bool) {
	for _, s := range r.sheets {
		if s.name == name {
			return s, true
		}
	}
	return Sheet{}, false
}

// Len returns the number of sheets
func (r *Report) Len() int { return len(r.sheets) }
