package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"likecli/internal/errors"
	"likecli/pkg/contracts/domain"
)

// LargeTable columns
const (
	ColumnLearner          = "Learner"
	ColumnModule           = "Module"
	ColumnClassDescription = "Class Description"
	ColumnCompletionStatus = "Completion Status"
	ColumnSumTimeSpent     = "Sum Time Spent"
	ColumnAccuracy         = "Accuracy"
	ColumnAccuracyClasses  = "Accuracy-Classes"
	ColumnSelfAssessment   = "Self Assessment"
)

// MetacognitionProgress columns
const (
	ColumnInitialConsciousCompetence         = "Initial Conscious Competence"
	ColumnInitialUnconsciousCompetence       = "Initial Unconscious Competence"
	ColumnInitialConsciousIncompetence       = "Initial Conscious Incompetence"
	ColumnInitialUnconsciousIncompetence     = "Initial Unconscious Incompetence"
	ColumnImprovementConsciousCompetence     = "Improvement Conscious Competence"
	ColumnImprovementUnconsciousIncompetence = "Improvement Unconscious Incompetence"
)

// headerRows is added to a data row index to get the 1-based line number
const headerRows = 2

// ParsePercent converts a cell like "85 %", "85,5%" or "0.4" to a Percent.
// Anything that is not a finite number yields a missing value.
func ParsePercent(raw string) domain.Percent {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	s = strings.ReplaceAll(s, "%", "")
	if s == "" {
		return domain.MissingPercent
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.MissingPercent
	}
	return domain.Pct(v)
}

// columnIndexes resolves names to positions and fails with a DataError that
// lists every absent column.
func columnIndexes(table *RawTable, names ...string) (map[string]int, error) {
	idx := make(map[string]int, len(names))
	var missing []string
	for _, name := range names {
		i := table.ColumnIndex(name)
		if i < 0 {
			missing = append(missing, name)
			continue
		}
		idx[name] = i
	}
	if len(missing) > 0 {
		return nil, errors.NewDataError(fmt.Sprintf("%s is missing required columns: %s",
			table.Source, strings.Join(missing, ", "))).
			WithContext("source", table.Source).
			WithContext("missing_columns", missing)
	}
	return idx, nil
}

// ParseLargeTable converts LargeTable rows into typed records.
// Percent cells degrade to missing; durations are kept raw.
func ParseLargeTable(table *RawTable) ([]domain.LearnerModuleRecord, error) {
	names := []string{
		ColumnCompletionStatus, ColumnModule, ColumnLearner, ColumnClassDescription,
		ColumnSumTimeSpent, ColumnAccuracy, ColumnAccuracyClasses,
	}
	for _, q := range domain.CompetenceQuadrants {
		names = append(names, q.Column())
	}
	idx, err := columnIndexes(table, names...)
	if err != nil {
		return nil, err
	}

	records := make([]domain.LearnerModuleRecord, 0, table.Len())
	for i := range table.Rows {
		rec := domain.LearnerModuleRecord{
			Row:              i + headerRows,
			Learner:          table.Cell(i, idx[ColumnLearner]),
			Module:           table.Cell(i, idx[ColumnModule]),
			ClassDescription: table.Cell(i, idx[ColumnClassDescription]),
			CompletionStatus: table.Cell(i, idx[ColumnCompletionStatus]),
			SumTimeSpent:     table.Cell(i, idx[ColumnSumTimeSpent]),
			Accuracy:         ParsePercent(table.Cell(i, idx[ColumnAccuracy])),
			AccuracyClass:    domain.AccuracyClass(strings.TrimSpace(table.Cell(i, idx[ColumnAccuracyClasses]))),
		}
		for _, q := range domain.CompetenceQuadrants {
			rec.Quadrants[q] = ParsePercent(table.Cell(i, idx[q.Column()]))
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseSelfAssessment converts SelfAssessment rows into typed records.
// The Learner column is optional.
func ParseSelfAssessment(table *RawTable) ([]domain.SelfAssessmentRecord, error) {
	idx, err := columnIndexes(table, ColumnModule, ColumnSelfAssessment)
	if err != nil {
		return nil, err
	}
	learnerCol := table.ColumnIndex(ColumnLearner)

	records := make([]domain.SelfAssessmentRecord, 0, table.Len())
	for i := range table.Rows {
		records = append(records, domain.SelfAssessmentRecord{
			Row:     i + headerRows,
			Learner: table.Cell(i, learnerCol),
			Module:  table.Cell(i, idx[ColumnModule]),
			Level:   domain.ProficiencyLevel(strings.TrimSpace(table.Cell(i, idx[ColumnSelfAssessment]))),
		})
	}
	return records, nil
}

// ParseMetacognition reads the six scalar fields from the first row.
// Values are fractions; a cell with a percent sign ("37%") is scaled down
// to the same fraction.
func ParseMetacognition(table *RawTable) (domain.MetacognitionSnapshot, error) {
	var snap domain.MetacognitionSnapshot

	fields := []struct {
		column string
		dest   *float64
	}{
		{ColumnInitialUnconsciousIncompetence, &snap.InitialUnconsciousIncompetence},
		{ColumnInitialConsciousIncompetence, &snap.InitialConsciousIncompetence},
		{ColumnInitialUnconsciousCompetence, &snap.InitialUnconsciousCompetence},
		{ColumnInitialConsciousCompetence, &snap.InitialConsciousCompetence},
		{ColumnImprovementConsciousCompetence, &snap.ImprovementConsciousCompetence},
		{ColumnImprovementUnconsciousIncompetence, &snap.ImprovementUnconsciousIncompetence},
	}

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.column
	}
	idx, err := columnIndexes(table, names...)
	if err != nil {
		return snap, err
	}
	if table.Len() == 0 {
		return snap, errors.NewDataError(fmt.Sprintf("%s has no data rows", table.Source)).
			WithContext("source", table.Source)
	}

	for _, f := range fields {
		raw := table.Cell(0, idx[f.column])
		p := ParsePercent(raw)
		if !p.Valid {
			return snap, errors.NewAppError(errors.ErrTypeData,
				fmt.Sprintf("%s: field %q is missing or not numeric", table.Source, f.column),
				errors.NewMalformedFieldError(f.column, headerRows, raw, nil))
		}
		value := p.Value
		if strings.Contains(raw, "%") {
			value /= 100
		}
		*f.dest = value
	}
	return snap, nil
}

// ParseObjectives converts the optional MostDifficultObjectives table. A nil
// table yields an empty result with the canonical columns.
func ParseObjectives(table *RawTable) domain.ObjectiveTable {
	if table == nil {
		return domain.ObjectiveTable{Columns: append([]string(nil), domain.CanonicalObjectiveColumns...)}
	}

	out := domain.ObjectiveTable{
		Columns: append([]string(nil), table.Columns...),
		Rows:    make([]domain.ObjectiveRow, 0, table.Len()),
	}
	metricCol := table.ColumnIndex(domain.ObjectiveColumnUnconsciouslyIncompetent)
	for i := range table.Rows {
		cells := make([]string, len(table.Columns))
		for c := range cells {
			cells[c] = table.Cell(i, c)
		}
		row := domain.ObjectiveRow{Cells: cells, UnconsciouslyIncompetent: domain.MissingPercent}
		if metricCol >= 0 {
			row.UnconsciouslyIncompetent = ParsePercent(cells[metricCol])
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}
