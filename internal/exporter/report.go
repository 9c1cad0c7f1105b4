package exporter

import (
	"fmt"
	"strconv"

	"likecli/internal/analytics"
	"likecli/pkg/contracts/domain"
)

// Column headers of the fixed report sheets
const (
	HeaderDescription      = "Description"
	HeaderValue            = "Value"
	HeaderClassDescription = "Class Description"
	HeaderModule           = "Module"
	HeaderAverageAccuracy  = "Average Accuracy (all modules)"

	LabelParticipantsCompleted = "Amount Of Participants Who Completed All Modules"
)

// TimeHeaders are the columns of the Time Needed sheet
var TimeHeaders = []string{
	HeaderClassDescription,
	"Average Time Needed To Complete All Modules",
	"Min. Time Needed To Complete All Modules",
	"Max. Time Needed To Complete All Modules",
	"Total Time Needed To Complete All Modules",
}

// BuildReport renders the analysis results into the eight report sheets
func BuildReport(results *analytics.Results, opts FormatOptions) (*domain.Report, error) {
	if results == nil {
		return nil, fmt.Errorf("build report: no results")
	}
	opts = opts.withDefaults()

	builders := []func() (domain.Sheet, error){
		func() (domain.Sheet, error) { return participantsSheet(results) },
		func() (domain.Sheet, error) { return timeSheet(results) },
		func() (domain.Sheet, error) { return accuracySheet(results, opts) },
		func() (domain.Sheet, error) { return metacognitionSheet(results, opts) },
		func() (domain.Sheet, error) { return moduleAccuracySheet(results, opts) },
		func() (domain.Sheet, error) { return selfAssessmentSheet(results, opts) },
		func() (domain.Sheet, error) { return competenceSheet(results, opts) },
		func() (domain.Sheet, error) { return objectivesSheet(results) },
	}

	sheets := make([]domain.Sheet, 0, len(builders))
	for _, build := range builders {
		sheet, err := build()
		if err != nil {
			return nil, fmt.Errorf("build report: %w", err)
		}
		sheets = append(sheets, sheet)
	}
	return domain.NewReport(sheets...)
}

func participantsSheet(r *analytics.Results) (domain.Sheet, error) {
	sheet, err := domain.NewSheet(domain.SheetParticipants,
		[]string{HeaderDescription, HeaderValue},
		[][]string{{LabelParticipantsCompleted, strconv.Itoa(r.ParticipantsCompleted())}})
	if err != nil {
		return sheet, err
	}
	return sheet.WithNumericColumns(HeaderValue), nil
}

func timeSheet(r *analytics.Results) (domain.Sheet, error) {
	rows := make([][]string, 0, len(r.Time))
	for _, t := range r.Time {
		rows = append(rows, []string{
			t.ClassDescription,
			FormatHoursMinutes(t.Mean),
			FormatHoursMinutes(t.Min),
			FormatHoursMinutes(t.Max),
			FormatHoursMinutes(t.Total),
		})
	}
	return domain.NewSheet(domain.SheetTimeNeeded, TimeHeaders, rows)
}

func accuracySheet(r *analytics.Results, opts FormatOptions) (domain.Sheet, error) {
	rows := make([][]string, 0, len(r.Accuracy))
	for _, a := range r.Accuracy {
		rows = append(rows, []string{a.ClassDescription, FormatPercentValue(a.MeanAccuracy, opts)})
	}
	return domain.NewSheet(domain.SheetAvgAccuracy,
		[]string{HeaderClassDescription, HeaderAverageAccuracy}, rows)
}

func metacognitionSheet(r *analytics.Results, opts FormatOptions) (domain.Sheet, error) {
	rows := make([][]string, 0, len(r.Metacognition.Entries))
	for _, e := range r.Metacognition.Entries {
		rows = append(rows, []string{e.Label, FormatIntPercent(e.Value, opts)})
	}
	return domain.NewSheet(domain.SheetMetacognition,
		[]string{HeaderDescription, HeaderValue}, rows)
}

func moduleAccuracySheet(r *analytics.Results, opts FormatOptions) (domain.Sheet, error) {
	headers := []string{HeaderModule}
	for _, c := range domain.AccuracyClasses {
		headers = append(headers, string(c))
	}
	headers = append(headers, bandLabels(domain.AccuracyBands)...)

	rows := make([][]string, 0, len(r.ModuleAccuracy))
	for _, m := range r.ModuleAccuracy {
		rows = append(rows, distributionRow(m.Module, m.Shares, m.Bands, opts))
	}
	return domain.NewSheet(domain.SheetModuleAccuracy, headers, rows)
}

func selfAssessmentSheet(r *analytics.Results, opts FormatOptions) (domain.Sheet, error) {
	headers := []string{HeaderModule}
	for _, l := range domain.ProficiencyLevels {
		headers = append(headers, string(l))
	}
	headers = append(headers, bandLabels(domain.LevelBands)...)

	rows := make([][]string, 0, len(r.SelfAssessment))
	for _, m := range r.SelfAssessment {
		rows = append(rows, distributionRow(m.Module, m.Shares, m.Bands, opts))
	}
	return domain.NewSheet(domain.SheetSelfAssessment, headers, rows)
}

func competenceSheet(r *analytics.Results, opts FormatOptions) (domain.Sheet, error) {
	headers := []string{HeaderModule}
	for _, q := range domain.CompetenceQuadrants {
		headers = append(headers, q.Column())
	}
	headers = append(headers, bandLabels(domain.CompetenceBands)...)

	rows := make([][]string, 0, len(r.Competence))
	for _, m := range r.Competence {
		row := []string{m.Module}
		for _, p := range m.Means {
			row = append(row, FormatPercentValue(p, opts))
		}
		for _, p := range m.Bands {
			row = append(row, FormatPercentValue(p, opts))
		}
		rows = append(rows, row)
	}
	return domain.NewSheet(domain.SheetCompetence, headers, rows)
}

func objectivesSheet(r *analytics.Results) (domain.Sheet, error) {
	columns := r.Objectives.Columns
	if len(columns) == 0 {
		columns = domain.CanonicalObjectiveColumns
	}
	rows := make([][]string, 0, len(r.Objectives.Rows))
	for _, o := range r.Objectives.Rows {
		rows = append(rows, o.Cells)
	}
	sheet, err := domain.NewSheet(domain.SheetObjectives, columns, rows)
	if err != nil {
		return sheet, err
	}
	return sheet.WithNumericColumns(domain.ObjectiveColumnWrongAnswers), nil
}

func distributionRow(module string, shares, bands []float64, opts FormatOptions) []string {
	row := make([]string, 0, 1+len(shares)+len(bands))
	row = append(row, module)
	for _, v := range shares {
		row = append(row, FormatPercent(v, opts))
	}
	for _, v := range bands {
		row = append(row, FormatPercent(v, opts))
	}
	return row
}

func bandLabels[T comparable](bands []domain.Band[T]) []string {
	labels := make([]string, 0, len(bands))
	for _, b := range bands {
		labels = append(labels, b.Label)
	}
	return labels
}
