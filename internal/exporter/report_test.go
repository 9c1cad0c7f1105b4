package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"likecli/internal/analytics"
	"likecli/internal/shared/testutil"
	"likecli/pkg/contracts/domain"
)

func sheet(t *testing.T, report *domain.Report, name string) domain.Sheet {
	t.Helper()
	s, ok := report.Sheet(name)
	require.True(t, ok, "sheet %q", name)
	return s
}

func TestBuildReport_SheetOrder(t *testing.T) {
	report := scenarioReport(t)

	var names []string
	for _, s := range report.Sheets() {
		names = append(names, s.Name())
	}
	assert.Equal(t, domain.SheetNames, names)
}

func TestBuildReport_NumericColumns(t *testing.T) {
	s := sheet(t, scenarioReport(t), domain.SheetObjectives)
	for col, h := range s.Headers() {
		assert.Equal(t, h == domain.ObjectiveColumnWrongAnswers, s.IsNumeric(col), h)
	}

	for _, name := range []string{domain.SheetAvgAccuracy, domain.SheetTimeNeeded, domain.SheetModuleAccuracy} {
		s := sheet(t, scenarioReport(t), name)
		for col := range s.Headers() {
			assert.False(t, s.IsNumeric(col), "%s column %d", name, col)
		}
	}
}

func TestBuildReport_Contents(t *testing.T) {
	report := scenarioReport(t)

	t.Run("participants", func(t *testing.T) {
		s := sheet(t, report, domain.SheetParticipants)
		assert.Equal(t, []string{"Description", "Value"}, s.Headers())
		assert.Equal(t, [][]string{{"Amount Of Participants Who Completed All Modules", "3"}}, s.Rows())
		assert.False(t, s.IsNumeric(0))
		assert.True(t, s.IsNumeric(1))
	})

	t.Run("time needed", func(t *testing.T) {
		s := sheet(t, report, domain.SheetTimeNeeded)
		assert.Equal(t, TimeHeaders, s.Headers())
		assert.Equal(t, [][]string{
			{"A", "1h 52m", "1h 30m", "2h 15m", "3h 45m"},
			{"B", "0h 30m", "0h 30m", "0h 30m", "0h 30m"},
		}, s.Rows())
	})

	t.Run("average accuracy", func(t *testing.T) {
		s := sheet(t, report, domain.SheetAvgAccuracy)
		assert.Equal(t, []string{"Class Description", "Average Accuracy (all modules)"}, s.Headers())
		assert.Equal(t, [][]string{{"A", "67,5%"}, {"B", "100,0%"}}, s.Rows())
	})

	t.Run("metacognition", func(t *testing.T) {
		s := sheet(t, report, domain.SheetMetacognition)
		assert.Equal(t, [][]string{
			{"Initial Unconscious Incompetence (UI)", "35%"},
			{"Initial Conscious Incompetence (CI)", "30%"},
			{"Initial Unconscious Competence (UC)", "10%"},
			{"Initial Conscious Competence (CC)", "25%"},
			{"Knowledge increase (Metacognition Progress)", "37%"},
			{"Reduction Unconscious Incompetence", "12%"},
		}, s.Rows())
	})

	t.Run("accuracy per module", func(t *testing.T) {
		s := sheet(t, report, domain.SheetModuleAccuracy)
		assert.Equal(t, []string{
			"Module",
			"firm knowledge",
			"competent; training voluntary - no immediate need",
			"profits from re-training / webinar",
			"hands-on classroom training needed",
			">69%", "<=69% - >50%", "<= 50%",
		}, s.Headers())
		assert.Equal(t, [][]string{
			{"M1", "100,0%", "0,0%", "0,0%", "0,0%", "100,0%", "0,0%", "0,0%"},
			{"M2", "0,0%", "33,33%", "33,33%", "33,33%", "33,33%", "33,33%", "33,33%"},
		}, s.Rows())
	})

	t.Run("self assessment per module", func(t *testing.T) {
		s := sheet(t, report, domain.SheetSelfAssessment)
		assert.Equal(t, []string{
			"Module", "Novice", "Advanced beginner", "Competent", "Proficient", "Expert",
			"Professional", "Competent 2", "Beginner",
		}, s.Headers())
		assert.Equal(t, []string{"M1", "25,0%", "0,0%", "25,0%", "25,0%", "25,0%", "50,0%", "25,0%", "25,0%"}, s.Row(0))
		assert.Equal(t, []string{"M2", "50,0%", "50,0%", "0,0%", "0,0%", "0,0%", "0,0%", "0,0%", "100,0%"}, s.Row(1))
	})

	t.Run("competence per module", func(t *testing.T) {
		s := sheet(t, report, domain.SheetCompetence)
		assert.Equal(t, []string{
			"Module", "Unconscious Incompetent", "Conscious Incompetent",
			"Unconscious Competent", "Conscious Competent", "Incompetent", "Competent",
		}, s.Headers())
		assert.Equal(t, []string{"M1", "3,33%", "10,0%", "40,0%", "46,67%", "13,33%", "86,67%"}, s.Row(0))
		assert.Equal(t, []string{"M2", "23,33%", "20,0%", "30,0%", "26,67%", "43,33%", "56,67%"}, s.Row(1))
	})

	t.Run("difficult objectives", func(t *testing.T) {
		s := sheet(t, report, domain.SheetObjectives)
		assert.Equal(t, []string{"Module", "Learning Objective", "Unconsciously Incompetent", "Wrong Answers"}, s.Headers())
		require.Equal(t, 5, s.RowCount())
		assert.Equal(t, []string{"M1", "LO2", "40%", "7"}, s.Row(0))
		assert.Equal(t, []string{"M2", "LO4", "", "1"}, s.Row(4))
	})
}

func TestBuildReport_WithoutObjectives(t *testing.T) {
	s := testutil.DefaultScenario()
	s.Objectives = nil

	report, err := BuildReport(scenarioResults(t, s), DefaultFormatOptions())
	require.NoError(t, err)
	assert.Equal(t, len(domain.SheetNames), report.Len())

	objectives := sheet(t, report, domain.SheetObjectives)
	assert.Equal(t, domain.CanonicalObjectiveColumns, objectives.Headers())
	assert.Equal(t, 0, objectives.RowCount())
}

func TestBuildReport_MissingAccuracyIsEmptyCell(t *testing.T) {
	results := &analytics.Results{
		Accuracy: []domain.ClassAccuracy{{ClassDescription: "X"}},
	}

	report, err := BuildReport(results, DefaultFormatOptions())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"X", ""}}, sheet(t, report, domain.SheetAvgAccuracy).Rows())
}

func TestBuildReport_Idempotent(t *testing.T) {
	results := scenarioResults(t, testutil.DefaultScenario())

	first, err := BuildReport(results, DefaultFormatOptions())
	require.NoError(t, err)
	second, err := BuildReport(results, DefaultFormatOptions())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildReport_NilResults(t *testing.T) {
	_, err := BuildReport(nil, DefaultFormatOptions())
	assert.Error(t, err)
}
