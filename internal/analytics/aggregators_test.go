package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"likecli/internal/shared/testutil"
	"likecli/pkg/contracts/domain"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{33.333333, 33.33},
		{66.666666, 66.67},
		{0.125, 0.12},
		{0.375, 0.38},
		{-1.005, -1},
		{100, 100},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Round2(tt.in), 1e-9, "Round2(%v)", tt.in)
	}
}

func TestSummarizeAccuracy(t *testing.T) {
	in := scenarioInputs(t, testutil.DefaultScenario())
	got := SummarizeAccuracy(FilterCompleted(in.Large).Rows)

	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].ClassDescription)
	assert.Equal(t, domain.Pct(67.5), got[0].MeanAccuracy)
	assert.Equal(t, "B", got[1].ClassDescription)
	assert.Equal(t, domain.Pct(100), got[1].MeanAccuracy, "missing accuracy is excluded, not zero")
}

func TestSummarizeAccuracy_AllMissing(t *testing.T) {
	rows := []domain.LearnerModuleRecord{
		{Learner: "a", ClassDescription: "X"},
		{Learner: "b", ClassDescription: "Y", Accuracy: domain.Pct(100.0 / 3)},
	}

	got := SummarizeAccuracy(rows)
	require.Len(t, got, 2)
	assert.False(t, got[0].MeanAccuracy.Valid)
	assert.Equal(t, domain.Pct(33.33), got[1].MeanAccuracy)
}

func TestSummarizeModuleAccuracy(t *testing.T) {
	in := scenarioInputs(t, testutil.DefaultScenario())
	completion := FilterCompleted(in.Large)

	got := SummarizeModuleAccuracy(completion.Rows, completion.Modules)
	require.Len(t, got, 2)

	m1 := got[0]
	assert.Equal(t, "M1", m1.Module)
	assert.Equal(t, []float64{100, 0, 0, 0}, m1.Shares)
	assert.Equal(t, []float64{100, 0, 0}, m1.Bands)

	m2 := got[1]
	assert.Equal(t, "M2", m2.Module)
	assert.Equal(t, []float64{0, 33.33, 33.33, 33.33}, m2.Shares)
	assert.Equal(t, []float64{33.33, 33.33, 33.33}, m2.Bands)
}

func TestSummarizeModuleAccuracy_Distribution(t *testing.T) {
	var rows []domain.LearnerModuleRecord
	classes := []domain.AccuracyClass{
		domain.AccuracyFirmKnowledge, domain.AccuracyFirmKnowledge, domain.AccuracyFirmKnowledge,
		domain.AccuracyCompetentNoNeed, domain.AccuracyCompetentNoNeed,
		domain.AccuracyRetraining, domain.AccuracyHandsOnTraining,
		"",
	}
	for _, c := range classes {
		rows = append(rows, domain.LearnerModuleRecord{Module: "M1", AccuracyClass: c})
	}

	got := SummarizeModuleAccuracy(rows, []string{"M1", "M9"})
	require.Len(t, got, 2)

	var sum float64
	for _, s := range got[0].Shares {
		sum += s
	}
	assert.InDelta(t, 100, sum, 0.02)
	assert.Equal(t, []float64{42.86, 28.57, 14.29, 14.29}, got[0].Shares)
	assert.Equal(t, []float64{71.43, 14.29, 14.29}, got[0].Bands)

	assert.Equal(t, []float64{0, 0, 0, 0}, got[1].Shares, "module without rows")
}

func TestSummarizeModuleAccuracy_UnknownClassCountsInTotal(t *testing.T) {
	rows := []domain.LearnerModuleRecord{
		{Module: "M1", AccuracyClass: domain.AccuracyFirmKnowledge},
		{Module: "M1", AccuracyClass: "something else"},
	}

	got := SummarizeModuleAccuracy(rows, []string{"M1"})
	assert.Equal(t, []float64{50, 0, 0, 0}, got[0].Shares)
}

func TestSummarizeSelfAssessment(t *testing.T) {
	in := scenarioInputs(t, testutil.DefaultScenario())
	completion := FilterCompleted(in.Large)

	got := SummarizeSelfAssessment(in.SelfAssessment, completion.Modules)
	require.Len(t, got, 2)

	// carol is not a completed learner but her self assessment still counts
	assert.Equal(t, "M1", got[0].Module)
	assert.Equal(t, []float64{25, 0, 25, 25, 25}, got[0].Shares)
	assert.Equal(t, []float64{50, 25, 25}, got[0].Bands)

	assert.Equal(t, "M2", got[1].Module)
	assert.Equal(t, []float64{50, 50, 0, 0, 0}, got[1].Shares)
	assert.Equal(t, []float64{0, 0, 100}, got[1].Bands)
}

func TestSummarizeSelfAssessment_ModuleWithoutRecords(t *testing.T) {
	records := []domain.SelfAssessmentRecord{{Module: "M1", Level: domain.LevelExpert}}

	got := SummarizeSelfAssessment(records, []string{"M1", "M2"})
	require.Len(t, got, 2)
	assert.Equal(t, []float64{0, 0, 0, 0, 100}, got[0].Shares)
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, got[1].Shares)
	assert.Equal(t, []float64{0, 0, 0}, got[1].Bands)
}

func TestSummarizeSelfAssessment_SharesSumTo100(t *testing.T) {
	levels := []domain.ProficiencyLevel{
		domain.LevelNovice, domain.LevelAdvancedBeginner, domain.LevelCompetent,
		domain.LevelCompetent, domain.LevelProficient, domain.LevelExpert,
	}
	var records []domain.SelfAssessmentRecord
	for _, l := range levels {
		records = append(records, domain.SelfAssessmentRecord{Module: "M1", Level: l})
	}

	got := SummarizeSelfAssessment(records, []string{"M1"})
	var sum float64
	for _, s := range got[0].Shares {
		sum += s
	}
	assert.InDelta(t, 100, sum, 0.02)
	assert.Equal(t, got[0].Shares[2], got[0].Bands[1], "Competent 2 copies Competent")
}

func TestSummarizeCompetence(t *testing.T) {
	in := scenarioInputs(t, testutil.DefaultScenario())
	completion := FilterCompleted(in.Large)

	got := SummarizeCompetence(completion.Rows, completion.Modules)
	require.Len(t, got, 2)

	assertPercents := func(t *testing.T, want []float64, got []domain.Percent) {
		t.Helper()
		require.Len(t, got, len(want))
		for i := range want {
			assert.True(t, got[i].Valid)
			assert.InDelta(t, want[i], got[i].Value, 1e-9, "index %d", i)
		}
	}

	assert.Equal(t, "M1", got[0].Module)
	assertPercents(t, []float64{3.33, 10, 40, 46.67}, got[0].Means)
	assertPercents(t, []float64{13.33, 86.67}, got[0].Bands)

	assert.Equal(t, "M2", got[1].Module)
	assertPercents(t, []float64{23.33, 20, 30, 26.67}, got[1].Means)
	assertPercents(t, []float64{43.33, 56.67}, got[1].Bands)
}

func TestSummarizeCompetence_MissingValues(t *testing.T) {
	rows := []domain.LearnerModuleRecord{
		{Module: "M1", Quadrants: [4]domain.Percent{domain.Pct(10), {}, domain.Pct(50), domain.Pct(40)}},
		{Module: "M1", Quadrants: [4]domain.Percent{{}, {}, domain.Pct(30), domain.Pct(20)}},
	}

	got := SummarizeCompetence(rows, []string{"M1"})
	require.Len(t, got, 1)
	assert.Equal(t, domain.Pct(10), got[0].Means[0], "missing values are skipped")
	assert.False(t, got[0].Means[1].Valid)
	assert.False(t, got[0].Bands[0].Valid, "missing propagates into the band")
	assert.Equal(t, domain.Pct(70), got[0].Bands[1])
}
