package exporter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"likecli/internal/analytics"
	"likecli/internal/dataprocessing"
	"likecli/internal/shared/testutil"
	"likecli/pkg/contracts/domain"
)

func raw(tbl testutil.Table) *dataprocessing.RawTable {
	return &dataprocessing.RawTable{Source: "fixture.csv", Columns: tbl.Header, Rows: tbl.Rows}
}

func scenarioResults(t *testing.T, s testutil.Scenario) *analytics.Results {
	t.Helper()

	large, err := dataprocessing.ParseLargeTable(raw(s.Large))
	require.NoError(t, err)
	snap, err := dataprocessing.ParseMetacognition(raw(s.Metacognition))
	require.NoError(t, err)
	self, err := dataprocessing.ParseSelfAssessment(raw(s.SelfAssessment))
	require.NoError(t, err)

	var objectives *dataprocessing.RawTable
	if s.Objectives != nil {
		objectives = raw(*s.Objectives)
	}

	results, err := analytics.NewAnalyzer(nil).Analyze(context.Background(), analytics.Inputs{
		Large:          large,
		Metacognition:  snap,
		SelfAssessment: self,
		Objectives:     dataprocessing.ParseObjectives(objectives),
	})
	require.NoError(t, err)
	return results
}

func scenarioReport(t *testing.T) *domain.Report {
	t.Helper()
	report, err := BuildReport(scenarioResults(t, testutil.DefaultScenario()), DefaultFormatOptions())
	require.NoError(t, err)
	return report
}
