package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"likecli/internal/dataprocessing"
	"likecli/internal/shared/testutil"
	"likecli/pkg/contracts/domain"
)

func rawTable(tbl testutil.Table) *dataprocessing.RawTable {
	return &dataprocessing.RawTable{Source: "fixture.csv", Columns: tbl.Header, Rows: tbl.Rows}
}

// scenarioInputs parses a fixture scenario the way the pipeline does
func scenarioInputs(t *testing.T, s testutil.Scenario) Inputs {
	t.Helper()

	large, err := dataprocessing.ParseLargeTable(rawTable(s.Large))
	require.NoError(t, err)
	snap, err := dataprocessing.ParseMetacognition(rawTable(s.Metacognition))
	require.NoError(t, err)
	self, err := dataprocessing.ParseSelfAssessment(rawTable(s.SelfAssessment))
	require.NoError(t, err)

	var objectives *dataprocessing.RawTable
	if s.Objectives != nil {
		objectives = rawTable(*s.Objectives)
	}

	return Inputs{
		Large:          large,
		Metacognition:  snap,
		SelfAssessment: self,
		Objectives:     dataprocessing.ParseObjectives(objectives),
	}
}

func record(learner, module, class, status string) domain.LearnerModuleRecord {
	return domain.LearnerModuleRecord{
		Learner:          learner,
		Module:           module,
		ClassDescription: class,
		CompletionStatus: status,
		SumTimeSpent:     "0:10:00",
	}
}
