package operations

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"likecli/internal/analytics"
	"likecli/internal/errors"
	"likecli/internal/exporter"
	"likecli/internal/files"
	"likecli/internal/shared/testutil"
	"likecli/pkg/contracts/domain"
)

func newReportManager(t *testing.T) *Manager {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	registry := NewRegistry()
	require.NoError(t, RegisterReportSteps(registry, logger, StageOptions{}))
	return NewManager(logger, registry, nil, nil)
}

func TestRegisterReportSteps(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, RegisterReportSteps(registry, nil, StageOptions{}))

	ordered, err := registry.GetDependencyOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{
		StepIDDetectInputs, StepIDLoadTables, StepIDAnalyze, StepIDBuildReport, StepIDExportReport,
	}, ids(ordered))
}

func TestReportPipeline_InputDir(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	testutil.WriteInputSet(t, in, testutil.DefaultScenario())
	destination := filepath.Join(out, "20240131_Like_Auswertung.xlsx")

	resp, err := newReportManager(t).Execute(context.Background(), OperationRequest{
		InputDir:    in,
		Destination: destination,
		Format:      FormatBoth,
	})
	require.NoError(t, err)

	assert.Equal(t, OperationStatusCompleted, resp.Status)
	require.Len(t, resp.Outputs, 9, "workbook plus one CSV per sheet")
	assert.Equal(t, destination, resp.Outputs[0])
	for _, path := range resp.Outputs {
		assert.FileExists(t, path)
	}
	assert.Equal(t, 3, resp.Steps[StepIDAnalyze].Metadata["participants_completed"])
	assert.Equal(t, 0, resp.Steps[StepIDDetectInputs].Metadata["unknown_files"])
}

func TestReportPipeline_FailedCSVExportRemovesWorkbook(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	testutil.WriteInputSet(t, in, testutil.DefaultScenario())
	destination := filepath.Join(out, "report.xlsx")
	blocker := exporter.SheetFileName(destination, domain.SheetTimeNeeded)
	require.NoError(t, os.Mkdir(blocker, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(blocker, "keep"), nil, 0644))

	resp, err := newReportManager(t).Execute(context.Background(), OperationRequest{
		InputDir:    in,
		Destination: destination,
		Format:      FormatBoth,
	})
	require.Error(t, err)
	assert.Equal(t, StepIDExportReport, StepOf(err))
	assert.Empty(t, resp.Outputs)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1, "neither the workbook nor a sheet remains")
	assert.Equal(t, filepath.Base(blocker), entries[0].Name())
}

func TestReportPipeline_ExplicitInputs(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	scenario := testutil.DefaultScenario()
	scenario.Objectives = nil
	paths := testutil.WriteInputSet(t, in, scenario)

	manager := newReportManager(t)
	var results *analytics.Results
	var report *domain.Report
	step := newFuncStep("capture", []string{StepIDExportReport}, func(_ context.Context, state *OperationState) error {
		var err error
		if results, err = contextValue[*analytics.Results](state, ContextKeyResults); err != nil {
			return err
		}
		report, err = contextValue[*domain.Report](state, ContextKeyReport)
		return err
	})
	require.NoError(t, manager.registry.Register(step))

	resp, err := manager.Execute(context.Background(), OperationRequest{
		Inputs: files.InputSet{
			Large:          paths.Large,
			Metacognition:  paths.Metacognition,
			SelfAssessment: paths.SelfAssessment,
		},
		Destination: filepath.Join(out, "report.xlsx"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(out, "report.xlsx")}, resp.Outputs)

	require.NotNil(t, results)
	assert.Equal(t, 3, results.ParticipantsCompleted())
	assert.Empty(t, results.Objectives.Rows)

	sheet, ok := report.Sheet("5 Most Difficult Objectives")
	require.True(t, ok)
	assert.Equal(t, 0, sheet.RowCount())
}

func TestReportPipeline_MissingMandatoryInput(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	paths := testutil.WriteInputSet(t, in, testutil.DefaultScenario())
	require.NoError(t, os.Remove(paths.SelfAssessment))

	resp, err := newReportManager(t).Execute(context.Background(), OperationRequest{
		InputDir:    in,
		Destination: filepath.Join(out, "report.xlsx"),
	})
	require.Error(t, err)

	assert.True(t, errors.IsType(err, errors.ErrTypeMissingInput))
	assert.Equal(t, StepIDDetectInputs, StepOf(err))
	assert.Equal(t, StepStatusFailed, resp.Steps[StepIDDetectInputs].Status)
	for _, id := range []string{StepIDLoadTables, StepIDAnalyze, StepIDBuildReport, StepIDExportReport} {
		assert.Equal(t, StepStatusSkipped, resp.Steps[id].Status, id)
	}

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries, "no report is written")
}

func TestReportPipeline_WrongSlot(t *testing.T) {
	in := t.TempDir()
	paths := testutil.WriteInputSet(t, in, testutil.DefaultScenario())

	_, err := newReportManager(t).Execute(context.Background(), OperationRequest{
		Inputs: files.InputSet{
			Large:          paths.SelfAssessment,
			Metacognition:  paths.Metacognition,
			SelfAssessment: paths.SelfAssessment,
		},
		Destination: filepath.Join(t.TempDir(), "report.xlsx"),
	})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSchemaMismatch))
}

func TestReportPipeline_BadDuration(t *testing.T) {
	in := t.TempDir()
	scenario := testutil.DefaultScenario()
	scenario.Large.Rows[0][4] = "an hour"
	testutil.WriteInputSet(t, in, scenario)

	resp, err := newReportManager(t).Execute(context.Background(), OperationRequest{
		InputDir:    in,
		Destination: filepath.Join(t.TempDir(), "report.xlsx"),
	})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeMalformedField))
	assert.Equal(t, StepIDAnalyze, StepOf(err))
	assert.Equal(t, StepStatusSkipped, resp.Steps[StepIDExportReport].Status)
}

func TestDetectInputsStage_Validate(t *testing.T) {
	step := NewDetectInputsStage(testLogger(t), files.NewDiscovery(nil, nil))
	assert.Error(t, step.Validate(NewOperationState("x", OperationRequest{})))
	assert.NoError(t, step.Validate(NewOperationState("x", OperationRequest{InputDir: "in"})))
}

func TestExportReportStage_Validate(t *testing.T) {
	step := NewExportReportStage(testLogger(t), nil, nil)

	tests := []struct {
		name    string
		req     OperationRequest
		wantErr bool
	}{
		{"default format", OperationRequest{Destination: "r.xlsx"}, false},
		{"csv", OperationRequest{Destination: "r.xlsx", Format: FormatCSV}, false},
		{"no destination", OperationRequest{Format: FormatXLSX}, true},
		{"unknown format", OperationRequest{Destination: "r.xlsx", Format: "pdf"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := step.Validate(NewOperationState("x", tt.req))
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestContextValue(t *testing.T) {
	state := NewOperationState("x", OperationRequest{})
	state.SetContext("n", 3)

	n, err := contextValue[int](state, "n")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = contextValue[string](state, "n")
	assert.Error(t, err)
	_, err = contextValue[int](state, "missing")
	assert.Error(t, err)
}

func testLogger(t *testing.T) *slog.Logger {
	logger, _ := testutil.NewTestLogger(t)
	return logger
}
