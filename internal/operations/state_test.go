package operations

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepStateTransitions(t *testing.T) {
	s := NewStepState(StepIDAnalyze, StepNameAnalyze)
	assert.Equal(t, StepStatusPending, s.GetStatus())
	assert.Zero(t, s.Duration())

	s.Start()
	assert.Equal(t, StepStatusActive, s.GetStatus())
	require.NotNil(t, s.StartTime)

	s.Complete()
	assert.Equal(t, StepStatusCompleted, s.GetStatus())
	require.NotNil(t, s.EndTime)
	assert.GreaterOrEqual(t, s.Duration().Nanoseconds(), int64(0))

	failed := NewStepState("x", "X")
	failed.Fail(fmt.Errorf("boom"))
	assert.Equal(t, StepStatusFailed, failed.GetStatus())
	assert.EqualError(t, failed.Error, "boom")

	skipped := NewStepState("y", "Y")
	skipped.Skip("Previous step x failed")
	assert.Equal(t, StepStatusSkipped, skipped.GetStatus())
	assert.Equal(t, "Previous step x failed", skipped.Message)
}

func TestOperationStateClone(t *testing.T) {
	state := NewOperationState("op", OperationRequest{InputDir: "in"})
	step := NewStepState("a", "A")
	step.SetMetadata("rows", 4)
	state.SetStage("a", step)
	state.SetContext(ContextKeyOutputs, []string{"r.xlsx"})
	state.Start()
	step.Fail(fmt.Errorf("boom"))
	state.Fail(step.Error)

	clone := state.Clone()
	assert.Equal(t, OperationStatusFailed, clone.Status)
	assert.Equal(t, "in", clone.Request.InputDir)
	require.NotNil(t, clone.EndTime)
	assert.True(t, state.HasFailures())

	clone.Steps["a"].Metadata["rows"] = 5
	clone.Context["extra"] = true
	assert.Equal(t, 4, step.Metadata["rows"])
	_, ok := state.GetContext("extra")
	assert.False(t, ok)
	assert.NotSame(t, step, clone.Steps["a"])
}
