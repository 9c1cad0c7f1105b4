package operations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"likecli/pkg/contracts/domain"
)

// Manager orchestrates operation execution
type Manager struct {
	registry *Registry
	config   *Config
	logger   *slog.Logger
	tracer   *OperationTracer
}

// NewManager creates a new operation manager. Nil arguments get defaults.
func NewManager(logger *slog.Logger, registry *Registry, config *Config, tracer *OperationTracer) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if registry == nil {
		registry = NewRegistry()
	}
	if config == nil {
		config = NewConfig()
	}
	if tracer == nil {
		tracer = NewOperationTracer(nil)
	}

	return &Manager{
		registry: registry,
		config:   config,
		logger:   logger.With(slog.String("component", "operations")),
		tracer:   tracer,
	}
}

// Execute runs every registered step in dependency order. The first failing
// step aborts the run; the steps after it are marked skipped.
func (m *Manager) Execute(ctx context.Context, req OperationRequest) (*OperationResponse, error) {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	state := NewOperationState(req.ID, req)

	ctx, span := m.tracer.TraceOperationExecution(ctx, req.ID, req)

	steps, err := m.registry.GetDependencyOrder()
	if err != nil {
		m.logOperationError(ctx, req.ID, err)
		state.Fail(err)
		m.tracer.RecordOperationCompletion(span, state.Duration(), state.Status, err)
		return m.createResponse(state), err
	}

	for _, step := range steps {
		state.SetStage(step.ID(), NewStepState(step.ID(), step.Name()))
	}

	m.logOperationStart(ctx, req.ID, req, len(steps))
	state.Start()

	err = m.executeSequential(ctx, state, steps)
	switch {
	case err == nil:
		state.Complete()
	case GetErrorType(err) == ErrorTypeCancellation:
		state.Cancel(err)
		m.logOperationError(ctx, req.ID, err)
	default:
		state.Fail(err)
		m.logOperationError(ctx, req.ID, err)
	}

	m.logOperationComplete(ctx, req.ID, state.Duration(), state.Status)
	m.tracer.RecordOperationCompletion(span, state.Duration(), state.Status, err)
	return m.createResponse(state), err
}

// executeSequential executes steps one by one
func (m *Manager) executeSequential(ctx context.Context, state *OperationState, steps []Step) error {
	for i, step := range steps {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err := NewCancellationError(step.ID(), ctxErr)
			m.skipRemaining(ctx, state, steps[i:], "operation cancelled")
			return err
		}

		m.logStepStart(ctx, state.ID, step.ID(), i+1, len(steps))
		if err := m.executeStep(ctx, state, step); err != nil {
			m.logStepError(ctx, state.ID, step.ID(), err)
			m.skipRemaining(ctx, state, steps[i+1:], fmt.Sprintf("Previous step %s failed", step.ID()))
			return err
		}
	}
	return nil
}

// executeStep runs a single step once
func (m *Manager) executeStep(ctx context.Context, state *OperationState, step Step) error {
	stepState := state.GetStage(step.ID())
	if stepState == nil {
		return NewFatalError(fmt.Sprintf("state for step %s not found", step.ID()), nil)
	}

	if err := m.checkDependencies(state, step); err != nil {
		stepState.Fail(err)
		return err
	}

	if err := step.Validate(state); err != nil {
		verr := NewValidationError(step.ID(), err.Error())
		verr.Cause = err
		stepState.Fail(verr)
		return verr
	}

	timeout := m.config.GetStepTimeout(step.ID())
	stepCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stepCtx, span := m.tracer.TraceStepExecution(stepCtx, state.ID, step.ID())

	stepState.Start()
	start := time.Now()
	err := step.Execute(stepCtx, state)
	duration := time.Since(start)

	if err != nil {
		switch {
		case ctx.Err() != nil:
			err = NewCancellationError(step.ID(), err)
		case errors.Is(stepCtx.Err(), context.DeadlineExceeded):
			timeoutErr := NewTimeoutError(step.ID(), timeout.String())
			timeoutErr.Cause = err
			err = timeoutErr
		default:
			err = WrapError(err, step.ID(), "step execution failed")
		}
		stepState.Fail(err)
		m.tracer.RecordStepResult(span, duration, err)
		return err
	}

	stepState.Complete()
	m.tracer.RecordStepResult(span, duration, nil)
	m.logStepComplete(ctx, state.ID, step.ID(), duration)
	return nil
}

// skipRemaining marks every pending step in steps as skipped
func (m *Manager) skipRemaining(ctx context.Context, state *OperationState, steps []Step, reason string) {
	for _, step := range steps {
		stepState := state.GetStage(step.ID())
		if stepState != nil && stepState.GetStatus() == StepStatusPending {
			stepState.Skip(reason)
			m.logStepSkipped(ctx, state.ID, step.ID(), reason)
		}
	}
}

// checkDependencies verifies that all dependencies completed
func (m *Manager) checkDependencies(state *OperationState, step Step) error {
	for _, dep := range step.GetDependencies() {
		depState := state.GetStage(dep)
		if depState == nil {
			return NewDependencyError(step.ID(), dep, fmt.Sprintf("dependency %s not found", dep))
		}
		if status := depState.GetStatus(); status != StepStatusCompleted {
			return NewDependencyError(step.ID(), dep, fmt.Sprintf("dependency %s not completed (status: %s)", dep, status))
		}
	}
	return nil
}

// createResponse creates an operation response from state
func (m *Manager) createResponse(state *OperationState) *OperationResponse {
	snapshot := state.Clone()
	resp := &OperationResponse{
		ID:       snapshot.ID,
		Status:   snapshot.Status,
		Duration: snapshot.Duration(),
		Steps:    snapshot.Steps,
	}
	if outputs, ok := snapshot.Context[ContextKeyOutputs].([]string); ok {
		resp.Outputs = outputs
	}
	if report, ok := snapshot.Context[ContextKeyReport].(*domain.Report); ok {
		resp.Report = report
	}
	if snapshot.Error != nil {
		resp.Error = snapshot.Error.Error()
	}
	return resp
}
