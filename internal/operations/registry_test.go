package operations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// funcStep is a step whose behaviour is supplied by the test
type funcStep struct {
	BaseStage
	run      func(ctx context.Context, state *OperationState) error
	validate func(state *OperationState) error
	calls    int
}

func newFuncStep(id string, deps []string, run func(ctx context.Context, state *OperationState) error) *funcStep {
	return &funcStep{BaseStage: NewBaseStage(id, "Step "+id, deps), run: run}
}

func (s *funcStep) Execute(ctx context.Context, state *OperationState) error {
	s.calls++
	if s.run == nil {
		return nil
	}
	return s.run(ctx, state)
}

func (s *funcStep) Validate(state *OperationState) error {
	if s.validate == nil {
		return nil
	}
	return s.validate(state)
}

func ids(steps []Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.ID()
	}
	return out
}

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry()
	assert.Equal(t, 0, registry.Count())
	assert.NotNil(t, registry.List())

	require.NoError(t, registry.Register(newFuncStep("a", nil, nil)))
	require.NoError(t, registry.Register(newFuncStep("b", nil, nil)))

	assert.Equal(t, 2, registry.Count())
	assert.True(t, registry.Has("a"))
	assert.Equal(t, []string{"a", "b"}, registry.ListIDs())

	got, err := registry.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID())

	_, err = registry.Get("missing")
	assert.Error(t, err)
}

func TestRegistryRegisterErrors(t *testing.T) {
	registry := NewRegistry()

	assert.Error(t, registry.Register(nil))
	assert.Error(t, registry.Register(newFuncStep("", nil, nil)))

	require.NoError(t, registry.Register(newFuncStep("a", nil, nil)))
	assert.Error(t, registry.Register(newFuncStep("a", nil, nil)))
}

func TestRegistryGetDependencyOrder(t *testing.T) {
	tests := []struct {
		name  string
		steps []Step
		want  []string
	}{
		{
			name: "registration order without dependencies",
			steps: []Step{
				newFuncStep("a", nil, nil),
				newFuncStep("b", nil, nil),
				newFuncStep("c", nil, nil),
			},
			want: []string{"a", "b", "c"},
		},
		{
			name: "dependencies registered out of order",
			steps: []Step{
				newFuncStep("export", []string{"build"}, nil),
				newFuncStep("build", []string{"load"}, nil),
				newFuncStep("load", nil, nil),
			},
			want: []string{"load", "build", "export"},
		},
		{
			name: "diamond keeps registration order among ready steps",
			steps: []Step{
				newFuncStep("root", nil, nil),
				newFuncStep("right", []string{"root"}, nil),
				newFuncStep("left", []string{"root"}, nil),
				newFuncStep("join", []string{"left", "right"}, nil),
			},
			want: []string{"root", "right", "left", "join"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry()
			for _, s := range tt.steps {
				require.NoError(t, registry.Register(s))
			}
			ordered, err := registry.GetDependencyOrder()
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(ordered))
		})
	}
}

func TestRegistryDependencyErrors(t *testing.T) {
	t.Run("unregistered dependency", func(t *testing.T) {
		registry := NewRegistry()
		require.NoError(t, registry.Register(newFuncStep("a", []string{"ghost"}, nil)))

		err := registry.ValidateDependencies()
		require.Error(t, err)
		assert.Equal(t, ErrorTypeDependency, GetErrorType(err))
		assert.Equal(t, "a", StepOf(err))
	})

	t.Run("cycle", func(t *testing.T) {
		registry := NewRegistry()
		require.NoError(t, registry.Register(newFuncStep("a", []string{"b"}, nil)))
		require.NoError(t, registry.Register(newFuncStep("b", []string{"a"}, nil)))

		_, err := registry.GetDependencyOrder()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cycle")
	})
}
