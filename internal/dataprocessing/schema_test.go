package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"likecli/internal/shared/testutil"
)

func TestDetectSchema(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    SchemaType
	}{
		{"large table", testutil.LargeHeader, SchemaLargeTable},
		{"metacognition", testutil.MetacognitionHeader, SchemaMetacognitionProgress},
		{"self assessment", testutil.SelfAssessmentHeader, SchemaSelfAssessment},
		{"difficult objectives", testutil.ObjectivesHeader, SchemaDifficultObjectives},
		{
			name:    "case and whitespace insensitive",
			columns: []string{" LEARNER", "module ", "Completion status", "SUM TIME SPENT", "accuracy-classes", "Conscious Competent"},
			want:    SchemaLargeTable,
		},
		{
			name:    "large table below signature threshold",
			columns: []string{"Learner", "Module", "Completion Status", "Sum Time Spent", "Accuracy-Classes"},
			want:    SchemaUnknown,
		},
		{
			name:    "metacognition without required progress column",
			columns: []string{"Class Name", "Initial Conscious Competence", "Initial Unconscious Competence", "Improvement Conscious Competence", "Improvement Unconscious Incompetence"},
			want:    SchemaUnknown,
		},
		{
			name:    "objectives at exact threshold",
			columns: []string{"Module", "Learning Objective", "Wrong Answers", "Unconsciously Incompetent"},
			want:    SchemaDifficultObjectives,
		},
		{"empty header", nil, SchemaUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectSchema(tt.columns)
			assert.Equal(t, tt.want, got.Type)
			assert.Equal(t, tt.want != SchemaUnknown, got.Known())
			assert.NotEmpty(t, got.Reason)
		})
	}
}

func TestDetectSchema_FirstMatchWins(t *testing.T) {
	// satisfies both the LargeTable and the SelfAssessment signatures
	columns := append([]string{}, testutil.LargeHeader...)
	columns = append(columns, "Self Assessment", "Average Progress", "Time", "Correct", "Wrong")

	assert.Equal(t, SchemaLargeTable, DetectSchema(columns).Type)
}

func TestDetectSchema_UnknownDiagnostic(t *testing.T) {
	columns := []string{"j", "i", "h", "g", "f", "e", "d", "c", "b", "a", "A"}

	got := DetectSchema(columns)
	require.Equal(t, SchemaUnknown, got.Type)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, got.Offered)
	assert.Contains(t, got.Reason, "a, b, c, d, e, f, g, h")
	assert.NotContains(t, got.Reason, "h, i")
}

func TestTableReader_DetectFile(t *testing.T) {
	dir := t.TempDir()
	paths := testutil.WriteInputSet(t, dir, testutil.DefaultScenario())
	reader := NewTableReader(nil, ';')

	for path, want := range map[string]SchemaType{
		paths.Large:          SchemaLargeTable,
		paths.Metacognition:  SchemaMetacognitionProgress,
		paths.SelfAssessment: SchemaSelfAssessment,
		paths.Objectives:     SchemaDifficultObjectives,
	} {
		got, err := reader.DetectFile(path)
		require.NoError(t, err)
		assert.Equal(t, want, got.Type, filepath.Base(path))
	}

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err := reader.DetectFile(empty)
	assert.Error(t, err)
}
