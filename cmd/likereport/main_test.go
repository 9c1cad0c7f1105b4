package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"likecli/internal/infrastructure"
	"likecli/internal/shared/testutil"
)

// setupEnv points configuration at temporary directories and keeps logs off stdout
func setupEnv(t *testing.T) string {
	t.Helper()
	out := t.TempDir()
	t.Setenv("LIKE_LOGGING_OUTPUT", "console")
	t.Setenv("LIKE_LOGGING_LEVEL", "error")
	t.Setenv("LIKE_PATHS_LOGS_DIR", t.TempDir())
	t.Setenv("LIKE_PATHS_OUTPUT_DIR", out)
	t.Setenv("LIKE_REPORT_FILE_NAME_PATTERN", "Like_Auswertung")
	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)
	return out
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"input directory", []string{"-in", "exports"}, ""},
		{"explicit files", []string{"-large", "l.csv", "-mcp", "m.csv", "-self", "s.csv"}, ""},
		{"batch", []string{"-batch", "runs", "-format", "both"}, ""},
		{"no input", nil, "required"},
		{"directory and files", []string{"-in", "exports", "-large", "l.csv"}, "mutually exclusive"},
		{"directory and batch", []string{"-in", "exports", "-batch", "runs"}, "mutually exclusive"},
		{"bad format", []string{"-in", "exports", "-format", "pdf"}, "unsupported format"},
		{"stray argument", []string{"-in", "exports", "extra"}, "unexpected arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args, &bytes.Buffer{})
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseFlags_RecordsExplicitFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-in", "exports", "-overwrite=false"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, opts.set["overwrite"])
	assert.False(t, opts.overwrite)
	assert.False(t, opts.set["format"])
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitUsage, run(context.Background(), nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "likereport:")

	stderr.Reset()
	assert.Equal(t, exitOK, run(context.Background(), []string{"-h"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "usage: likereport")

	stdout.Reset()
	assert.Equal(t, exitOK, run(context.Background(), []string{"-version"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "LIKE Report Generator")
}

func TestRun_InputDirectoryWithPreview(t *testing.T) {
	out := setupEnv(t)
	in := t.TempDir()
	testutil.WriteInputSet(t, in, testutil.DefaultScenario())

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-in", in, "-preview"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	want := filepath.Join(out, "Like_Auswertung.xlsx")
	assert.FileExists(t, want)
	assert.Contains(t, stdout.String(), "wrote "+want)
	assert.Contains(t, stdout.String(), "== Participants Completed ==")
	assert.Contains(t, stdout.String(), "== 5 Most Difficult Objectives ==")
}

func TestRun_ExplicitFilesNoOverwrite(t *testing.T) {
	setupEnv(t)
	in := t.TempDir()
	out := t.TempDir()
	paths := testutil.WriteInputSet(t, in, testutil.DefaultScenario())
	args := []string{
		"-large", paths.Large, "-mcp", paths.Metacognition, "-self", paths.SelfAssessment,
		"-out", out, "-overwrite=false",
	}

	var stdout, stderr bytes.Buffer
	require.Equal(t, exitOK, run(context.Background(), args, &stdout, &stderr), stderr.String())
	require.Equal(t, exitOK, run(context.Background(), args, &stdout, &stderr), stderr.String())

	assert.FileExists(t, filepath.Join(out, "Like_Auswertung.xlsx"))
	assert.FileExists(t, filepath.Join(out, "Like_Auswertung (1).xlsx"))
}

func TestRun_MissingInput(t *testing.T) {
	out := setupEnv(t)
	in := t.TempDir()
	paths := testutil.WriteInputSet(t, in, testutil.DefaultScenario())
	require.NoError(t, os.Remove(paths.Metacognition))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-in", in}, &stdout, &stderr)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr.String(), "Metacognition Progress")
	assert.NoFileExists(t, filepath.Join(out, "Like_Auswertung.xlsx"))
}

func TestRun_Batch(t *testing.T) {
	out := setupEnv(t)
	root := t.TempDir()
	for _, name := range []string{"group1", "group2"} {
		dir := filepath.Join(root, name)
		require.NoError(t, os.Mkdir(dir, 0755))
		testutil.WriteInputSet(t, dir, testutil.DefaultScenario())
	}

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-batch", root, "-format", "csv"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	assert.FileExists(t, filepath.Join(out, "Like_Auswertung_group1_Time_Needed.csv"))
	assert.FileExists(t, filepath.Join(out, "Like_Auswertung_group2_Time_Needed.csv"))
	assert.Contains(t, stdout.String(), "ok   "+filepath.Join(root, "group1"))
}
