package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("test message", slog.String("key", "value"))
		logger.Error("error message", slog.Int("code", 500))

		assert.Equal(t, 2, handler.Count())
		assert.True(t, handler.ContainsMessage("test message"))
		assert.True(t, handler.ContainsAttr("key", "value"))
		assert.False(t, handler.ContainsAttr("key", "other"))
	})

	t.Run("keeps attrs from With", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With("component", "analyzer").Info("derived")

		assert.True(t, handler.ContainsAttr("component", "analyzer"))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")
		logger.Error("error msg")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelInfo), 1)
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)
		AssertLogContains(t, handler, slog.LevelWarn, "warn")
	})

	t.Run("clear", func(t *testing.T) {
		logger, handler := NewTestLogger(t)
		logger.Info("one")
		handler.Clear()

		assert.Zero(t, handler.Count())
		AssertNoErrors(t, handler)
	})
}

func TestFixtures(t *testing.T) {
	dir := t.TempDir()
	set := WriteInputSet(t, dir, DefaultScenario())

	assert.FileExists(t, set.Large)
	assert.FileExists(t, set.Metacognition)
	assert.FileExists(t, set.SelfAssessment)
	assert.FileExists(t, set.Objectives)
}
