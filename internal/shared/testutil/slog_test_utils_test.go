package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures records and attributes", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("file processed", slog.String("file", "a.csv"))
		logger.Error("file failed", slog.Int("rows", 0))

		require.Equal(t, 2, handler.Count())
		assert.True(t, handler.ContainsMessage("processed"))
		assert.True(t, handler.ContainsAttr("file", "a.csv"))
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)
	})

	t.Run("derived loggers share the store and keep attrs", func(t *testing.T) {
		logger, handler := NewTestLogger(t)
		child := logger.With(slog.String("component", "pipeline"))

		child.Warn("no partial tables")

		records := handler.FindByMessage("no partial tables")
		require.Len(t, records, 1)
		assert.Equal(t, "pipeline", records[0].Attrs["component"])
	})

	t.Run("groups prefix keys", func(t *testing.T) {
		logger, handler := NewTestLogger(t)
		logger.WithGroup("run").Info("done", slog.Int("files", 3))

		assert.True(t, handler.ContainsAttr("run.files", int64(3)))
	})

	t.Run("clear", func(t *testing.T) {
		logger, handler := NewTestLogger(t)
		logger.Info("x")
		handler.Clear()
		assert.Equal(t, 0, handler.Count())
	})
}
