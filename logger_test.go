package chunkio

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	newBufferLogger := func(buf *bytes.Buffer) *Logger {
		return NewLogger(slog.NewTextHandler(buf, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	t.Run("LogLoadCompleted", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newBufferLogger(&buf)

		logger.LogLoad(context.Background(), "Patch2_90_*", 2, 10, time.Millisecond, nil)

		assert.Contains(t, buf.String(), "load completed")
		assert.Contains(t, buf.String(), "Patch2_90_*")
		assert.Contains(t, buf.String(), "chunks=2")
		assert.Contains(t, buf.String(), "rows=10")
	})

	t.Run("LogLoadFailed", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newBufferLogger(&buf)

		logger.LogLoad(context.Background(), "Patch2_90_*", 1, 0, time.Millisecond, assert.AnError)

		assert.Contains(t, buf.String(), "load failed")
		assert.Contains(t, buf.String(), assert.AnError.Error())
	})

	t.Run("LogOutOfOrder", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newBufferLogger(&buf)

		logger.LogOutOfOrder(context.Background(), "Patch2_90_*")

		assert.Contains(t, buf.String(), "out-of-order")
		assert.Contains(t, buf.String(), "level=WARN")
	})

	t.Run("WithPattern", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newBufferLogger(&buf).WithPattern("Patch2_90_*")

		logger.Info("indexing")

		assert.Contains(t, buf.String(), "pattern=Patch2_90_*")
	})
}
