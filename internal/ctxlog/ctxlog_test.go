package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	FromContext(With(ctx, "task", "calibrate")).Info("hello")
	assert.Contains(t, buf.String(), "task=calibrate")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestFromContextPanicsWithoutLogger(t *testing.T) {
	assert.PanicsWithValue(t, "ctxlog: logger missing from context", func() {
		FromContext(context.Background())
	})
}
