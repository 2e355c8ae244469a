package testutil

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/specialistvlad/gridplan/internal/ctxlog"
)

// LoggerContext returns a context carrying a debug-level text logger that
// writes into the returned buffer. Set GRIDPLAN_TEST_LOGS=true to dump the
// buffer when the test finishes.
func LoggerContext(t *testing.T) (context.Context, *SafeBuffer) {
	t.Helper()

	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	t.Cleanup(func() {
		if os.Getenv("GRIDPLAN_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})

	return ctxlog.WithLogger(context.Background(), logger), buf
}
