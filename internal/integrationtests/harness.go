package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/specialistvlad/gridplan/internal/app"
	"github.com/specialistvlad/gridplan/internal/hcl"
	"github.com/specialistvlad/gridplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Report    *app.Report
	Err       error
}

// RunPlan writes files below a temp dir, plans them with a JSON report and
// decodes the report. Startup panics are returned as Err.
func RunPlan(t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()
	return RunPlanWithConfig(context.Background(), t, files, app.Config{})
}

// RunPlanWithConfig is RunPlan with caller-provided context and settings.
// ProblemPath, Output and the log settings are overridden.
func RunPlanWithConfig(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	cfg.ProblemPath = testutil.WriteFiles(t, files)
	cfg.Output = app.OutputJSON
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &testutil.SafeBuffer{}
	out := &bytes.Buffer{}

	defer func() {
		if os.Getenv("GRIDPLAN_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	}()

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(out, logBuffer, appConfig, hcl.NewLoader())
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	if err := testApp.Run(ctx); err != nil {
		return &HarnessResult{LogOutput: logBuffer.String(), Err: err}
	}

	var rep app.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep), "report is not valid JSON:\n%s", out.String())
	return &HarnessResult{LogOutput: logBuffer.String(), Report: &rep}
}

// Task returns the report row for id.
func (r *HarnessResult) Task(t *testing.T, id string) app.TaskReport {
	t.Helper()
	require.NotNil(t, r.Report, "run produced no report: %v", r.Err)
	for _, row := range r.Report.Tasks {
		if row.ID == id {
			return row
		}
	}
	require.FailNow(t, "task missing from report", "id %q", id)
	return app.TaskReport{}
}

// RequirePlaced asserts that id was placed at [start, end).
func (r *HarnessResult) RequirePlaced(t *testing.T, id string, start, end float64) {
	t.Helper()
	row := r.Task(t, id)
	require.Equal(t, "placed", row.Status, "task %q", id)
	require.Equal(t, start, *row.Start, "start of task %q", id)
	require.Equal(t, end, *row.End, "end of task %q", id)
}
