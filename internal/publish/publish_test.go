package publish

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/specialistvlad/gridplan/internal/interval"
	"github.com/specialistvlad/gridplan/internal/planner"
	"github.com/specialistvlad/gridplan/internal/quantity"
	"github.com/specialistvlad/gridplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emitted struct {
	event string
	args  []any
}

type fakeEmitter struct {
	calls []emitted
	err   error
}

func (f *fakeEmitter) Emit(event string, args ...any) error {
	f.calls = append(f.calls, emitted{event: event, args: args})
	return f.err
}

func outcome() planner.Outcome[quantity.Minute] {
	return planner.Outcome[quantity.Minute]{
		ID:          "observe",
		Status:      planner.Placed,
		Interval:    interval.MustFromFloat[quantity.Minute](30, 45),
		Flexibility: 1.5,
		Endangered:  true,
		Step:        2,
	}
}

func TestPublisherEmitsMessage(t *testing.T) {
	ctx, logs := testutil.LoggerContext(t)
	em := &fakeEmitter{}

	require.NoError(t, New[quantity.Minute](em, "", "run-7").OnPlaced(ctx, outcome()))

	require.Len(t, em.calls, 1)
	assert.Equal(t, DefaultEvent, em.calls[0].event)
	assert.Equal(t, []any{Message{
		RunID:       "run-7",
		ID:          "observe",
		Unit:        "min",
		Start:       30,
		End:         45,
		Flexibility: 1.5,
		Endangered:  true,
		Step:        2,
	}}, em.calls[0].args)
	assert.Contains(t, logs.String(), "Placement published.")
}

func TestPublisherWrapsEmitError(t *testing.T) {
	ctx, _ := testutil.LoggerContext(t)
	cause := errors.New("socket closed")
	em := &fakeEmitter{err: cause}

	err := New[quantity.Minute](em, "plan", "run-7").OnPlaced(ctx, outcome())
	require.ErrorIs(t, err, cause)
	assert.ErrorContains(t, err, "task 'observe'")
	assert.Equal(t, "plan", em.calls[0].event)
}

func TestConnectRejectsBadURL(t *testing.T) {
	ctx, _ := testutil.LoggerContext(t)

	testCases := []struct {
		name        string
		url         string
		errContains string
	}{
		{name: "empty", url: "", errContains: "publish URL is empty"},
		{name: "no scheme", url: "localhost:3000", errContains: "must include scheme and host"},
		{name: "unparsable", url: "http://[::1", errContains: "failed to parse URL"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Connect(ctx, Options{URL: tc.url})
			require.ErrorContains(t, err, tc.errContains)
		})
	}
}

func TestConnectCancelled(t *testing.T) {
	ctx, _ := testutil.LoggerContext(t)
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	_, err := Connect(ctx, Options{URL: "http://127.0.0.1:1", ConnectTimeout: time.Second})
	require.Error(t, err)
}
