package metrics

import (
	"testing"

	"github.com/specialistvlad/gridplan/internal/interval"
	"github.com/specialistvlad/gridplan/internal/quantity"
	"github.com/specialistvlad/gridplan/internal/solution"
	"github.com/specialistvlad/gridplan/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sec = quantity.Second

func iv(start, end float64) interval.Interval[sec] {
	return interval.MustFromFloat[sec](start, end)
}

func sized(size float64) *task.Spec[sec] {
	return &task.Spec[sec]{Name: "t", Duration: quantity.New[sec](size)}
}

func TestMetrics(t *testing.T) {
	testCases := []struct {
		name        string
		size        float64
		windows     []interval.Interval[sec]
		horizon     interval.Interval[sec]
		est         float64
		deadline    float64
		fits        bool
		flexibility float64
	}{
		{
			name:        "single window",
			size:        10,
			windows:     []interval.Interval[sec]{iv(0, 100)},
			horizon:     iv(0, 100),
			est:         0,
			deadline:    90,
			fits:        true,
			flexibility: 10,
		},
		{
			name:        "two windows",
			size:        10,
			windows:     []interval.Interval[sec]{iv(0, 50), iv(60, 100)},
			horizon:     iv(0, 100),
			est:         0,
			deadline:    90,
			fits:        true,
			flexibility: 9,
		},
		{
			name:        "horizon narrower than window",
			size:        10,
			windows:     []interval.Interval[sec]{iv(0, 100)},
			horizon:     iv(50, 80),
			est:         50,
			deadline:    70,
			fits:        true,
			flexibility: 3,
		},
		{
			name:        "too small windows skipped",
			size:        10,
			windows:     []interval.Interval[sec]{iv(0, 5), iv(20, 35), iv(40, 48), iv(90, 95)},
			horizon:     iv(0, 100),
			est:         20,
			deadline:    25,
			fits:        true,
			flexibility: 1.5,
		},
		{
			name:        "windows outside the horizon ignored",
			size:        10,
			windows:     []interval.Interval[sec]{iv(-50, 0), iv(10, 30), iv(100, 200)},
			horizon:     iv(0, 100),
			est:         10,
			deadline:    20,
			fits:        true,
			flexibility: 2,
		},
		{
			name:        "window clipped below size by horizon",
			size:        10,
			windows:     []interval.Interval[sec]{iv(0, 55)},
			horizon:     iv(50, 100),
			fits:        false,
			flexibility: 0,
		},
		{
			name:        "no windows",
			size:        10,
			windows:     nil,
			horizon:     iv(0, 100),
			fits:        false,
			flexibility: 0,
		},
		{
			name:        "exact fit",
			size:        10,
			windows:     []interval.Interval[sec]{iv(40, 50)},
			horizon:     iv(0, 100),
			est:         40,
			deadline:    40,
			fits:        true,
			flexibility: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			space := solution.New[sec]()
			space.Set("t", tc.windows...)
			tk := sized(tc.size)

			est, ok := EST(tk, "t", space, tc.horizon)
			require.Equal(t, tc.fits, ok)
			deadline, ok := Deadline(tk, "t", space, tc.horizon)
			require.Equal(t, tc.fits, ok)
			if tc.fits {
				assert.Equal(t, tc.est, est.Value())
				assert.Equal(t, tc.deadline, deadline.Value())
				assert.True(t, est.LessOrEqual(deadline))
			}

			flex := Flexibility(tk, "t", space, tc.horizon)
			assert.InDelta(t, tc.flexibility, flex, 1e-9)
			assert.Equal(t, !tc.fits, IsImpossible(flex), "flexibility below one iff nothing fits")
		})
	}
}

func TestMissingTask(t *testing.T) {
	space := solution.New[sec]()
	space.Set("other", iv(0, 100))
	tk := sized(10)
	horizon := iv(0, 100)

	_, ok := EST(tk, "t", space, horizon)
	assert.False(t, ok)

	_, ok = Deadline(tk, "t", space, horizon)
	assert.False(t, ok)

	assert.Equal(t, 0.0, Flexibility(tk, "t", space, horizon))
}

func TestWindowVariants(t *testing.T) {
	size := quantity.New[sec](5)
	windows := interval.NewSet(iv(0, 10), iv(20, 40))
	horizon := iv(0, 100)

	est, ok := ESTIn(size, windows, horizon)
	require.True(t, ok)
	assert.Equal(t, 0.0, est.Value())

	deadline, ok := DeadlineIn(size, windows, horizon)
	require.True(t, ok)
	assert.Equal(t, 35.0, deadline.Value())

	assert.InDelta(t, 6.0, FlexibilityIn(size, windows, horizon), 1e-9)
}

func TestThresholds(t *testing.T) {
	assert.True(t, IsImpossible(0))
	assert.True(t, IsImpossible(0.99))
	assert.False(t, IsImpossible(1))

	assert.True(t, IsEndangered(1.5, 2))
	assert.False(t, IsEndangered(2, 2))
	assert.False(t, IsEndangered(10, 2))
}
