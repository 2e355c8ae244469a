package solution

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/gridplan/internal/constraint"
	"github.com/specialistvlad/gridplan/internal/interval"
	"github.com/specialistvlad/gridplan/internal/quantity"
	"github.com/specialistvlad/gridplan/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sec = quantity.Second

func iv(start, end float64) interval.Interval[sec] {
	return interval.MustFromFloat[sec](start, end)
}

func TestSpace(t *testing.T) {
	space := New[sec]()
	assert.True(t, space.IsEmpty())

	space.Set("b", iv(50, 60), iv(0, 30), iv(20, 40))
	space.Set("a")

	got, ok := space.Get("b")
	require.True(t, ok)
	if diff := cmp.Diff(interval.NewSet(iv(0, 40), iv(50, 60)), got); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}

	empty, ok := space.Get("a")
	assert.True(t, ok, "registered with no windows is still registered")
	assert.True(t, empty.IsEmpty())

	_, ok = space.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, 2, space.Len())
	assert.Equal(t, []string{"a", "b"}, space.IDs())
}

func TestNilSpace(t *testing.T) {
	var space *Space[sec]
	_, ok := space.Get("a")
	assert.False(t, ok)
	assert.True(t, space.IsEmpty())
	assert.Nil(t, space.IDs())
}

func TestPrecompute(t *testing.T) {
	horizon := iv(0, 100)
	tasks := []*task.Spec[sec]{
		{
			Name: "windowed",
			Tree: constraint.And(
				constraint.Leaf[sec](constraint.NewWindows(iv(0, 60))),
				constraint.Not(constraint.Leaf[sec](constraint.NewWindows(iv(20, 30)))),
			),
		},
		{
			Name: "late",
			Tree: constraint.Leaf[sec](constraint.NewNotBefore(quantity.New[sec](150))),
		},
		{Name: "free"},
	}

	space := Precompute(tasks, horizon)

	assert.Equal(t, []string{"late", "windowed"}, space.IDs())

	windowed, ok := space.Get("windowed")
	require.True(t, ok)
	assert.True(t, windowed.Equal(interval.NewSet(iv(0, 20), iv(30, 60))), "got %s", windowed)

	late, ok := space.Get("late")
	require.True(t, ok)
	assert.True(t, late.IsEmpty(), "constraint entirely outside the horizon yields an empty entry")

	_, ok = space.Get("free")
	assert.False(t, ok, "tasks without a tree are not registered")
}
