package constraint

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/gridplan/internal/interval"
	"github.com/specialistvlad/gridplan/internal/quantity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sec = quantity.Second

func iv(start, end float64) interval.Interval[sec] {
	return interval.MustFromFloat[sec](start, end)
}

func windows(ivs ...interval.Interval[sec]) *Expr[sec] {
	return Leaf[sec](NewWindows(ivs...))
}

func notBefore(t float64) *Expr[sec] {
	return Leaf[sec](NewNotBefore(quantity.New[sec](t)))
}

func notAfter(t float64) *Expr[sec] {
	return Leaf[sec](NewNotAfter(quantity.New[sec](t)))
}

func TestEvaluate(t *testing.T) {
	rng := iv(0, 100)

	testCases := []struct {
		name     string
		expr     *Expr[sec]
		expected interval.Set[sec]
	}{
		{
			name:     "leaf windows clipped to range",
			expr:     windows(iv(-10, 20), iv(90, 150)),
			expected: interval.NewSet(iv(0, 20), iv(90, 100)),
		},
		{
			name:     "empty AND is the whole range",
			expr:     And[sec](),
			expected: interval.Single(rng),
		},
		{
			name:     "empty OR is empty",
			expr:     Or[sec](),
			expected: interval.Set[sec]{},
		},
		{
			name:     "AND intersects children",
			expr:     And(windows(iv(0, 60)), notBefore(40)),
			expected: interval.Single(iv(40, 60)),
		},
		{
			name:     "OR merges overlapping and adjacent results",
			expr:     Or(windows(iv(0, 30)), windows(iv(20, 50)), windows(iv(50, 60)), windows(iv(80, 90))),
			expected: interval.NewSet(iv(0, 60), iv(80, 90)),
		},
		{
			name:     "NOT complements within the range",
			expr:     Not(windows(iv(20, 30), iv(60, 70))),
			expected: interval.NewSet(iv(0, 20), iv(30, 60), iv(70, 100)),
		},
		{
			name:     "NOT of NOT restores the child",
			expr:     Not(Not(windows(iv(20, 30)))),
			expected: interval.Single(iv(20, 30)),
		},
		{
			name:     "not before and not after",
			expr:     And(notBefore(10), notAfter(25)),
			expected: interval.Single(iv(10, 25)),
		},
		{
			name:     "not after before range start",
			expr:     notAfter(-5),
			expected: interval.Set[sec]{},
		},
		{
			name:     "not before past range end",
			expr:     notBefore(100),
			expected: interval.Set[sec]{},
		},
		{
			name: "nested tree",
			expr: And(
				Or(windows(iv(0, 40)), windows(iv(60, 100))),
				Not(windows(iv(30, 70))),
			),
			expected: interval.NewSet(iv(0, 30), iv(70, 100)),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.expr.Evaluate(rng)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("Evaluate() mismatch (-want +got):\n%s", diff)
			}
			assert.True(t, interval.IsCanonical(got.Intervals()))
			assert.True(t, got.Equal(tc.expr.Evaluate(rng)), "evaluation must be deterministic")
		})
	}
}

func TestAddChild(t *testing.T) {
	t.Run("leaf rejects children", func(t *testing.T) {
		leaf := notBefore(1)
		err := leaf.AddChild(notAfter(2))
		require.ErrorIs(t, err, ErrCannotAddChildToLeaf)
		assert.Empty(t, leaf.Children())
	})

	t.Run("NOT accepts exactly one child", func(t *testing.T) {
		not := NewNot[sec]()
		require.NoError(t, not.AddChild(windows(iv(0, 10))))

		err := not.AddChild(windows(iv(20, 30)))
		require.ErrorIs(t, err, ErrCannotAddChildToNot)
		assert.Len(t, not.Children(), 1)

		err = Not(windows(iv(0, 1))).AddChild(windows(iv(2, 3)))
		require.ErrorIs(t, err, ErrCannotAddChildToNot)
	})

	t.Run("NOT without child is the whole range", func(t *testing.T) {
		got := NewNot[sec]().Evaluate(iv(0, 10))
		assert.True(t, got.Equal(interval.Single(iv(0, 10))))
	})

	t.Run("AND and OR accept many children", func(t *testing.T) {
		for _, e := range []*Expr[sec]{And[sec](), Or[sec]()} {
			for i := 0; i < 5; i++ {
				require.NoError(t, e.AddChild(windows(iv(0, 10))))
			}
			assert.Len(t, e.Children(), 5)
		}
	})
}

func TestString(t *testing.T) {
	expr := And(windows(iv(0, 10)), Not(notBefore(5)))
	assert.Equal(t, "AND(Windows{[0.000, 10.000)}, NOT(NotBefore(5.000)))", expr.String())
	assert.Equal(t, "OR()", Or[sec]().String())
	assert.Equal(t, "NotAfter(2.500)", notAfter(2.5).String())
	assert.Equal(t, "LEAF", OpLeaf.String())
}
