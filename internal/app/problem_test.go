package app

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/gridplan/internal/config"
	"github.com/specialistvlad/gridplan/internal/constraint"
	"github.com/specialistvlad/gridplan/internal/dynamic"
	"github.com/specialistvlad/gridplan/internal/interval"
	"github.com/specialistvlad/gridplan/internal/quantity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sec = quantity.Second

func windowsLeaf(pairs ...[2]float64) config.Leaf {
	l := config.Leaf{Kind: config.LeafWindows}
	for _, p := range pairs {
		l.Windows = append(l.Windows, config.Window{Start: p[0], End: p[1]})
	}
	return l
}

func modelWith(tasks []*config.Task, deps ...*config.Dependency) *config.Model {
	return &config.Model{
		Horizon:      &config.Horizon{Unit: "second", Start: 0, End: 100},
		Tasks:        tasks,
		Dependencies: deps,
	}
}

func TestBuildProblem(t *testing.T) {
	tree := &config.Constraint{
		Op:     config.OpAnd,
		Leaves: []config.Leaf{windowsLeaf([2]float64{0, 50}, [2]float64{60, 90})},
		Children: []*config.Constraint{
			{Op: config.OpNot, Leaves: []config.Leaf{{Kind: config.LeafNotAfter, At: 10}}},
		},
	}
	m := modelWith(
		[]*config.Task{
			{ID: "a", Size: 5, Priority: 2, GapAfter: 1, Constraint: tree},
			{ID: "b", Size: 5},
		},
		&config.Dependency{From: "a", To: "b", Kind: "exclusive"},
		&config.Dependency{From: "b", To: "a", Kind: "Exclusive"},
	)

	prob, err := buildProblem[sec](m)
	require.NoError(t, err, "mutual exclusion is not a cycle")

	assert.True(t, prob.Horizon.Equal(interval.MustFromFloat[sec](0, 100)))
	require.Len(t, prob.Tasks, 2)

	a := prob.Tasks[0]
	assert.Equal(t, "a", a.ID())
	assert.Equal(t, 2, a.Priority())
	assert.Equal(t, 1.0, a.GapAfter().Value())
	require.NotNil(t, a.Constraints())
	assert.Equal(t, "AND(Windows{[0.000, 50.000), [60.000, 90.000)}, NOT(NotAfter(10.000)))", a.Constraints().String())
	assert.Equal(t,
		interval.NewSet(interval.MustFromFloat[sec](10, 50), interval.MustFromFloat[sec](60, 90)).String(),
		a.Constraints().Evaluate(prob.Horizon).String())

	assert.Nil(t, prob.Tasks[1].Constraints())

	assert.Equal(t, 2, prob.Index.Len())
	c, ok := prob.Index.Get(dynamic.Edge{From: "a", To: "b"})
	require.True(t, ok)
	assert.Equal(t, "Exclusive", c.String())
}

func TestBuildProblemErrors(t *testing.T) {
	testCases := []struct {
		name        string
		model       *config.Model
		errIs       error
		errContains string
	}{
		{
			name: "unknown dependency endpoint",
			model: modelWith([]*config.Task{{ID: "a", Size: 1}},
				&config.Dependency{From: "a", To: "ghost", Kind: "dependence", Source: "p.hcl"}),
			errContains: "p.hcl: unknown task 'ghost'",
		},
		{
			name: "bad kind",
			model: modelWith([]*config.Task{{ID: "a", Size: 1}, {ID: "b", Size: 1}},
				&config.Dependency{From: "a", To: "b", Kind: "before"}),
			errContains: "unknown dependency kind",
		},
		{
			name: "self dependency",
			model: modelWith([]*config.Task{{ID: "a", Size: 1}},
				&config.Dependency{From: "a", To: "a", Kind: "dependence"}),
			errContains: "self-referential edge",
		},
		{
			name: "consecutive cycle",
			model: modelWith([]*config.Task{{ID: "a", Size: 1}, {ID: "b", Size: 1}, {ID: "c", Size: 1}},
				&config.Dependency{From: "a", To: "b", Kind: "consecutive"},
				&config.Dependency{From: "b", To: "c", Kind: "dependence"},
				&config.Dependency{From: "c", To: "a", Kind: "dependence"}),
			errContains: "cycle detected involving node",
		},
		{
			name: "leaf with two leaves",
			model: modelWith([]*config.Task{{ID: "a", Size: 1, Constraint: &config.Constraint{
				Op:     config.OpLeaf,
				Leaves: []config.Leaf{{Kind: config.LeafNotBefore, At: 1}, {Kind: config.LeafNotAfter, At: 2}},
			}}}),
			errContains: "exactly one leaf, got 2",
		},
		{
			name: "not with two children",
			model: modelWith([]*config.Task{{ID: "a", Size: 1, Constraint: &config.Constraint{
				Op:     config.OpNot,
				Leaves: []config.Leaf{{Kind: config.LeafNotBefore, At: 1}, {Kind: config.LeafNotAfter, At: 2}},
			}}}),
			errIs: constraint.ErrCannotAddChildToNot,
		},
		{
			name:        "not without child",
			model:       modelWith([]*config.Task{{ID: "a", Size: 1, Constraint: &config.Constraint{Op: config.OpNot}}}),
			errContains: "needs a child",
		},
		{
			name: "inverted window",
			model: modelWith([]*config.Task{{ID: "a", Size: 1, Constraint: &config.Constraint{
				Op:     config.OpLeaf,
				Leaves: []config.Leaf{windowsLeaf([2]float64{9, 3})},
			}}}),
			errIs: interval.ErrInvalidInterval,
		},
		{
			name: "unknown op",
			model: modelWith([]*config.Task{{ID: "a", Size: 1, Constraint: &config.Constraint{
				Op: "xor",
			}}}),
			errContains: `unknown constraint op "xor"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := buildProblem[sec](tc.model)
			require.Error(t, err)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
			}
			if tc.errContains != "" {
				assert.ErrorContains(t, err, tc.errContains)
			}
		})
	}
}

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name        string
		cfg         Config
		errContains string
	}{
		{name: "defaults output", cfg: Config{ProblemPath: "p.hcl"}},
		{name: "missing path", cfg: Config{}, errContains: "ProblemPath is a required"},
		{name: "bad output", cfg: Config{ProblemPath: "p.hcl", Output: "yaml"}, errContains: "invalid output format"},
		{name: "negative threshold", cfg: Config{ProblemPath: "p.hcl", EndangeredThreshold: -1}, errContains: "endangered threshold"},
		{name: "negative workers", cfg: Config{ProblemPath: "p.hcl", Workers: -2}, errContains: "workers"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.cfg)
			if tc.errContains != "" {
				require.ErrorContains(t, err, tc.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, OutputText, cfg.Output)
		})
	}
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	logger = newLogger("nonsense", "text", &buf)
	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden", "unknown levels fall back to info")
	assert.Contains(t, buf.String(), "msg=shown")
}
