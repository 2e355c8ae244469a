package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New[string]()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
}

func TestAddNode(t *testing.T) {
	g := New[string]()

	g.AddNode("a")
	assert.Len(t, g.nodes, 1)
	nodeA, ok := g.nodes["a"]
	require.True(t, ok)
	assert.Equal(t, "a", nodeA.id)
	assert.NotNil(t, nodeA.deps)
	assert.NotNil(t, nodeA.dependents)

	g.AddNode("a") // Test idempotency
	assert.Len(t, g.nodes, 1)

	g.AddNode("b")
	assert.True(t, g.HasNode("b"))
	assert.False(t, g.HasNode("c"))
	assert.Equal(t, []string{"a", "b"}, g.Nodes())
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New[string]()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("a", "b", "first") // b depends on a
		require.NoError(t, err)

		assert.Contains(t, g.nodes["a"].dependents, "b")
		assert.Contains(t, g.nodes["b"].deps, "a")

		label, ok := g.Edge("a", "b")
		require.True(t, ok)
		assert.Equal(t, "first", label)

		_, ok = g.Edge("b", "a")
		assert.False(t, ok)
	})

	t.Run("re-adding replaces the label", func(t *testing.T) {
		g := New[string]()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b", "first"))
		require.NoError(t, g.AddEdge("a", "b", "second"))

		label, _ := g.Edge("a", "b")
		assert.Equal(t, "second", label)
		assert.Equal(t, 1, g.EdgeCount())
	})

	t.Run("error cases", func(t *testing.T) {
		g := New[string]()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("dne", "a", "")
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge("a", "dne", "")
		assert.ErrorContains(t, err, "destination node not found")

		err = g.AddEdge("a", "a", "")
		assert.ErrorContains(t, err, "self-referential edge")
	})
}

func TestNeighbours(t *testing.T) {
	g := New[int]()
	for _, id := range []string{"c", "a", "b", "t"} {
		g.AddNode(id)
	}
	require.NoError(t, g.AddEdge("c", "t", 3))
	require.NoError(t, g.AddEdge("a", "t", 1))
	require.NoError(t, g.AddEdge("b", "t", 2))
	require.NoError(t, g.AddEdge("a", "b", 4))

	deps, err := g.Dependencies("t")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, deps)

	dependents, err := g.Dependents("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "t"}, dependents)

	_, err = g.Dependencies("dne")
	assert.ErrorContains(t, err, "node not found")

	incoming := g.Incoming("t")
	require.Len(t, incoming, 3)
	assert.Equal(t, Link[int]{From: "a", To: "t", Label: 1}, incoming[0])
	assert.Equal(t, Link[int]{From: "c", To: "t", Label: 3}, incoming[2])

	assert.Equal(t, []Link[int]{{From: "a", To: "b", Label: 4}, {From: "a", To: "t", Label: 1}}, g.Outgoing("a"))
	assert.Nil(t, g.Incoming("dne"))
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		g := New[string]()
		assert.NoError(t, g.DetectCycles(nil))
	})

	t.Run("graph with nodes but no edges has no cycles", func(t *testing.T) {
		g := New[string]()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		assert.NoError(t, g.DetectCycles(nil))
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := New[string]()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		g.AddNode("d")
		require.NoError(t, g.AddEdge("a", "b", ""))
		require.NoError(t, g.AddEdge("b", "c", ""))
		require.NoError(t, g.AddEdge("a", "c", "")) // Transitive edge
		require.NoError(t, g.AddEdge("c", "d", ""))
		assert.NoError(t, g.DetectCycles(nil))
	})

	t.Run("simple direct cycle is detected", func(t *testing.T) {
		g := New[string]()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b", ""))
		require.NoError(t, g.AddEdge("b", "a", "")) // Cycle
		err := g.DetectCycles(nil)
		assert.ErrorContains(t, err, "cycle detected")
		assert.ErrorContains(t, err, "a -> b -> a")
	})

	t.Run("longer cycle is detected", func(t *testing.T) {
		g := New[string]()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		g.AddNode("d")
		require.NoError(t, g.AddEdge("a", "b", ""))
		require.NoError(t, g.AddEdge("b", "c", ""))
		require.NoError(t, g.AddEdge("c", "d", ""))
		require.NoError(t, g.AddEdge("d", "a", "")) // Cycle back to the start
		err := g.DetectCycles(nil)
		assert.ErrorContains(t, err, "a -> b -> c -> d -> a")
	})

	t.Run("cycle in a disjoint component is detected", func(t *testing.T) {
		g := New[string]()
		// Component 1 (valid)
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b", ""))

		// Component 2 (has a cycle)
		g.AddNode("x")
		g.AddNode("y")
		g.AddNode("z")
		require.NoError(t, g.AddEdge("x", "y", ""))
		require.NoError(t, g.AddEdge("y", "z", ""))
		require.NoError(t, g.AddEdge("z", "y", "")) // Cycle

		err := g.DetectCycles(nil)
		assert.ErrorContains(t, err, "y -> z -> y")
	})

	t.Run("filtered edges are ignored", func(t *testing.T) {
		g := New[string]()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b", "order"))
		require.NoError(t, g.AddEdge("b", "a", "mutex"))

		onlyOrder := func(label string) bool { return label == "order" }
		assert.NoError(t, g.DetectCycles(onlyOrder))
		assert.Error(t, g.DetectCycles(nil))
	})
}
