package dag

import (
	"fmt"
	"slices"
	"strings"
)

// New creates and returns an initialized, empty Graph.
func New[E any]() *Graph[E] {
	return &Graph[E]{
		nodes: make(map[string]*node[E]),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph[E]) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node[E]{
		id:         id,
		deps:       make(map[string]E),
		dependents: make(map[string]E),
	}
}

// HasNode reports whether id is in the graph.
func (g *Graph[E]) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all node ids in ascending order.
func (g *Graph[E]) Nodes() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node
// carrying label. This signifies that `toID` depends on `fromID`. Adding an
// existing edge replaces its label. An error is returned if either node does
// not exist or if the edge would create a self-reference.
func (g *Graph[E]) AddEdge(fromID, toID string, label E) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	toNode.deps[fromID] = label
	fromNode.dependents[toID] = label

	return nil
}

// Edge returns the label of the edge from -> to.
func (g *Graph[E]) Edge(fromID, toID string) (E, bool) {
	var zero E
	n, ok := g.nodes[toID]
	if !ok {
		return zero, false
	}
	label, ok := n.deps[fromID]
	return label, ok
}

// EdgeCount returns the number of edges.
func (g *Graph[E]) EdgeCount() int {
	count := 0
	for _, n := range g.nodes {
		count += len(n.deps)
	}
	return count
}

// Dependencies returns the sorted IDs of the nodes the given node depends on.
func (g *Graph[E]) Dependencies(id string) ([]string, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedKeys(n.deps), nil
}

// Dependents returns the sorted IDs of the nodes that depend on the given node.
func (g *Graph[E]) Dependents(id string) ([]string, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedKeys(n.dependents), nil
}

// Incoming returns the edges pointing at id ordered by source. An unknown id
// has no incoming edges.
func (g *Graph[E]) Incoming(id string) []Link[E] {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	links := make([]Link[E], 0, len(n.deps))
	for _, from := range sortedKeys(n.deps) {
		links = append(links, Link[E]{From: from, To: id, Label: n.deps[from]})
	}
	return links
}

// Outgoing returns the edges leaving id ordered by target.
func (g *Graph[E]) Outgoing(id string) []Link[E] {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	links := make([]Link[E], 0, len(n.dependents))
	for _, to := range sortedKeys(n.dependents) {
		links = append(links, Link[E]{From: id, To: to, Label: n.dependents[to]})
	}
	return links
}

// DetectCycles checks the graph for cycles made of edges accepted by follow;
// a nil follow accepts every edge. The returned error names the nodes on the
// first cycle found, visiting nodes in id order.
func (g *Graph[E]) DetectCycles(follow func(E) bool) error {
	// Classic depth-first search with three sets of nodes:
	// permanent: fully visited and not part of a cycle.
	// temporary: on the current recursion stack.
	// unvisited: all other nodes.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)
	var stack []string

	var visit func(n *node[E]) error
	visit = func(n *node[E]) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			start := slices.Index(stack, n.id)
			path := append(slices.Clone(stack[start:]), n.id)
			return fmt.Errorf("cycle detected involving node '%s': %s", n.id, strings.Join(path, " -> "))
		}

		temporary[n.id] = true
		stack = append(stack, n.id)

		for _, next := range sortedKeys(n.dependents) {
			if follow != nil && !follow(n.dependents[next]) {
				continue
			}
			if err := visit(g.nodes[next]); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		delete(temporary, n.id)
		permanent[n.id] = true

		return nil
	}

	for _, id := range g.Nodes() {
		if err := visit(g.nodes[id]); err != nil {
			return err
		}
	}

	return nil
}

func sortedKeys[E any](m map[string]E) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
