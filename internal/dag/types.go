package dag

// Graph is a collection of nodes and labelled edges. It is not safe for
// concurrent mutation; once built it may be read from many goroutines.
type Graph[E any] struct {
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node[E]
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs).
type node[E any] struct {
	// id is the unique identifier for the node.
	id string
	// deps holds the labels of incoming edges, keyed by source id.
	deps map[string]E
	// dependents holds the labels of outgoing edges, keyed by target id.
	dependents map[string]E
}

// Link is a labelled edge as returned by Incoming and Outgoing.
type Link[E any] struct {
	From  string
	To    string
	Label E
}
