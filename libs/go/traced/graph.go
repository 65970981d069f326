package traced

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownNode is returned when a node id is not part of the graph.
	ErrUnknownNode = errors.New("traced: unknown node")
	// ErrInvalidGraph is returned by Validate when the provenance graph is malformed.
	ErrInvalidGraph = errors.New("traced: invalid provenance graph")
	// ErrDuplicateNode is returned by Validate when one id names two different
	// nodes. It matches ErrInvalidGraph as well.
	ErrDuplicateNode = fmt.Errorf("%w: duplicate node id", ErrInvalidGraph)
)

// Graph is a read-only index over an ordered list of traced values.
type Graph struct {
	nodes      []TracedValue
	index      map[string]int
	duplicates []string
}

// NewGraph indexes nodes. An id repeated with identical content is kept once.
// A conflicting repeat is kept too and reported by Validate; lookups resolve
// the id to the later occurrence.
func NewGraph(nodes ...[]TracedValue) *Graph {
	g := &Graph{index: map[string]int{}}
	for _, group := range nodes {
		for _, n := range group {
			if i, ok := g.index[n.NodeID]; ok {
				if sameNode(g.nodes[i], n) {
					continue
				}
				g.duplicates = append(g.duplicates, n.NodeID)
			}
			g.index[n.NodeID] = len(g.nodes)
			g.nodes = append(g.nodes, n)
		}
	}
	return g
}

// Len returns the node count.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Get looks up a node by id.
func (g *Graph) Get(nodeID string) (TracedValue, error) {
	i, ok := g.index[nodeID]
	if !ok {
		return TracedValue{}, fmt.Errorf("%w: %s", ErrUnknownNode, nodeID)
	}
	return g.nodes[i], nil
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []TracedValue {
	return append([]TracedValue{}, g.nodes...)
}

// Validate checks that every id names one node and that every input id names
// a node inserted strictly earlier. The second rule rules out cycles, self
// references and dangling inputs.
func (g *Graph) Validate() error {
	var problems []string
	for _, id := range g.duplicates {
		problems = append(problems, fmt.Sprintf("%s recorded more than once with different values", id))
	}
	for pos, n := range g.nodes {
		for _, in := range n.InputIDs {
			j, ok := g.index[in]
			switch {
			case !ok:
				problems = append(problems, fmt.Sprintf("%s references unknown node %s", n.NodeID, in))
			case j >= pos:
				problems = append(problems, fmt.Sprintf("%s references %s which is not computed before it", n.NodeID, in))
			}
		}
	}
	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	if len(g.duplicates) > 0 {
		return fmt.Errorf("%w: %v", ErrDuplicateNode, problems)
	}
	return fmt.Errorf("%w: %v", ErrInvalidGraph, problems)
}

// Explanation is one node of a provenance tree.
type Explanation struct {
	NodeID string         `json:"node_id"`
	Label  string         `json:"label"`
	Amount int64          `json:"amount"`
	Inputs []*Explanation `json:"inputs,omitempty"`
	// Repeated marks a node already expanded elsewhere in the tree.
	Repeated bool `json:"repeated,omitempty"`
}

// Explain builds the provenance tree rooted at nodeID. A node reached a second
// time is emitted once more without children.
func (g *Graph) Explain(nodeID string) (*Explanation, error) {
	if _, ok := g.index[nodeID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, nodeID)
	}
	seen := map[string]bool{}
	return g.explain(nodeID, seen), nil
}

func (g *Graph) explain(nodeID string, seen map[string]bool) *Explanation {
	i, ok := g.index[nodeID]
	if !ok {
		return &Explanation{NodeID: nodeID, Label: "(unresolved)"}
	}
	n := g.nodes[i]
	e := &Explanation{NodeID: n.NodeID, Label: n.Label, Amount: n.Amount}
	if seen[nodeID] {
		e.Repeated = len(n.InputIDs) > 0
		return e
	}
	seen[nodeID] = true
	for _, in := range n.InputIDs {
		e.Inputs = append(e.Inputs, g.explain(in, seen))
	}
	return e
}

// Leaves returns the ids of every leaf node reachable from nodeID, sorted.
func (g *Graph) Leaves(nodeID string) ([]string, error) {
	root, err := g.Explain(nodeID)
	if err != nil {
		return nil, err
	}
	set := map[string]bool{}
	var walk func(e *Explanation)
	walk = func(e *Explanation) {
		if len(e.Inputs) == 0 && !e.Repeated {
			set[e.NodeID] = true
			return
		}
		for _, in := range e.Inputs {
			walk(in)
		}
	}
	walk(root)
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
