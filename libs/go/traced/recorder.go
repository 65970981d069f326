package traced

import "slices"

// Recorder collects values in the order they are computed. Because a value can
// only reference nodes that already exist when it is built, recording order is a
// topological order of the provenance graph.
type Recorder struct {
	nodes      []TracedValue
	index      map[string]int
	duplicates []string
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{index: map[string]int{}}
}

// Record stores v and returns it unchanged. Recording an id again with the
// same amount, label and inputs is a no-op. Recording it with anything else
// keeps both nodes, so Duplicates and Graph.Validate report the clash; Get
// returns the newer one.
func (r *Recorder) Record(v TracedValue) TracedValue {
	if r == nil {
		return v
	}
	if r.index == nil {
		r.index = map[string]int{}
	}
	if i, ok := r.index[v.NodeID]; ok {
		if sameNode(r.nodes[i], v) {
			return v
		}
		r.duplicates = append(r.duplicates, v.NodeID)
	}
	r.index[v.NodeID] = len(r.nodes)
	r.nodes = append(r.nodes, v)
	return v
}

// Input records a source-document leaf.
func (r *Recorder) Input(amount int64, nodeID, label string) TracedValue {
	return r.Record(FromInput(amount, nodeID, label))
}

// Compute records a derived node.
func (r *Recorder) Compute(amount int64, nodeID string, inputIDs []string, label string) TracedValue {
	return r.Record(FromComputation(amount, nodeID, inputIDs, label))
}

// Zero records a zero node.
func (r *Recorder) Zero(nodeID, label string) TracedValue {
	return r.Record(Zero(nodeID, label))
}

// Sum records the sum of values.
func (r *Recorder) Sum(nodeID, label string, values ...TracedValue) TracedValue {
	return r.Record(Sum(nodeID, label, values...))
}

// Get returns a previously recorded node.
func (r *Recorder) Get(nodeID string) (TracedValue, bool) {
	if r == nil || r.index == nil {
		return TracedValue{}, false
	}
	i, ok := r.index[nodeID]
	if !ok {
		return TracedValue{}, false
	}
	return r.nodes[i], true
}

// Nodes returns a copy of the recorded nodes in recording order.
func (r *Recorder) Nodes() []TracedValue {
	if r == nil {
		return nil
	}
	return append([]TracedValue{}, r.nodes...)
}

// Len returns the number of recorded nodes.
func (r *Recorder) Len() int {
	if r == nil {
		return 0
	}
	return len(r.nodes)
}

// Duplicates returns the ids recorded more than once with differing values,
// once per clash.
func (r *Recorder) Duplicates() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.duplicates...)
}

func sameNode(a, b TracedValue) bool {
	return a.NodeID == b.NodeID && a.Amount == b.Amount && a.Label == b.Label && slices.Equal(a.InputIDs, b.InputIDs)
}
