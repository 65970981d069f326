package traced

// TracedValue is an amount in cents annotated with the nodes it was derived from.
type TracedValue struct {
	Amount   int64    `json:"amount"`
	NodeID   string   `json:"node_id"`
	InputIDs []string `json:"input_ids"`
	Label    string   `json:"label"`
}

// Zero returns a zero-amount node with no inputs
func Zero(nodeID string, label ...string) TracedValue {
	l := nodeID
	if len(label) > 0 && label[0] != "" {
		l = label[0]
	}
	return TracedValue{
		Amount:   0,
		NodeID:   nodeID,
		InputIDs: []string{},
		Label:    l,
	}
}

// FromComputation returns a node asserting amount was derived from inputIDs.
// The inputs are not checked against any graph; callers construct values in
// dependency order.
func FromComputation(amount int64, nodeID string, inputIDs []string, label string) TracedValue {
	ids := make([]string, 0, len(inputIDs))
	for _, id := range inputIDs {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return TracedValue{
		Amount:   amount,
		NodeID:   nodeID,
		InputIDs: ids,
		Label:    label,
	}
}

// FromInput returns a leaf node for a figure taken directly from a source document.
func FromInput(amount int64, nodeID string, label string) TracedValue {
	return FromComputation(amount, nodeID, nil, label)
}

// Sum adds the given values into a single node that lists each of them as input.
func Sum(nodeID, label string, values ...TracedValue) TracedValue {
	var total int64
	ids := make([]string, 0, len(values))
	for _, v := range values {
		total += v.Amount
		ids = append(ids, v.NodeID)
	}
	return FromComputation(total, nodeID, ids, label)
}

// IDs returns the node ids of values, in order.
func IDs(values ...TracedValue) []string {
	ids := make([]string, 0, len(values))
	for _, v := range values {
		ids = append(ids, v.NodeID)
	}
	return ids
}

// IsZero reports whether the value carries a zero amount.
func (v TracedValue) IsZero() bool {
	return v.Amount == 0
}

// WithAmount returns a copy of v with a different amount and the same provenance.
func (v TracedValue) WithAmount(amount int64) TracedValue {
	clone := v
	clone.Amount = amount
	clone.InputIDs = append([]string{}, v.InputIDs...)
	return clone
}
