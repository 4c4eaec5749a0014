package model

// Change is a single field transition recorded in an audit trail.
type Change struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// Changes is keyed by the JSON name of the field that moved.
type Changes map[string]Change
