package handlers

import (
	"bytes"
	"encoding/json"
)

// Nullable tells a missing JSON key apart from an explicit null, so PATCH
// bodies can clear optional columns.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// Cleared reports an explicit null.
func (n Nullable[T]) Cleared() bool {
	return n.Set && n.Value == nil
}
