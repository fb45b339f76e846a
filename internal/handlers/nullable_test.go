package handlers

import (
	"encoding/json"
	"testing"
)

func TestNullable(t *testing.T) {
	type body struct {
		Weight Nullable[float64] `json:"weight_kg"`
	}

	tests := []struct {
		name    string
		in      string
		set     bool
		cleared bool
		value   float64
	}{
		{"missing", `{}`, false, false, 0},
		{"null", `{"weight_kg": null}`, true, true, 0},
		{"value", `{"weight_kg": 4.2}`, true, false, 4.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b body
			if err := json.Unmarshal([]byte(tt.in), &b); err != nil {
				t.Fatal(err)
			}
			if b.Weight.Set != tt.set || b.Weight.Cleared() != tt.cleared {
				t.Fatalf("got %+v", b.Weight)
			}
			if tt.value != 0 && (b.Weight.Value == nil || *b.Weight.Value != tt.value) {
				t.Fatalf("value = %v", b.Weight.Value)
			}
		})
	}

	var b body
	if err := json.Unmarshal([]byte(`{"weight_kg": "heavy"}`), &b); err == nil {
		t.Fatal("expected type error")
	}
}
