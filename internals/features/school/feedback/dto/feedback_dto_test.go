package dto

import (
	"encoding/json"
	"testing"
)

func TestPatchFieldTriState(t *testing.T) {
	type payload struct {
		Text  PatchField[string] `json:"text"`
		Order PatchField[int]    `json:"order"`
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"text":null,"order":5}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !p.Text.Present || p.Text.Value != nil {
		t.Errorf("explicit null must be present with nil value: %+v", p.Text)
	}
	if !p.Order.Present || p.Order.Value == nil || *p.Order.Value != 5 {
		t.Errorf("set field must carry the value: %+v", p.Order)
	}

	var q payload
	if err := json.Unmarshal([]byte(`{}`), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if q.Text.Present || q.Order.Present {
		t.Errorf("absent fields must not be present: %+v", q)
	}
}

func TestParseOptionsRoundTrip(t *testing.T) {
	raw, err := OptionsToJSON([]QuestionOptionDTO{
		{Value: " A ", Label: " Yes ", LabelAlt: "Ya"},
		{Value: "B", Label: "No"},
	})
	if err != nil {
		t.Fatalf("to json: %v", err)
	}

	opts, err := ParseOptions(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(opts) != 2 {
		t.Fatalf("len = %d, want 2", len(opts))
	}
	// values and labels are trimmed on the way in
	if opts[0].Value != "A" || opts[0].Label != "Yes" || opts[0].LabelAlt != "Ya" {
		t.Errorf("first option = %+v", opts[0])
	}

	empty, err := ParseOptions(nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("nil column must parse to empty set, got %v %v", empty, err)
	}
}
