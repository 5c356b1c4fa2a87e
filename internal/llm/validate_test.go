package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var testSchema = &Schema{
	Name:        "test-plan",
	Description: "test schema",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"count": map[string]any{"type": "integer", "minimum": 1},
			"name":  map[string]any{"type": "string"},
		},
		"required":             []any{"count", "name"},
		"additionalProperties": false,
	},
}

func TestValidateResponse_NilSchemaPasses(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("nil schema must pass anything, got %v", err)
	}
}

func TestValidateResponse_Conforming(t *testing.T) {
	err := validateResponse(testSchema, json.RawMessage(`{"count": 3, "name": "quiz"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_InvalidJSON(t *testing.T) {
	err := validateResponse(testSchema, json.RawMessage(`{broken`))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
}

func TestValidateResponse_SchemaViolations(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"missing field", `{"count": 3}`},
		{"wrong type", `{"count": "three", "name": "quiz"}`},
		{"below minimum", `{"count": 0, "name": "quiz"}`},
		{"extra field", `{"count": 3, "name": "quiz", "extra": true}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateResponse(testSchema, json.RawMessage(tc.raw))
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got %T: %v", err, err)
			}
			if string(inv.Content) != tc.raw {
				t.Fatalf("expected offending content preserved")
			}
		})
	}
}

func TestValidateResponse_CacheReusesCompiledSchema(t *testing.T) {
	// Two validations against the same named schema hit the cache; this
	// just asserts the second call still behaves correctly.
	for i := 0; i < 2; i++ {
		if err := validateResponse(testSchema, json.RawMessage(`{"count": 1, "name": "x"}`)); err != nil {
			t.Fatalf("pass %d: unexpected error: %v", i, err)
		}
	}
}
