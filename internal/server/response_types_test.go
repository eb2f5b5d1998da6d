// file: internal/server/response_types_test.go
// version: 2.0.0
// guid: 8a9b0c1d-2e3f-4a5b-6c7d-8e9f0a1b2c3d

package server

import (
	"encoding/json"
	"testing"
)

func TestErrorResponse_OmitsEmptyCode(t *testing.T) {
	data, err := json.Marshal(ErrorResponse{Error: UnexpectedErrorMessage})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"error":"An unexpected error occurred. Please try again later."}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestViolation_JSONShape(t *testing.T) {
	data, err := json.Marshal([]Violation{{Field: "email", Error: "email is required"}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[{"field":"email","error":"email is required"}]`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestProblemResponse_CarriesDetail(t *testing.T) {
	data, err := json.Marshal(ProblemResponse{Title: "t", Status: 500, Detail: "boom"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["detail"] != "boom" {
		t.Errorf("expected detail 'boom', got %v", decoded["detail"])
	}
}
