// file: internal/models/user_test.go
// version: 1.0.0
// guid: 8a1e4c3b-2f6d-4e7a-b5c9-0d3f1a2e6b74

package models

import (
	"encoding/json"
	"testing"
)

// TestUserJSONFieldNames tests that User serializes with lowercase keys
func TestUserJSONFieldNames(t *testing.T) {
	user := User{ID: 7, Name: "Test User", Email: "test@example.com"}

	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("Failed to marshal user: %v", err)
	}

	expected := `{"id":7,"name":"Test User","email":"test@example.com"}`
	if string(data) != expected {
		t.Errorf("Expected %s, got %s", expected, string(data))
	}
}

// TestUserInputIgnoresID tests that a client-supplied id is dropped on decode
func TestUserInputIgnoresID(t *testing.T) {
	var in UserInput
	if err := json.Unmarshal([]byte(`{"id":99,"name":"A","email":"a@example.com"}`), &in); err != nil {
		t.Fatalf("Failed to unmarshal input: %v", err)
	}

	user := in.ToUser(3)
	if user.ID != 3 {
		t.Errorf("Expected ID 3, got %d", user.ID)
	}
	if user.Name != "A" || user.Email != "a@example.com" {
		t.Errorf("Unexpected user fields: %+v", user)
	}
}
