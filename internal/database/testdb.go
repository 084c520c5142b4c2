package database

import (
	"testing"
)

// NewTestHandle creates a fresh in-memory SQLite database with the schema
// and default settings applied.
func NewTestHandle(t *testing.T) *Handle {
	t.Helper()

	h, err := OpenHandle(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := SeedDefaults(h.DB()); err != nil {
		h.Close()
		t.Fatalf("seeding test database: %v", err)
	}

	t.Cleanup(func() { h.Close() })

	return h
}
