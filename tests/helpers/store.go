package helpers

import (
	"testing"

	"github.com/rahhal10/Final-Backend/internal/repository"
)

func NewTestSQLiteStore(t *testing.T) *store.SQLStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}
