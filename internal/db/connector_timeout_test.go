package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

// TestStandardConnector_RespectsContextTimeout verifies that the connector fails
// within the caller's deadline and does not retry.
func TestStandardConnector_RespectsContextTimeout(t *testing.T) {
	config := &tsqlx.ConnectionConfig{
		Host:       "nonexistent.invalid",
		Port:       1433,
		Database:   "testdb",
		Username:   "testuser",
		Password:   "testpass",
		AuthMethod: tsqlx.AuthMethodSQL,
	}

	connector := NewStandardConnector(config)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	start := time.Now()
	db, err := connector.Connect(ctx)
	elapsed := time.Since(start)

	if err == nil {
		db.Close()
		t.Fatal("Expected connection error, got nil")
	}
	if !errors.Is(err, tsqlx.ErrConnectionFailed) {
		t.Errorf("expected ErrConnectionFailed, got %v", err)
	}
	if elapsed > 3*time.Second {
		t.Errorf("Expected connection to fail within the 500ms deadline, took %v", elapsed)
	}
}
