package database

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/ghuser/lostfound/pkg/logger"
)

func TestNewPool_InvalidURL(t *testing.T) {
	_, err := NewPool(context.Background(), "postgres://nobody@localhost:1/none?connect_timeout=1", logger.Discard())
	if err == nil {
		t.Fatal("expected error when database is unreachable")
	}
}

// Integration tests: skipped unless DATABASE_URL is set.
func TestDatabaseIntegration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}

	ctx := context.Background()
	db, err := NewPool(ctx, url, logger.Discard())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer db.Close() //nolint:errcheck

	// Temp tables are per-connection; pin the pool to one connection.
	db.DB().SetMaxOpenConns(1)
	if _, err := db.DB().ExecContext(ctx, `CREATE TEMP TABLE tx_roundtrip (n int)`); err != nil {
		t.Fatalf("create temp table: %v", err)
	}

	t.Run("Ping", func(t *testing.T) {
		if err := db.Ping(ctx); err != nil {
			t.Fatalf("ping: %v", err)
		}
	})

	t.Run("WithTx_Commit", func(t *testing.T) {
		err := db.WithTx(ctx, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO tx_roundtrip (n) VALUES (1)`)
			return err
		})
		if err != nil {
			t.Fatalf("WithTx: %v", err)
		}
		var n int
		if err := db.DB().QueryRowContext(ctx, `SELECT count(*) FROM tx_roundtrip WHERE n = 1`).Scan(&n); err != nil {
			t.Fatalf("count: %v", err)
		}
		if n != 1 {
			t.Errorf("expected 1 committed row, got %d", n)
		}
	})

	t.Run("WithTx_RollbackKeepsError", func(t *testing.T) {
		sentinel := errors.New("abort")
		err := db.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `INSERT INTO tx_roundtrip (n) VALUES (2)`); err != nil {
				return err
			}
			return sentinel
		})
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected sentinel error, got %v", err)
		}
		var n int
		if err := db.DB().QueryRowContext(ctx, `SELECT count(*) FROM tx_roundtrip WHERE n = 2`).Scan(&n); err != nil {
			t.Fatalf("count: %v", err)
		}
		if n != 0 {
			t.Errorf("expected rollback, found %d rows", n)
		}
	})
}
