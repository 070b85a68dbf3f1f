package database

import (
	"context"
	"fmt"

	"spendwise/internal/domain/resource"
)

// Store runs each resource operation in its own transaction.
type Store struct {
	db *DB
}

var _ resource.Store = (*Store)(nil)

func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// WithinTx commits when fn returns nil and rolls back on error or panic.
func (s *Store) WithinTx(ctx context.Context, fn func(resource.Repository) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", classify(err))
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Repository{tx: tx, dialect: s.db.dialect}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", classify(err))
	}

	return nil
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
