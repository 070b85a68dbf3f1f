package resource

import (
	"context"
	"time"
)

// Filter restricts a query to rows whose Field equals Value.
type Filter struct {
	Field string
	Value any
}

// Repository is data access bound to one open transaction.
type Repository interface {
	List(ctx context.Context, s *Schema, filters ...Filter) ([]*Record, error)
	// Get returns nil, nil when no row matches.
	Get(ctx context.Context, s *Schema, id int64, filters ...Filter) (*Record, error)
	Exists(ctx context.Context, s *Schema, field string, value any, excludeID int64) (bool, error)
	Insert(ctx context.Context, s *Schema, values Values, now time.Time) (*Record, error)
	// Update returns ErrNotFound when no row matches.
	Update(ctx context.Context, s *Schema, id int64, values Values, now time.Time) (*Record, error)
	// Delete returns ErrNotFound when no row matches.
	Delete(ctx context.Context, s *Schema, id int64) error
}

// Store hands out one transaction per call. WithinTx commits when fn
// returns nil and rolls back otherwise.
type Store interface {
	WithinTx(ctx context.Context, fn func(Repository) error) error
}

type actorKey struct{}

// WithActor records the acting user on ctx.
func WithActor(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFrom returns the acting user recorded by WithActor.
func ActorFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(actorKey{}).(int64)
	return id, ok
}
