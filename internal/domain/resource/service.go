package resource

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"
)

type operation int

const (
	opRead operation = iota
	opCreate
	opUpdate
	opDelete
)

// Service implements list, get, create, update and delete for one schema.
type Service struct {
	schema *Schema
	store  Store
	scope  *Filter
	now    func() time.Time
}

// NewService creates a service for schema backed by store.
func NewService(schema *Schema, store Store) *Service {
	return &Service{
		schema: schema,
		store:  store,
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	}
}

// Schema returns the schema the service operates on.
func (s *Service) Schema() *Schema {
	return s.schema
}

// Scope returns a view restricted to records whose field equals value.
// Creates through the view force field to value.
func (s *Service) Scope(field string, value int64) *Service {
	scoped := *s
	scoped.scope = &Filter{Field: field, Value: value}
	return &scoped
}

func (s *Service) filters() []Filter {
	if s.scope == nil {
		return nil
	}
	return []Filter{*s.scope}
}

// ListAll returns every record in insertion order.
func (s *Service) ListAll(ctx context.Context) ([]Document, error) {
	var docs []Document
	err := s.store.WithinTx(ctx, func(repo Repository) error {
		records, err := repo.List(ctx, s.schema, s.filters()...)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", s.schema.Table, err)
		}
		docs = make([]Document, 0, len(records))
		for _, r := range records {
			docs = append(docs, Serialize(s.schema, r))
		}
		return nil
	})
	if err != nil {
		return nil, s.translate(err, opRead)
	}
	return docs, nil
}

// GetByID returns the record with the given id.
func (s *Service) GetByID(ctx context.Context, id int64) (Document, error) {
	var doc Document
	err := s.store.WithinTx(ctx, func(repo Repository) error {
		r, err := s.get(ctx, repo, id)
		if err != nil {
			return err
		}
		doc = Serialize(s.schema, r)
		return nil
	})
	if err != nil {
		return nil, s.translate(err, opRead)
	}
	return doc, nil
}

// Create validates payload and inserts a new record.
func (s *Service) Create(ctx context.Context, payload map[string]any) (Document, error) {
	values, err := s.prepareCreate(ctx, payload)
	if err != nil {
		return nil, err
	}

	var doc Document
	err = s.store.WithinTx(ctx, func(repo Repository) error {
		if err := s.checkReferences(ctx, repo, values); err != nil {
			return err
		}
		if err := s.checkUnique(ctx, repo, values, 0, opCreate); err != nil {
			return err
		}

		r, err := repo.Insert(ctx, s.schema, values, s.now())
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", s.schema.Table, err)
		}
		doc = Serialize(s.schema, r)
		return nil
	})
	if err != nil {
		return nil, s.translate(err, opCreate)
	}
	return doc, nil
}

// Update merges the allowed fields of payload into the record.
func (s *Service) Update(ctx context.Context, id int64, payload map[string]any) (Document, error) {
	values, err := s.prepareUpdate(payload)
	if err != nil {
		return nil, err
	}

	var doc Document
	err = s.store.WithinTx(ctx, func(repo Repository) error {
		existing, err := s.get(ctx, repo, id)
		if err != nil {
			return err
		}

		if len(values) == 0 && !s.schema.HasUpdatedAt {
			doc = Serialize(s.schema, existing)
			return nil
		}

		if err := s.checkReferences(ctx, repo, values); err != nil {
			return err
		}
		if err := s.checkUnique(ctx, repo, values, id, opUpdate); err != nil {
			return err
		}

		r, err := repo.Update(ctx, s.schema, id, values, s.now())
		if errors.Is(err, ErrNotFound) {
			return s.schema.notFound()
		}
		if err != nil {
			return fmt.Errorf("failed to update %s %d: %w", s.schema.Table, id, err)
		}
		doc = Serialize(s.schema, r)
		return nil
	})
	if err != nil {
		return nil, s.translate(err, opUpdate)
	}
	return doc, nil
}

// Delete removes the record and returns a confirmation message.
func (s *Service) Delete(ctx context.Context, id int64) (string, error) {
	err := s.store.WithinTx(ctx, func(repo Repository) error {
		if _, err := s.get(ctx, repo, id); err != nil {
			return err
		}

		err := repo.Delete(ctx, s.schema, id)
		if errors.Is(err, ErrNotFound) {
			return s.schema.notFound()
		}
		if err != nil {
			return fmt.Errorf("failed to delete %s %d: %w", s.schema.Table, id, err)
		}
		return nil
	})
	if err != nil {
		return "", s.translate(err, opDelete)
	}
	return s.schema.DeletedMessage(), nil
}

func (s *Service) get(ctx context.Context, repo Repository, id int64) (*Record, error) {
	r, err := repo.Get(ctx, s.schema, id, s.filters()...)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %d: %w", s.schema.Table, id, err)
	}
	if r == nil {
		return nil, s.schema.notFound()
	}
	return r, nil
}

func (s *Service) prepareCreate(ctx context.Context, payload map[string]any) (Values, error) {
	in := make(map[string]any, len(payload)+1)
	maps.Copy(in, payload)

	if f := s.schema.ActorField; f != "" && isEmpty(in[f]) {
		if actor, ok := ActorFrom(ctx); ok {
			in[f] = actor
		}
	}
	if s.scope != nil {
		in[s.scope.Field] = s.scope.Value
	}

	for _, name := range s.schema.Required {
		if isEmpty(in[name]) {
			return nil, newValidationError(name, "%s is required", name)
		}
	}

	derivedTargets := make(map[string]bool, len(s.schema.Derived))
	for _, d := range s.schema.Derived {
		derivedTargets[d.Target] = true
	}

	values := make(Values, len(s.schema.Fields))
	for _, f := range s.schema.Fields {
		if f.Sensitive || derivedTargets[f.Name] {
			continue
		}
		raw, ok := in[f.Name]
		if !ok || f.Managed {
			if f.Default == nil {
				continue
			}
			raw = f.Default
		}
		v, err := normalize(f, raw)
		if err != nil {
			return nil, err
		}
		values[f.Name] = v
	}

	for name, d := range s.schema.Derived {
		raw, ok := in[name]
		if !ok {
			continue
		}
		v, err := derive(name, d, raw)
		if err != nil {
			return nil, err
		}
		values[d.Target] = v
	}

	return values, nil
}

func (s *Service) prepareUpdate(payload map[string]any) (Values, error) {
	if len(payload) == 0 {
		return nil, &ValidationError{Message: "No update data provided"}
	}

	values := make(Values)
	for _, name := range s.schema.Updatable {
		raw, ok := payload[name]
		if !ok {
			continue
		}
		if s.scope != nil && name == s.scope.Field {
			continue
		}

		if d, ok := s.schema.Derived[name]; ok {
			v, err := derive(name, d, raw)
			if err != nil {
				return nil, err
			}
			values[d.Target] = v
			continue
		}

		f, ok := s.schema.Field(name)
		if !ok || f.Sensitive {
			continue
		}
		if s.schema.isRequired(name) && isEmpty(raw) {
			return nil, newValidationError(name, "%s cannot be empty", name)
		}
		v, err := normalize(f, raw)
		if err != nil {
			return nil, err
		}
		values[name] = v
	}
	return values, nil
}

func derive(name string, d Derivation, raw any) (string, error) {
	str, ok := raw.(string)
	if !ok {
		return "", newValidationError(name, "%s must be a string", name)
	}
	if str == "" {
		return "", newValidationError(name, "%s cannot be empty", name)
	}
	v, err := d.Apply(str)
	if err != nil {
		return "", fmt.Errorf("failed to derive %s: %w", d.Target, err)
	}
	return v, nil
}

// checkReferences verifies every foreign key in values points at an
// existing row.
func (s *Service) checkReferences(ctx context.Context, repo Repository, values Values) error {
	for _, f := range s.schema.ForeignKeys() {
		v, ok := values[f.Name]
		if !ok || v == nil {
			continue
		}
		exists, err := repo.Exists(ctx, f.References, "id", v, 0)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", f.Name, err)
		}
		if !exists {
			return newValidationError(f.Name, "%s does not reference an existing %s", f.Name, f.References.Name)
		}
	}
	return nil
}

// checkUnique probes unique fields before writing so the caller gets the
// field's own message. The constraint still guards concurrent writers.
func (s *Service) checkUnique(ctx context.Context, repo Repository, values Values, excludeID int64, op operation) error {
	for _, f := range s.schema.Fields {
		if !f.Unique {
			continue
		}
		v, ok := values[f.Name]
		if !ok || v == nil {
			continue
		}
		taken, err := repo.Exists(ctx, s.schema, f.Name, v, excludeID)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", f.Name, err)
		}
		if taken {
			return &ConflictError{Field: f.Name, Message: f.conflictMessage(op == opUpdate)}
		}
	}
	return nil
}

// translate turns constraint failures reported by the store into
// ConflictError. Other errors pass through unchanged.
func (s *Service) translate(err error, op operation) error {
	var ce *ConstraintError
	if !errors.As(err, &ce) {
		return err
	}

	switch ce.Kind {
	case ConstraintUnique:
		if f, ok := s.schema.Field(ce.Column); ok {
			return &ConflictError{Field: f.Name, Message: f.conflictMessage(op == opUpdate)}
		}
		return &ConflictError{Field: ce.Column, Message: s.schema.Name + " conflicts with an existing record"}
	case ConstraintForeignKey:
		if op == opDelete {
			return &ConflictError{Message: s.schema.Name + " is still referenced by other records"}
		}
		return &ConflictError{Field: ce.Column, Message: s.schema.Name + " references a record that no longer exists"}
	case ConstraintWriteConflict:
		return &ConflictError{Message: s.schema.Name + " was modified concurrently, please retry"}
	}
	return err
}
