package main

import (
	"context"
	"log"

	"spendwise/internal/domain/catalog"
	"spendwise/internal/infrastructure/database"
	"spendwise/internal/shared/auth"
	"spendwise/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB    *database.DB
	Store *database.Store

	// JWT is nil when no secret is configured.
	JWT *auth.JWT
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	ctx := context.Background()

	db, err := database.Open(ctx, database.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN(),
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to %s database", db.Driver())

	if cfg.Database.AutoMigrate {
		if err := database.EnsureSchema(ctx, db, catalog.Schemas()); err != nil {
			db.Close()
			return nil, err
		}
	}

	deps := &Dependencies{
		DB:    db,
		Store: database.NewStore(db),
	}
	if cfg.Auth.JWTSecret != "" {
		deps.JWT = auth.NewJWT(cfg.Auth.JWTSecret)
	}

	return deps, nil
}

// Close releases the database pool.
func (d *Dependencies) Close() {
	if err := d.DB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}
