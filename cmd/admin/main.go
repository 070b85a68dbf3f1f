package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"spendwise/internal/domain/catalog"
	"spendwise/internal/infrastructure/database"
	"spendwise/internal/shared/auth"
	"spendwise/internal/shared/config"
)

const usage = `SpendWise Admin CLI - Management commands for the SpendWise API

Usage:
  admin <command> [options]

Commands:
  schema    Print the CREATE TABLE statements for a database driver
  migrate   Create any missing tables in the configured database
  token     Mint a bearer token for a user (development only)

Examples:
  # Print PostgreSQL DDL
  admin schema --driver=postgres

  # Create tables using DB_* environment settings
  admin migrate

  # Mint a token valid for one hour
  admin token --user-id=1 --email=alice@example.com --ttl=1h
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage + "\n")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "schema":
		runSchema(os.Args[2:])
	case "migrate":
		runMigrate(os.Args[2:])
	case "token":
		runToken(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage + "\n")
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage + "\n")
		os.Exit(1)
	}
}

func runSchema(args []string) {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	driver := fs.String("driver", database.DriverPostgres, "Database driver (postgres or sqlite)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	for _, s := range catalog.Schemas() {
		ddl, err := database.CreateTableSQL(*driver, s)
		if err != nil {
			log.Fatalf("Failed to generate schema: %v", err)
		}
		fmt.Println(ddl + ";")
		fmt.Println()
	}
}

func runMigrate(args []string) {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	timeoutStr := fs.String("timeout", "1m", "Timeout for the operation (e.g., 30s, 5m)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	timeout, err := time.ParseDuration(*timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout format: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db, err := database.Open(ctx, database.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN(),
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Printf("Connected to %s database", db.Driver())

	if err := database.EnsureSchema(ctx, db, catalog.Schemas()); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}

func runToken(args []string) {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	userID := fs.Int64("user-id", 0, "User ID the token is issued for")
	email := fs.String("email", "", "Email claim")
	ttl := fs.Duration("ttl", auth.DefaultTokenTTL, "Token lifetime")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *userID <= 0 {
		fmt.Println("Error: must specify --user-id")
		fs.Usage()
		os.Exit(1)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	token, err := auth.NewJWT(secret).WithTTL(*ttl).Generate(*userID, *email)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	fmt.Println(token)
}
