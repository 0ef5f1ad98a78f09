package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"

	"github.com/bhashai/bhashai/internal/store/postgres"
)

// Applies the schema to the database named by DATABASE_URL, or by the
// connection string passed as the first argument.
func main() {
	ctx := context.Background()

	connStr := os.Getenv("DATABASE_URL")
	if len(os.Args) > 1 {
		connStr = os.Args[1]
	}
	if connStr == "" {
		fmt.Fprintln(os.Stderr, "Usage: migrate <connection-string> (or set DATABASE_URL)")
		os.Exit(1)
	}

	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	fmt.Println("✓ Connected to database")

	if _, err := conn.Exec(ctx, postgres.InitialSchema); err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ Schema applied successfully")
}
