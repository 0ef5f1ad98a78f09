package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
)

// Deletes expired sessions. Intended to run from cron as a safety net
// behind the server's hourly cleanup goroutine.
func main() {
	ctx := context.Background()

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	tag, err := conn.Exec(ctx, "DELETE FROM sessions WHERE expires_at < now()")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Session cleanup failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Deleted %d expired sessions.\n", tag.RowsAffected())
}
