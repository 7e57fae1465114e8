package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/cost-manager/internal/config"
	"github.com/hongminglow/cost-manager/internal/models"
	"github.com/hongminglow/cost-manager/internal/storage"
	"github.com/hongminglow/cost-manager/internal/storage/backend"
	"github.com/hongminglow/cost-manager/internal/validation"
)

func main() {
	_ = godotenv.Load()
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	id := fs.String("id", "", "Numeric user id")
	first := fs.String("first", "", "First name")
	last := fs.String("last", "", "Last name")
	birthday := fs.String("birthday", "", "Birthday in YYYY-MM-DD format")
	marital := fs.String("marital", "single", "Marital status")
	dataBackend := fs.String("backend", envOr("DATA_BACKEND", config.BackendPostgres), "Storage backend (postgres or sqlite)")
	databaseURL := fs.String("database-url", os.Getenv("DATABASE_URL"), "Postgres connection string")
	dbPath := fs.String("db", envOr("SQLITE_DB_PATH", "./data/costs.db"), "Path to the sqlite database file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"id", *id}, {"first", *first}, {"last", *last}, {"birthday", *birthday},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		fmt.Fprintln(stdout, "Usage: adduser -id <id> -first <name> -last <name> -birthday <YYYY-MM-DD> [-marital <status>] [-backend postgres|sqlite]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}

	if err := validation.UserID(*id); err != nil {
		return err
	}
	born, err := validation.CalendarDate(*birthday, time.UTC)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := backend.Open(ctx, config.Config{
		DataBackend: strings.ToLower(*dataBackend),
		DatabaseURL: *databaseURL,
		SQLitePath:  *dbPath,
	})
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	user, err := store.CreateUser(ctx, models.User{
		ID:            *id,
		FirstName:     strings.TrimSpace(*first),
		LastName:      strings.TrimSpace(*last),
		Birthday:      born,
		MaritalStatus: strings.TrimSpace(*marital),
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return fmt.Errorf("user %s already exists", *id)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s %s created successfully with ID %s\n", user.FirstName, user.LastName, user.ID)
	return nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
