package database

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// InitDB opens the soccer database and brings the bookkeeping schema up to date.
// A local SQLite file is used unless primaryURL points at a remote libSQL primary.
// League tables are not created here; they appear lazily on first ingestion.
func InitDB(dbPath string, primaryURL string, authToken string, foreignKeys bool) (*sql.DB, func(), error) {
	var (
		db  *sql.DB
		err error
	)
	if primaryURL == "" {
		log.Info("Initializing local SQLite database", "path", dbPath, "foreign_keys", foreignKeys)
		if err := ensureDir(dbPath); err != nil {
			return nil, nil, err
		}
		db, err = sql.Open("sqlite3", localDSN(dbPath, foreignKeys))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open local database: %w", err)
		}
	} else {
		log.Info("Initializing Turso database", "url", primaryURL)
		db, err = sql.Open("libsql", primaryURL+"?authToken="+authToken)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db %s: %w", primaryURL, err)
		}
	}

	// One connection: single writer, and keeps :memory: databases on a single handle.
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if primaryURL != "" {
		if err = setForeignKeys(db, foreignKeys); err != nil {
			db.Close()
			return nil, nil, err
		}
	}
	if err = migrate(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}
	log.Info("Database initialized successfully")
	return db, teardown, nil
}

func localDSN(dbPath string, foreignKeys bool) string {
	fk := "off"
	if foreignKeys {
		fk = "on"
	}
	return fmt.Sprintf("file:%s?_foreign_keys=%s", dbPath, fk)
}

func ensureDir(dbPath string) error {
	if dbPath == "" || strings.HasPrefix(dbPath, ":memory:") {
		return nil
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}
	return nil
}

func setForeignKeys(db *sql.DB, enabled bool) error {
	stmt := "PRAGMA foreign_keys = OFF;"
	if enabled {
		stmt = "PRAGMA foreign_keys = ON;"
	}
	if _, err := db.Exec(stmt); err != nil {
		log.Error("Error setting foreign keys", "error", err)
		return err
	}
	return nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(log.Default())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}
