package db

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func Connect() error {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		fmt.Println("DATABASE_URL environment variable is not set")
	}

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(10)
	DB.SetMaxIdleConns(10)
	DB.SetConnMaxLifetime(5 * time.Minute)

	return DB.Ping()
}

// EnsureSchema creates the article table if it does not exist. The unique
// index on url is what makes the dedupe insert atomic; everything else in the
// system relies on it.
func EnsureSchema() error {
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS article (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL UNIQUE,
			url_to_image TEXT NOT NULL DEFAULT '',
			published_at TIMESTAMPTZ,
			source_name TEXT NOT NULL DEFAULT '',
			source_url TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT 'general',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}
