package repositories

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const driverName = "sqlite3"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		name     TEXT NOT NULL,
		email    TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role     TEXT NOT NULL DEFAULT 'member' CHECK (role IN ('admin', 'member'))
	)`,
	`CREATE TABLE IF NOT EXISTS blog_posts (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		title     TEXT NOT NULL UNIQUE,
		subtitle  TEXT NOT NULL,
		date      TEXT NOT NULL,
		body      TEXT NOT NULL,
		img_url   TEXT NOT NULL,
		author_id INTEGER NOT NULL REFERENCES users (id)
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		text      TEXT NOT NULL,
		author_id INTEGER NOT NULL REFERENCES users (id),
		post_id   INTEGER NOT NULL REFERENCES blog_posts (id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments (post_id)`,
}

// Repository bundles the sqlite handle with the per-table repositories.
type Repository struct {
	DB       *sqlx.DB
	Users    *SQLUserRepository
	Posts    *SQLPostRepository
	Comments *SQLCommentRepository
}

// NewRepository opens (creating if needed) the database at path and
// applies the schema. An empty path opens a private in-memory database.
func NewRepository(path string) (*Repository, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}
	return &Repository{
		DB:       db,
		Users:    NewSQLUserRepository(db),
		Posts:    NewSQLPostRepository(db),
		Comments: NewSQLCommentRepository(db),
	}, nil
}

// Open connects to the sqlite file at path with foreign keys enforced.
func Open(path string) (*sqlx.DB, error) {
	inMemory := path == "" || path == ":memory:"
	if inMemory {
		path = ":memory:"
	} else if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sqlx.Open(driverName, path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if inMemory {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates the users, blog_posts and comments tables if missing.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// Backup writes a consistent copy of the database to dest.
func (r *Repository) Backup(ctx context.Context, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := r.DB.ExecContext(ctx, "VACUUM INTO ?", dest); err != nil {
		return fmt.Errorf("failed to backup database: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.DB.Close()
}

var (
	_ UserRepository    = (*SQLUserRepository)(nil)
	_ PostRepository    = (*SQLPostRepository)(nil)
	_ CommentRepository = (*SQLCommentRepository)(nil)
)
