package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/rahhal10/Final-Backend/internal/domain"
)

var sqliteDialect = dialect{
	name: "sqlite3",
	uniqueViolation: func(err error) bool {
		var se sqlite3.Error
		return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
	},
}

// sqliteFileOptions configures file databases for concurrent readers and
// writers. Shared-cache mode is avoided: it fails reads with SQLITE_LOCKED
// while a writer holds a table, and the busy timeout does not apply to that.
const sqliteFileOptions = "mode=rwc&_busy_timeout=5000&_journal_mode=WAL"

// FileDSN returns the DSN for a SQLite database file at path.
func FileDSN(path string) string {
	return "file:" + path + "?" + sqliteFileOptions
}

// NewSQLiteStore opens a SQLite store, migrates it and seeds a demo catalog
// into an empty database.
func NewSQLiteStore(dsn string) (*SQLStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	store := &SQLStore{db: db, dialect: sqliteDialect}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := store.seedCatalog(context.Background()); err != nil {
		// Don't fail startup for this
		log.Warn().Err(err).Msg("failed to seed catalog")
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS courses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			instructor TEXT NOT NULL DEFAULT '',
			price REAL NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT '',
			duration TEXT NOT NULL DEFAULT '',
			lessons_count INTEGER NOT NULL DEFAULT 0,
			rating REAL NOT NULL DEFAULT 0,
			image_url TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_courses_rating ON courses(rating DESC, id)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL DEFAULT '',
			"dueDate" TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS user_course (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			email TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			instructor TEXT NOT NULL DEFAULT '',
			price REAL NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT '',
			duration TEXT NOT NULL DEFAULT '',
			lessons_count INTEGER NOT NULL DEFAULT 0,
			rating REAL NOT NULL DEFAULT 0,
			image_url TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_user_course_email ON user_course(email)`,
		`CREATE INDEX IF NOT EXISTS idx_user_course_username ON user_course(username)`,
		`CREATE TABLE IF NOT EXISTS cart_products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			email TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			instructor TEXT NOT NULL DEFAULT '',
			price REAL NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT '',
			duration TEXT NOT NULL DEFAULT '',
			lessons_count INTEGER NOT NULL DEFAULT 0,
			rating REAL NOT NULL DEFAULT 0,
			image_url TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cart_products_email ON cart_products(email, id)`,
		`CREATE INDEX IF NOT EXISTS idx_cart_products_username ON cart_products(username)`,
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

func (s *SQLStore) seedCatalog(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	courses := []domain.CourseFields{
		{Title: "Go for Backend Engineers", Description: "Build HTTP services, workers and CLIs in Go.", Instructor: "Dana Levi", Price: 49.99, Category: "Programming", Duration: "6 weeks", LessonsCount: 42, Rating: 4.8, ImageURL: "/img/go-backend.png"},
		{Title: "SQL Fundamentals", Description: "Queries, joins, indexes and transactions.", Instructor: "Omar Haddad", Price: 29.99, Category: "Data", Duration: "4 weeks", LessonsCount: 28, Rating: 4.6, ImageURL: "/img/sql.png"},
		{Title: "Intro to Machine Learning", Description: "Regression, classification and model evaluation.", Instructor: "Mira Cohen", Price: 59.99, Category: "Data Science", Duration: "8 weeks", LessonsCount: 56, Rating: 4.7, ImageURL: "/img/ml.png"},
		{Title: "Modern React", Description: "Hooks, state management and testing.", Instructor: "Yusuf Amari", Price: 39.99, Category: "Web Development", Duration: "5 weeks", LessonsCount: 35, Rating: 4.5, ImageURL: "/img/react.png"},
		{Title: "UX Design Basics", Description: "Research, wireframes and usability testing.", Instructor: "Lena Park", Price: 24.99, Category: "Design", Duration: "3 weeks", LessonsCount: 18, Rating: 4.3, ImageURL: "/img/ux.png"},
	}
	for _, c := range courses {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO courses (`+courseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			courseFieldArgs(c)...)
		if err != nil {
			return err
		}
	}

	tasks := []domain.Task{
		{Title: "Finish Go module 1 quiz", Category: "Programming", Priority: "high", DueDate: "2026-11-01"},
		{Title: "Write a JOIN query report", Category: "Data", Priority: "medium", DueDate: "2026-11-08"},
		{Title: "Sketch a landing page wireframe", Category: "Design", Priority: "low", DueDate: "2026-11-15"},
	}
	for _, t := range tasks {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO tasks (title, category, priority, "dueDate") VALUES (?, ?, ?, ?)`,
			t.Title, t.Category, t.Priority, t.DueDate)
		if err != nil {
			return err
		}
	}
	return nil
}
