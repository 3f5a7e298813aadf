// ABOUTME: SQLite-backed store for contact form submissions with ULID identifiers.
// ABOUTME: Defaults to an in-memory database so the site stays storage-free unless configured.

package inquiry

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
)

// Inquiry is one contact form submission.
type Inquiry struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Message   string
	CreatedAt time.Time
}

// SqliteStore persists inquiries in a SQLite database.
type SqliteStore struct {
	db *sql.DB
}

// Open opens or creates the inquiry database at the given path and ensures
// the schema exists. Pass ":memory:" for a volatile store.
func Open(path string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// An in-memory database exists per connection; a single connection keeps
	// it coherent, and the write volume here never needs more.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS inquiries (
			inquiry_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT,
			message TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

// Add records a new inquiry and returns it with its generated ID.
func (s *SqliteStore) Add(name, email, phone, message string) (*Inquiry, error) {
	inq := &Inquiry{
		ID:        ulid.Make().String(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO inquiries (inquiry_id, name, email, phone, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		inq.ID,
		inq.Name,
		inq.Email,
		inq.Phone,
		inq.Message,
		inq.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("insert inquiry: %w", err)
	}
	return inq, nil
}

// List returns the most recent inquiries, newest first. ULIDs sort
// lexicographically by creation time, so ordering by ID is chronological.
func (s *SqliteStore) List(limit int) ([]*Inquiry, error) {
	rows, err := s.db.Query(
		`SELECT inquiry_id, name, email, phone, message, created_at
		 FROM inquiries ORDER BY inquiry_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	var out []*Inquiry
	for rows.Next() {
		var inq Inquiry
		var created string
		if err := rows.Scan(&inq.ID, &inq.Name, &inq.Email, &inq.Phone, &inq.Message, &created); err != nil {
			return nil, fmt.Errorf("scan inquiry: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			inq.CreatedAt = t
		}
		out = append(out, &inq)
	}
	return out, rows.Err()
}

// Count returns the total number of stored inquiries.
func (s *SqliteStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM inquiries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count inquiries: %w", err)
	}
	return n, nil
}
