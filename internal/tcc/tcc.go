// Package tcc inspects the Transparency, Consent and Control database for
// Automation (Apple Events) consent and resets it with tccutil.
package tcc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ServiceAppleEvents is the TCC service guarding Apple Events between
// applications.
const ServiceAppleEvents = "kTCCServiceAppleEvents"

// Auth values stored in the access table.
const (
	AuthDenied  = 0
	AuthUnknown = 1
	AuthAllowed = 2
	AuthLimited = 3
)

// DefaultPath returns the path of the current user's TCC database, which
// holds Automation consent.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Library", "Application Support", "com.apple.TCC", "TCC.db")
}

// Entry is a row of the access table.
type Entry struct {
	Service      string    `json:"service" yaml:"service"`
	Client       string    `json:"client" yaml:"client"`
	ClientType   int       `json:"client_type" yaml:"client_type"`
	Target       string    `json:"target,omitempty" yaml:"target,omitempty"`
	Auth         int       `json:"auth_value" yaml:"auth_value"`
	AuthReason   int       `json:"auth_reason" yaml:"auth_reason"`
	LastModified time.Time `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
	Allowed      bool      `json:"allowed" yaml:"allowed"`
}

// Status is the consent state of a client/target pair.
type Status int

const (
	StatusNotDetermined Status = iota
	StatusDenied
	StatusAllowed
)

func (s Status) String() string {
	switch s {
	case StatusDenied:
		return "denied"
	case StatusAllowed:
		return "allowed"
	}
	return "not determined"
}

// DB is a read-only connection to a TCC database.
type DB struct {
	db *sql.DB
}

// Open opens the TCC database at path read-only. An empty path opens
// DefaultPath. Reading the database needs Full Disk Access.
func Open(path string) (*DB, error) {
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cannot access TCC database (need Full Disk Access): %w", err)
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open TCC database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot connect to TCC database (need Full Disk Access): %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (t *DB) Close() error {
	return t.db.Close()
}

// AutomationEntries lists Apple Events consent rows, optionally limited to
// one client (a bundle identifier or executable path).
func (t *DB) AutomationEntries(ctx context.Context, client string) ([]Entry, error) {
	query := `
		SELECT service, client, client_type, auth_value, auth_reason,
		       COALESCE(indirect_object_identifier, ''), COALESCE(last_modified, 0)
		FROM access
		WHERE service = ? AND (? = '' OR client = ?)
		ORDER BY client, indirect_object_identifier
	`
	rows, err := t.db.QueryContext(ctx, query, ServiceAppleEvents, client, client)
	if err != nil {
		return nil, fmt.Errorf("failed to list automation permissions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var modified int64
		if err := rows.Scan(&e.Service, &e.Client, &e.ClientType, &e.Auth, &e.AuthReason, &e.Target, &modified); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if modified > 0 {
			e.LastModified = time.Unix(modified, 0).UTC()
		}
		e.Allowed = e.Auth >= AuthAllowed
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AutomationStatus reports whether client may send Apple Events to the
// application with bundle identifier target.
func (t *DB) AutomationStatus(ctx context.Context, client, target string) (Status, error) {
	query := `
		SELECT auth_value
		FROM access
		WHERE service = ? AND client = ? AND indirect_object_identifier = ?
		ORDER BY auth_value DESC
		LIMIT 1
	`
	var auth int
	err := t.db.QueryRowContext(ctx, query, ServiceAppleEvents, client, target).Scan(&auth)
	if errors.Is(err, sql.ErrNoRows) {
		return StatusNotDetermined, nil
	}
	if err != nil {
		return StatusNotDetermined, fmt.Errorf("failed to query automation status: %w", err)
	}
	if auth >= AuthAllowed {
		return StatusAllowed, nil
	}
	return StatusDenied, nil
}
