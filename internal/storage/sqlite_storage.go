package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"rhystmorgan/assistant/internal/models"
	"rhystmorgan/assistant/internal/validation"
)

// SQLiteStorage keeps the state in a single SQLite database file.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

var _ Backend = (*SQLiteStorage)(nil)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS contacts (
		name TEXT PRIMARY KEY,
		email TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		birthday TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE TABLE IF NOT EXISTS phones (
		contact TEXT NOT NULL REFERENCES contacts(name) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		phone TEXT NOT NULL,
		PRIMARY KEY(contact, position)
	);`,
	`CREATE TABLE IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		text TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE TABLE IF NOT EXISTS note_tags (
		note_id INTEGER NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		tag TEXT NOT NULL,
		PRIMARY KEY(note_id, position)
	);`,
}

// NewSQLiteStorage opens (or creates) the database at path and applies the schema.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dsn, err := sqliteDSN(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite file: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open sqlite file: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return &SQLiteStorage{db: db, path: path}, nil
}

// sqliteDSN builds a file: URI for path. The path is made absolute and
// percent-escaped so '?', '#' and '%' stay part of the file name.
func sqliteDSN(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve sqlite path: %w", err)
	}
	dsn := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(absPath),
		RawQuery: "_pragma=foreign_keys(ON)",
	}
	return dsn.String(), nil
}

func (s *SQLiteStorage) Load(ctx context.Context) (*State, error) {
	state := NewState()

	if err := s.loadContacts(ctx, state.Book); err != nil {
		return nil, err
	}
	if err := s.loadNotes(ctx, state.Notes); err != nil {
		return nil, err
	}

	log.Debug().
		Str("path", s.path).
		Int("contacts", state.Book.Len()).
		Int("notes", state.Notes.Len()).
		Msg("state loaded")
	return state, nil
}

func (s *SQLiteStorage) loadContacts(ctx context.Context, book *models.AddressBook) error {
	rows, err := s.db.QueryContext(ctx, `SELECT name, email, address, birthday FROM contacts ORDER BY name`)
	if err != nil {
		return fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, email, address, birthday string
		if err := rows.Scan(&name, &email, &address, &birthday); err != nil {
			return fmt.Errorf("failed to scan contact: %w", err)
		}
		record, err := models.NewRecord(name)
		if err != nil {
			return fmt.Errorf("invalid stored contact: %w", err)
		}
		if email != "" {
			if err := record.AddEmail(email); err != nil {
				return fmt.Errorf("invalid stored email for %s: %w", name, err)
			}
		}
		if address != "" {
			if err := record.SetAddress(address); err != nil {
				return fmt.Errorf("invalid stored address for %s: %w", name, err)
			}
		}
		if birthday != "" {
			if err := record.SetBirthday(birthday); err != nil {
				return fmt.Errorf("invalid stored birthday for %s: %w", name, err)
			}
		}
		if err := book.Add(record); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read contacts: %w", err)
	}

	phoneRows, err := s.db.QueryContext(ctx, `SELECT contact, phone FROM phones ORDER BY contact, position`)
	if err != nil {
		return fmt.Errorf("failed to query phones: %w", err)
	}
	defer phoneRows.Close()

	for phoneRows.Next() {
		var contact, phone string
		if err := phoneRows.Scan(&contact, &phone); err != nil {
			return fmt.Errorf("failed to scan phone: %w", err)
		}
		record, err := book.Get(contact)
		if err != nil {
			return fmt.Errorf("phone %s references unknown contact: %w", phone, err)
		}
		if err := record.AddPhone(phone); err != nil {
			return fmt.Errorf("invalid stored phone for %s: %w", contact, err)
		}
	}
	return phoneRows.Err()
}

func (s *SQLiteStorage) loadNotes(ctx context.Context, notes *models.Notes) error {
	tags := make(map[int64][]string)
	tagRows, err := s.db.QueryContext(ctx, `SELECT note_id, tag FROM note_tags ORDER BY note_id, position`)
	if err != nil {
		return fmt.Errorf("failed to query note tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var noteID int64
		var tag string
		if err := tagRows.Scan(&noteID, &tag); err != nil {
			return fmt.Errorf("failed to scan note tag: %w", err)
		}
		tags[noteID] = append(tags[noteID], tag)
	}
	if err := tagRows.Err(); err != nil {
		return fmt.Errorf("failed to read note tags: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, title, text FROM notes ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var title, text string
		if err := rows.Scan(&id, &title, &text); err != nil {
			return fmt.Errorf("failed to scan note: %w", err)
		}
		if _, err := notes.Add(title, text, strings.Join(tags[id], ",")); err != nil {
			return fmt.Errorf("invalid stored note: %w", err)
		}
	}
	return rows.Err()
}

// Save replaces the stored state in one transaction.
func (s *SQLiteStorage) Save(ctx context.Context, state *State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"note_tags", "notes", "phones", "contacts"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, record := range state.Book.Records() {
		email, _ := record.Email()
		address, _ := record.Address()
		var birthday string
		if date, ok := record.Birthday(); ok {
			birthday = date.Format(validation.BirthdayLayout)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO contacts (name, email, address, birthday) VALUES (?,?,?,?)`,
			record.Name(), email, address, birthday); err != nil {
			return fmt.Errorf("failed to insert contact %s: %w", record.Name(), err)
		}
		for i, phone := range record.Phones() {
			if _, err := tx.ExecContext(ctx, `INSERT INTO phones (contact, position, phone) VALUES (?,?,?)`,
				record.Name(), i, phone); err != nil {
				return fmt.Errorf("failed to insert phone for %s: %w", record.Name(), err)
			}
		}
	}

	for i, note := range state.Notes.All() {
		noteID := int64(i + 1)
		if _, err := tx.ExecContext(ctx, `INSERT INTO notes (id, title, text) VALUES (?,?,?)`,
			noteID, note.Title, note.Text); err != nil {
			return fmt.Errorf("failed to insert note %s: %w", note.Title, err)
		}
		for j, tag := range note.Tags {
			if _, err := tx.ExecContext(ctx, `INSERT INTO note_tags (note_id, position, tag) VALUES (?,?,?)`,
				noteID, j, tag); err != nil {
				return fmt.Errorf("failed to insert tag for note %s: %w", note.Title, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit state: %w", err)
	}

	log.Debug().
		Str("path", s.path).
		Int("contacts", state.Book.Len()).
		Int("notes", state.Notes.Len()).
		Msg("state saved")
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
