package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rhystmorgan/assistant/internal/models"
)

const (
	appDir      = ".assistant"
	defaultFile = "addressbook.json"
)

// State is everything the assistant persists between sessions.
type State struct {
	Book  *models.AddressBook
	Notes *models.Notes
}

func NewState() *State {
	return &State{
		Book:  models.NewAddressBook(),
		Notes: models.NewNotes(),
	}
}

// Backend loads and saves the whole State as one local file.
type Backend interface {
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, state *State) error
	Close() error
}

// DefaultPath returns ~/.assistant/addressbook.json.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, appDir, defaultFile), nil
}

// IsSQLitePath reports whether path selects the SQLite backend.
func IsSQLitePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	default:
		return false
	}
}

// Open picks the backend from the file extension. A passphrase is only
// supported by the JSON backend.
func Open(path, passphrase string) (Backend, error) {
	if IsSQLitePath(path) {
		if passphrase != "" {
			return nil, fmt.Errorf("passphrase is not supported for sqlite file %s", path)
		}
		return NewSQLiteStorage(path)
	}
	return NewFileStorage(path, passphrase)
}
