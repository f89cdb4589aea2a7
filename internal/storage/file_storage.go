package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"rhystmorgan/assistant/internal/models"
)

const fileVersion = 1

// ErrPassphraseRequired is returned when loading a sealed file without a passphrase.
var ErrPassphraseRequired = errors.New("data file is encrypted, passphrase required")

// FileStorage keeps the state in a single JSON file, sealed when a passphrase is set.
type FileStorage struct {
	path       string
	passphrase string
}

type fileEnvelope struct {
	Version int                 `json:"version"`
	Book    *models.AddressBook `json:"book,omitempty"`
	Notes   *models.Notes       `json:"notes,omitempty"`
	Sealed  *SealedData         `json:"sealed,omitempty"`
}

var _ Backend = (*FileStorage)(nil)

func NewFileStorage(path, passphrase string) (*FileStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStorage{path: path, passphrase: passphrase}, nil
}

func (s *FileStorage) Path() string {
	return s.path
}

func (s *FileStorage) Load(_ context.Context) (*State, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		log.Debug().Str("path", s.path).Msg("data file not found, starting empty")
		return NewState(), nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var envelope fileEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal data file: %w", err)
	}

	if envelope.Sealed != nil {
		if s.passphrase == "" {
			return nil, ErrPassphraseRequired
		}
		plain, err := unseal(envelope.Sealed, s.passphrase)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt data file: %w", err)
		}
		envelope = fileEnvelope{}
		if err := json.Unmarshal(plain, &envelope); err != nil {
			return nil, fmt.Errorf("failed to unmarshal decrypted data: %w", err)
		}
	}

	if envelope.Version > fileVersion {
		return nil, fmt.Errorf("unsupported data file version %d", envelope.Version)
	}

	state := NewState()
	if envelope.Book != nil {
		state.Book = envelope.Book
	}
	if envelope.Notes != nil {
		state.Notes = envelope.Notes
	}

	log.Debug().
		Str("path", s.path).
		Int("contacts", state.Book.Len()).
		Int("notes", state.Notes.Len()).
		Bool("sealed", s.passphrase != "").
		Msg("state loaded")
	return state, nil
}

func (s *FileStorage) Save(_ context.Context, state *State) error {
	envelope := fileEnvelope{Version: fileVersion, Book: state.Book, Notes: state.Notes}

	if s.passphrase != "" {
		plain, err := json.Marshal(envelope)
		if err != nil {
			return fmt.Errorf("failed to marshal state: %w", err)
		}
		sealed, err := seal(plain, s.passphrase)
		if err != nil {
			return fmt.Errorf("failed to encrypt state: %w", err)
		}
		envelope = fileEnvelope{Version: fileVersion, Sealed: sealed}
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}

	log.Debug().
		Str("path", s.path).
		Int("contacts", state.Book.Len()).
		Int("notes", state.Notes.Len()).
		Msg("state saved")
	return nil
}

func (s *FileStorage) Close() error {
	return nil
}
