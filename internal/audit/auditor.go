package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	defaultBatchSize = 10
	filePrefix       = "assistant_audit_"
	fileSuffix       = ".log"
)

// Journal appends address book and notes changes to daily JSON-lines files.
// Entries are buffered and written when the batch is full, on Flush and on Close.
type Journal struct {
	logDir    string
	batchSize int
	batch     []Entry
	now       func() time.Time
}

func NewJournal(logDir string) (*Journal, error) {
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %w", err)
	}

	return &Journal{
		logDir:    logDir,
		batchSize: defaultBatchSize,
		batch:     make([]Entry, 0, defaultBatchSize),
		now:       time.Now,
	}, nil
}

// Path is the file the next flush writes to.
func (j *Journal) Path() string {
	return filepath.Join(j.logDir, filePrefix+j.now().Format("2006-01-02")+fileSuffix)
}

func (j *Journal) Record(kind Kind, subject string, action Action, details map[string]string) error {
	j.batch = append(j.batch, Entry{
		ID:        uuid.NewString(),
		Kind:      kind,
		Subject:   subject,
		Action:    action,
		Timestamp: j.now(),
		Details:   details,
	})

	if len(j.batch) >= j.batchSize {
		return j.Flush()
	}
	return nil
}

// Flush writes all pending entries to today's log file in a single write.
func (j *Journal) Flush() error {
	if len(j.batch) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, entry := range j.batch {
		line, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal audit entry: %w", err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	logFile := j.Path()
	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log file: %w", err)
	}

	_, writeErr := file.Write(buf.Bytes())
	closeErr := file.Close()
	if writeErr != nil {
		return fmt.Errorf("failed to write audit entries: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close audit log file: %w", closeErr)
	}

	log.Debug().Str("path", logFile).Int("entries", len(j.batch)).Msg("audit journal flushed")
	j.batch = j.batch[:0]
	return nil
}

// History returns the entries recorded for subject across all daily files,
// oldest first.
func (j *Journal) History(kind Kind, subject string) ([]Entry, error) {
	if err := j.Flush(); err != nil {
		return nil, err
	}

	files, err := filepath.Glob(filepath.Join(j.logDir, filePrefix+"*"+fileSuffix))
	if err != nil {
		return nil, fmt.Errorf("failed to list audit log files: %w", err)
	}
	sort.Strings(files)

	var entries []Entry
	for _, logFile := range files {
		if entries, err = readEntries(logFile, kind, subject, entries); err != nil {
			return entries, err
		}
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Timestamp.Before(entries[b].Timestamp)
	})
	return entries, nil
}

func readEntries(logFile string, kind Kind, subject string, entries []Entry) ([]Entry, error) {
	file, err := os.Open(logFile)
	if err != nil {
		return entries, fmt.Errorf("failed to open audit log file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	for decoder.More() {
		var entry Entry
		if err := decoder.Decode(&entry); err != nil {
			return entries, fmt.Errorf("failed to read audit log %s: %w", filepath.Base(logFile), err)
		}
		if entry.Kind == kind && entry.Subject == subject {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (j *Journal) Close() error {
	return j.Flush()
}
