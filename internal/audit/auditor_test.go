package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalBuffersUntilFlush(t *testing.T) {
	journal, err := NewJournal(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, journal.Record(KindContact, "alice", ActionCreate, map[string]string{"phone": "0501234567"}))

	_, err = os.Stat(journal.Path())
	assert.True(t, os.IsNotExist(err), "entry should stay buffered")

	require.NoError(t, journal.Close())
	data, err := os.ReadFile(journal.Path())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))
	assert.Contains(t, string(data), `"subject":"alice"`)
}

func TestJournalFlushesFullBatch(t *testing.T) {
	journal, err := NewJournal(t.TempDir())
	require.NoError(t, err)

	for i := 0; i < defaultBatchSize; i++ {
		require.NoError(t, journal.Record(KindNote, "todo", ActionUpdate, nil))
	}

	data, err := os.ReadFile(journal.Path())
	require.NoError(t, err)
	assert.Equal(t, defaultBatchSize, strings.Count(string(data), "\n"))
}

func TestJournalHistory(t *testing.T) {
	journal, err := NewJournal(t.TempDir())
	require.NoError(t, err)
	fixed := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	journal.now = func() time.Time { return fixed }

	require.NoError(t, journal.Record(KindContact, "alice", ActionCreate, nil))
	require.NoError(t, journal.Record(KindContact, "bob", ActionCreate, nil))
	require.NoError(t, journal.Record(KindNote, "alice", ActionCreate, nil))
	require.NoError(t, journal.Record(KindContact, "alice", ActionUpdate, map[string]string{"email": "alice@example.com"}))

	entries, err := journal.History(KindContact, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ActionCreate, entries[0].Action)
	assert.Equal(t, ActionUpdate, entries[1].Action)
	assert.Equal(t, "alice@example.com", entries[1].Details["email"])
	assert.True(t, fixed.Equal(entries[1].Timestamp))
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestJournalHistoryWithoutFile(t *testing.T) {
	journal, err := NewJournal(t.TempDir())
	require.NoError(t, err)

	entries, err := journal.History(KindContact, "nobody")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJournalHistoryReadsEarlierDays(t *testing.T) {
	dir := t.TempDir()
	yesterday := time.Date(2024, time.June, 2, 18, 0, 0, 0, time.UTC)

	line, err := json.Marshal(Entry{ID: "1", Kind: KindContact, Subject: "alice", Action: ActionCreate, Timestamp: yesterday})
	require.NoError(t, err)
	seeded := filepath.Join(dir, "assistant_audit_2024-06-02.log")
	require.NoError(t, os.WriteFile(seeded, append(line, '\n'), 0600))

	journal, err := NewJournal(dir)
	require.NoError(t, err)
	journal.now = func() time.Time { return yesterday.Add(16 * time.Hour) }
	require.NoError(t, journal.Record(KindContact, "alice", ActionUpdate, nil))

	entries, err := journal.History(KindContact, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ActionCreate, entries[0].Action)
	assert.Equal(t, ActionUpdate, entries[1].Action)
	assert.Equal(t, filepath.Join(dir, "assistant_audit_2024-06-03.log"), journal.Path())
}

func TestJournalWritesToTheDayOfTheFlush(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, time.June, 3, 23, 59, 0, 0, time.UTC)

	journal, err := NewJournal(dir)
	require.NoError(t, err)
	journal.now = func() time.Time { return now }

	require.NoError(t, journal.Record(KindNote, "todo", ActionCreate, nil))
	require.NoError(t, journal.Flush())

	now = now.Add(2 * time.Minute)
	require.NoError(t, journal.Record(KindNote, "todo", ActionDelete, nil))
	require.NoError(t, journal.Flush())

	files, err := filepath.Glob(filepath.Join(dir, "assistant_audit_*.log"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "assistant_audit_2024-06-03.log"),
		filepath.Join(dir, "assistant_audit_2024-06-04.log"),
	}, files)

	entries, err := journal.History(KindNote, "todo")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ActionDelete, entries[1].Action)
}

func TestJournalFailedFlushDoesNotDuplicate(t *testing.T) {
	journal, err := NewJournal(t.TempDir())
	require.NoError(t, err)
	journal.now = func() time.Time { return time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC) }

	require.NoError(t, journal.Record(KindContact, "alice", ActionCreate, nil))
	require.NoError(t, journal.Record(KindContact, "bob", ActionCreate, nil))

	require.NoError(t, os.Mkdir(journal.Path(), 0700))
	assert.Error(t, journal.Flush())

	require.NoError(t, os.Remove(journal.Path()))
	require.NoError(t, journal.Flush())
	require.NoError(t, journal.Flush())

	data, err := os.ReadFile(journal.Path())
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}
