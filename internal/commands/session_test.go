package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionPlainCommands(t *testing.T) {
	h, _, _ := newTestHandler(t)
	s := NewSession(h)

	assert.Equal(t, "Enter a command: ", s.Prompt())
	assert.Equal(t, Result{}, s.Feed("   "))
	assert.Equal(t, Result{Output: "Invalid command", Failed: true}, s.Feed("dance now"))
	assert.Equal(t, Result{Output: "Contact added."}, s.Feed("add alice 0501234567"))
	assert.Equal(t, Result{Output: "Good bye!", Exit: true}, s.Feed("exit"))
	assert.False(t, s.Pending())
}

func TestSessionPromptsForNote(t *testing.T) {
	h, _, notes := newTestHandler(t)
	s := NewSession(h)

	assert.Equal(t, Result{}, s.Feed("add-note"))
	require.True(t, s.Pending())
	assert.Equal(t, "Enter title: ", s.Prompt())

	assert.Equal(t, Result{}, s.Feed("groceries"))
	assert.Equal(t, "Enter text (optional): ", s.Prompt())

	assert.Equal(t, Result{}, s.Feed("  milk and bread "))
	assert.Equal(t, "Enter tags separated by comma (optional): ", s.Prompt())

	assert.Equal(t, Result{Output: "Note with title: 'groceries' added."}, s.Feed("home, food"))
	assert.False(t, s.Pending())
	assert.Equal(t, "Enter a command: ", s.Prompt())

	note, err := notes.FindByTitle("groceries")
	require.NoError(t, err)
	assert.Equal(t, "milk and bread", note.Text)
	assert.Equal(t, []string{"home", "food"}, note.Tags)
}

func TestSessionPrefillsPrompts(t *testing.T) {
	h, _, notes := newTestHandler(t)
	s := NewSession(h)

	assert.Equal(t, Result{}, s.Feed("add-note groceries milk and bread"))
	assert.Equal(t, "Enter tags separated by comma (optional): ", s.Prompt())
	assert.Equal(t, Result{Output: "Note with title: 'groceries' added."}, s.Feed(""))

	note, err := notes.FindByTitle("groceries")
	require.NoError(t, err)
	assert.Equal(t, "milk and bread", note.Text)
	assert.Empty(t, note.Tags)
}

func TestSessionUpdateNoteMissing(t *testing.T) {
	h, _, _ := newTestHandler(t)
	s := NewSession(h)

	s.Feed("update-note chores")
	s.Feed("sweep")
	assert.Equal(t, Result{Output: "Note 'chores' not found."}, s.Feed(""))
}

func TestSessionBirthdaysPrompt(t *testing.T) {
	h, _, _ := newTestHandler(t)
	s := NewSession(h)

	s.Feed("add alice 0501234567")
	s.Feed("add-birthday alice 05.06.1990")

	assert.Equal(t, Result{}, s.Feed("birthdays"))
	assert.Equal(t, "Enter number of days: ", s.Prompt())
	assert.Equal(t, Result{Output: "Number of days must be between 0 and 365", Failed: true}, s.Feed("400"))

	assert.Equal(t, Result{Output: "Wednesday, 05 June: alice"}, s.Feed("birthdays 3"))
}

func TestSessionCancel(t *testing.T) {
	h, _, notes := newTestHandler(t)
	s := NewSession(h)

	s.Feed("add-note groceries")
	require.True(t, s.Pending())

	s.Cancel()
	assert.False(t, s.Pending())
	assert.Equal(t, "Enter a command: ", s.Prompt())
	assert.Equal(t, 0, notes.Len())
}
