package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func withBirthday(t *testing.T, name, birthday string) *Record {
	t.Helper()
	record := newTestRecord(t, name)
	require.NoError(t, record.SetBirthday(birthday))
	return record
}

func TestAddressBookAddGetDelete(t *testing.T) {
	book := NewAddressBook()
	require.NoError(t, book.Add(newTestRecord(t, "alice", "0501234567")))

	err := book.Add(newTestRecord(t, "alice"))
	assert.True(t, IsKind(err, ErrDuplicate))
	assert.Equal(t, 1, book.Len())

	record, err := book.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", record.Name())
	assert.True(t, book.Has("alice"))

	_, err = book.Get("bob")
	assert.True(t, IsKind(err, ErrNotFound))
	assert.Equal(t, "Contact with name bob doesn't exist", err.Error())

	require.NoError(t, book.Delete("alice"))
	assert.False(t, book.Has("alice"))
	assert.True(t, IsKind(book.Delete("alice"), ErrNotFound))
}

func TestAddressBookFind(t *testing.T) {
	book := NewAddressBook()
	require.NoError(t, book.Add(newTestRecord(t, "alice", "0501234567")))
	require.NoError(t, book.Add(newTestRecord(t, "bob", "0671112233")))

	record, err := book.Find("bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", record.Name())

	record, err = book.Find("0501234567")
	require.NoError(t, err)
	assert.Equal(t, "alice", record.Name())

	_, err = book.Find("carol")
	assert.True(t, IsKind(err, ErrNotFound))
	assert.Equal(t, "Contact carol not found", err.Error())
}

func TestAddressBookRecordsSortedByName(t *testing.T) {
	book := NewAddressBook()
	for _, name := range []string{"carol", "alice", "bob"} {
		require.NoError(t, book.Add(newTestRecord(t, name)))
	}

	var names []string
	for _, record := range book.Records() {
		names = append(names, record.Name())
	}
	assert.Equal(t, []string{"alice", "bob", "carol"}, names)
}

func TestBirthdaysWithinMovesWeekendToMonday(t *testing.T) {
	// 3 June 2024 is a Monday.
	today := date(2024, time.June, 3)
	book := NewAddressBook()
	require.NoError(t, book.Add(withBirthday(t, "sat", "08.06.1990")))
	require.NoError(t, book.Add(withBirthday(t, "sun", "09.06.1985")))
	require.NoError(t, book.Add(withBirthday(t, "wed", "05.06.2001")))
	require.NoError(t, book.Add(withBirthday(t, "today", "03.06.1970")))
	require.NoError(t, book.Add(withBirthday(t, "late", "11.06.1990")))
	require.NoError(t, book.Add(withBirthday(t, "past", "02.06.1990")))
	require.NoError(t, book.Add(newTestRecord(t, "nobirthday", "0501234567")))

	got := book.BirthdaysWithin(today, 7)

	assert.Equal(t, map[time.Time][]string{
		date(2024, time.June, 3):  {"today"},
		date(2024, time.June, 5):  {"wed"},
		date(2024, time.June, 10): {"sat", "sun"},
	}, got)
}

func TestBirthdaysWithinExcludesShiftedPastWindow(t *testing.T) {
	today := date(2024, time.June, 3)
	book := NewAddressBook()
	require.NoError(t, book.Add(withBirthday(t, "sat", "08.06.1990")))

	assert.Empty(t, book.BirthdaysWithin(today, 5), "Saturday birthday moves to Monday outside the window")
	assert.Len(t, book.BirthdaysWithin(today, 7), 1)
}

func TestBirthdaysWithinIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2024, time.June, 3, 18, 45, 0, 0, time.UTC)
	book := NewAddressBook()
	require.NoError(t, book.Add(withBirthday(t, "alice", "03.06.1990")))

	assert.Equal(t, map[time.Time][]string{date(2024, time.June, 3): {"alice"}}, book.BirthdaysWithin(today, 0))
}

func TestBirthdaysWithinCrossesYearEnd(t *testing.T) {
	// 30 December 2024 is a Monday, 2 January 2025 a Thursday.
	today := date(2024, time.December, 30)
	book := NewAddressBook()
	require.NoError(t, book.Add(withBirthday(t, "alice", "02.01.1990")))

	assert.Equal(t, map[time.Time][]string{date(2025, time.January, 2): {"alice"}}, book.BirthdaysWithin(today, 7))
}

func TestNextBirthdayLeapDay(t *testing.T) {
	birthday := date(2000, time.February, 29)

	assert.Equal(t, date(2025, time.March, 1), NextBirthday(birthday, date(2025, time.February, 27)))
	assert.Equal(t, date(2028, time.February, 29), NextBirthday(birthday, date(2028, time.January, 10)))
	assert.Equal(t, date(2026, time.March, 1), NextBirthday(birthday, date(2025, time.March, 2)))
}

func TestAddressBookJSONRoundTrip(t *testing.T) {
	book := NewAddressBook()
	alice := newTestRecord(t, "alice", "0501234567", "0671112233")
	require.NoError(t, alice.AddEmail("alice@example.com"))
	require.NoError(t, alice.SetBirthday("17.05.1990"))
	require.NoError(t, book.Add(alice))
	bob := newTestRecord(t, "bob")
	require.NoError(t, bob.SetAddress("Lviv, Rynok square"))
	require.NoError(t, book.Add(bob))

	data, err := json.Marshal(book)
	require.NoError(t, err)

	decoded := NewAddressBook()
	require.NoError(t, json.Unmarshal(data, decoded))
	require.Equal(t, 2, decoded.Len())
	for _, record := range book.Records() {
		got, err := decoded.Get(record.Name())
		require.NoError(t, err)
		assert.Equal(t, record.String(), got.String())
	}
}

func TestAddressBookUnmarshalRejectsDuplicateNames(t *testing.T) {
	data := []byte(`{"contacts":[{"name":"alice","phones":[]},{"name":"alice","phones":[]}]}`)
	book := NewAddressBook()
	err := json.Unmarshal(data, book)
	assert.True(t, IsKind(err, ErrDuplicate))
}
