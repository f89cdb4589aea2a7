package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rhystmorgan/assistant/internal/validation"
)

func newTestRecord(t *testing.T, name string, phones ...string) *Record {
	t.Helper()
	record, err := NewRecord(name)
	require.NoError(t, err)
	for _, phone := range phones {
		require.NoError(t, record.AddPhone(phone))
	}
	return record
}

func TestNewRecordRequiresName(t *testing.T) {
	_, err := NewRecord("  ")
	assert.True(t, validation.HasCode(err, validation.ErrorValueRequired))

	record, err := NewRecord(" alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice", record.Name())
	assert.Empty(t, record.Phones())
}

func TestRecordAddPhone(t *testing.T) {
	record := newTestRecord(t, "alice", "0501234567")

	err := record.AddPhone("0501234567")
	assert.True(t, IsKind(err, ErrDuplicate))
	assert.Equal(t, "Number already exist for this contact", err.Error())

	err = record.AddPhone("12345")
	assert.True(t, validation.HasCode(err, validation.ErrorInvalidPhone))

	require.NoError(t, record.AddPhone("0671112233"))
	assert.Equal(t, []string{"0501234567", "0671112233"}, record.Phones())
}

func TestRecordPhonesReturnsCopy(t *testing.T) {
	record := newTestRecord(t, "alice", "0501234567")
	phones := record.Phones()
	phones[0] = "0000000000"
	assert.Equal(t, []string{"0501234567"}, record.Phones())
}

func TestRecordEditPhone(t *testing.T) {
	record := newTestRecord(t, "alice", "0501234567", "0671112233")

	require.NoError(t, record.EditPhone("0501234567", "0931234567"))
	assert.Equal(t, []string{"0931234567", "0671112233"}, record.Phones(), "edited phone keeps its position")

	err := record.EditPhone("0500000000", "0939999999")
	assert.True(t, IsKind(err, ErrNotFound))

	err = record.EditPhone("0931234567", "0671112233")
	assert.True(t, IsKind(err, ErrDuplicate))

	err = record.EditPhone("0931234567", "bad")
	assert.True(t, validation.HasCode(err, validation.ErrorInvalidPhone))

	require.NoError(t, record.EditPhone("0931234567", "0931234567"), "replacing a phone with itself is allowed")
}

func TestRecordRemovePhone(t *testing.T) {
	record := newTestRecord(t, "alice", "0501234567", "0671112233")

	require.NoError(t, record.RemovePhone("0501234567"))
	assert.Equal(t, []string{"0671112233"}, record.Phones())

	assert.True(t, IsKind(record.RemovePhone("0501234567"), ErrNotFound))
}

func TestRecordEmail(t *testing.T) {
	record := newTestRecord(t, "alice")

	err := record.EditEmail("alice@example.com")
	assert.True(t, IsKind(err, ErrFieldNotSet))
	assert.Equal(t, "Email of alice is not set", err.Error())

	require.NoError(t, record.AddEmail("alice@example.com"))
	email, ok := record.Email()
	assert.True(t, ok)
	assert.Equal(t, "alice@example.com", email)

	assert.True(t, IsKind(record.AddEmail("other@example.com"), ErrDuplicate))

	require.NoError(t, record.EditEmail("alice@work.example.com"))
	email, _ = record.Email()
	assert.Equal(t, "alice@work.example.com", email)

	assert.True(t, validation.HasCode(record.EditEmail("not-an-email"), validation.ErrorInvalidEmail))
}

func TestRecordAddressAndBirthday(t *testing.T) {
	record := newTestRecord(t, "alice")

	_, ok := record.Address()
	assert.False(t, ok)
	assert.Error(t, record.SetAddress(" "))
	require.NoError(t, record.SetAddress("Kyiv, Khreshchatyk 1"))
	address, ok := record.Address()
	assert.True(t, ok)
	assert.Equal(t, "Kyiv, Khreshchatyk 1", address)

	_, ok = record.Birthday()
	assert.False(t, ok)
	assert.True(t, validation.HasCode(record.SetBirthday("1990-05-17"), validation.ErrorInvalidDate))
	require.NoError(t, record.SetBirthday("17.05.1990"))
	birthday, ok := record.Birthday()
	assert.True(t, ok)
	assert.Equal(t, time.Date(1990, time.May, 17, 0, 0, 0, 0, time.UTC), birthday)
}

func TestRecordString(t *testing.T) {
	record := newTestRecord(t, "alice", "0501234567", "0671112233")
	assert.Equal(t, "Contact name: alice, phones: 0501234567; 0671112233", record.String())

	require.NoError(t, record.AddEmail("alice@example.com"))
	require.NoError(t, record.SetAddress("Kyiv"))
	require.NoError(t, record.SetBirthday("01.02.1990"))
	assert.Equal(t,
		"Contact name: alice, phones: 0501234567; 0671112233, email: alice@example.com, address: Kyiv, birthday: 01.02.1990",
		record.String())
}

func TestRecordJSONRoundTrip(t *testing.T) {
	record := newTestRecord(t, "alice", "0501234567", "0671112233")
	require.NoError(t, record.AddEmail("alice@example.com"))
	require.NoError(t, record.SetAddress("Kyiv"))
	require.NoError(t, record.SetBirthday("29.02.2000"))

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, record.String(), decoded.String())
	assert.Equal(t, record.Phones(), decoded.Phones())
}

func TestRecordUnmarshalRejectsInvalidData(t *testing.T) {
	var record Record
	err := json.Unmarshal([]byte(`{"name":"bob","phones":["123"]}`), &record)
	require.Error(t, err)
	assert.True(t, validation.HasCode(err, validation.ErrorInvalidPhone))

	err = json.Unmarshal([]byte(`{"name":"","phones":[]}`), &record)
	assert.Error(t, err)
}
