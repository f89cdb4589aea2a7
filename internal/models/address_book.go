package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// AddressBook maps contact names to records. Every key equals its record's name.
type AddressBook struct {
	records map[string]*Record
}

type addressBookJSON struct {
	Contacts []*Record `json:"contacts"`
}

func NewAddressBook() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

func (ab *AddressBook) Add(record *Record) error {
	if _, exists := ab.records[record.Name()]; exists {
		return NewError(ErrDuplicate, fmt.Sprintf("Contact with name %s already exists", record.Name()), nil)
	}
	ab.records[record.Name()] = record
	return nil
}

func (ab *AddressBook) Has(name string) bool {
	_, ok := ab.records[name]
	return ok
}

func (ab *AddressBook) Get(name string) (*Record, error) {
	record, ok := ab.records[name]
	if !ok {
		return nil, NewContactNotFoundError(name)
	}
	return record, nil
}

func (ab *AddressBook) Delete(name string) error {
	if _, ok := ab.records[name]; !ok {
		return NewContactNotFoundError(name)
	}
	delete(ab.records, name)
	return nil
}

// Find looks value up as a name first and then as a phone number.
func (ab *AddressBook) Find(value string) (*Record, error) {
	value = strings.TrimSpace(value)
	if record, ok := ab.records[value]; ok {
		return record, nil
	}
	for _, record := range ab.Records() {
		if record.HasPhone(value) {
			return record, nil
		}
	}
	return nil, NewError(ErrNotFound, fmt.Sprintf("Contact %s not found", value), nil)
}

// Records returns all records ordered by name.
func (ab *AddressBook) Records() []*Record {
	records := make([]*Record, 0, len(ab.records))
	for _, record := range ab.records {
		records = append(records, record)
	}
	slices.SortFunc(records, func(a, b *Record) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return records
}

func (ab *AddressBook) Len() int {
	return len(ab.records)
}

// BirthdaysWithin groups contact names by the day their birthday is celebrated
// within [today, today+days]. Weekend birthdays move to the following Monday.
func (ab *AddressBook) BirthdaysWithin(today time.Time, days int) map[time.Time][]string {
	today = truncateToDay(today)
	last := today.AddDate(0, 0, days)
	result := make(map[time.Time][]string)

	for _, record := range ab.Records() {
		birthday, ok := record.Birthday()
		if !ok {
			continue
		}
		day := celebrationDay(NextBirthday(birthday, today))
		if day.After(last) {
			continue
		}
		result[day] = append(result[day], record.Name())
	}
	return result
}

// NextBirthday returns the first anniversary of birthday on or after today.
// 29 February falls on 1 March in non-leap years.
func NextBirthday(birthday, today time.Time) time.Time {
	today = truncateToDay(today)
	next := time.Date(today.Year(), birthday.Month(), birthday.Day(), 0, 0, 0, 0, today.Location())
	if next.Before(today) {
		next = time.Date(today.Year()+1, birthday.Month(), birthday.Day(), 0, 0, 0, 0, today.Location())
	}
	return next
}

func celebrationDay(day time.Time) time.Time {
	switch day.Weekday() {
	case time.Saturday:
		return day.AddDate(0, 0, 2)
	case time.Sunday:
		return day.AddDate(0, 0, 1)
	default:
		return day
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (ab *AddressBook) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressBookJSON{Contacts: ab.Records()})
}

func (ab *AddressBook) UnmarshalJSON(data []byte) error {
	var in addressBookJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	book := NewAddressBook()
	for _, record := range in.Contacts {
		if record == nil {
			continue
		}
		if err := book.Add(record); err != nil {
			return fmt.Errorf("invalid stored address book: %w", err)
		}
	}

	*ab = *book
	return nil
}
