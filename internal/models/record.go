package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"rhystmorgan/assistant/internal/validation"
)

// Record is one contact. The name is fixed at creation and is the address book key.
type Record struct {
	name     string
	phones   []string
	email    string
	address  string
	birthday *time.Time
}

type recordJSON struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Email    string   `json:"email,omitempty"`
	Address  string   `json:"address,omitempty"`
	Birthday string   `json:"birthday,omitempty"`
}

func NewRecord(name string) (*Record, error) {
	name, err := validation.Required("Name", name)
	if err != nil {
		return nil, err
	}
	return &Record{name: name, phones: []string{}}, nil
}

func (r *Record) Name() string {
	return r.name
}

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []string {
	return slices.Clone(r.phones)
}

func (r *Record) HasPhone(phone string) bool {
	return slices.Contains(r.phones, strings.TrimSpace(phone))
}

func (r *Record) AddPhone(raw string) error {
	phone, err := validation.Phone(raw)
	if err != nil {
		return err
	}
	if r.HasPhone(phone) {
		return NewError(ErrDuplicate, "Number already exist for this contact", nil)
	}
	r.phones = append(r.phones, phone)
	return nil
}

// EditPhone replaces old with the validated new phone, keeping its position.
func (r *Record) EditPhone(old, raw string) error {
	phone, err := validation.Phone(raw)
	if err != nil {
		return err
	}
	i := slices.Index(r.phones, strings.TrimSpace(old))
	if i < 0 {
		return NewError(ErrNotFound, fmt.Sprintf("Phone number %s not found for %s", old, r.name), nil)
	}
	if phone != r.phones[i] && r.HasPhone(phone) {
		return NewError(ErrDuplicate, "Number already exist for this contact", nil)
	}
	r.phones[i] = phone
	return nil
}

func (r *Record) RemovePhone(phone string) error {
	i := slices.Index(r.phones, strings.TrimSpace(phone))
	if i < 0 {
		return NewError(ErrNotFound, fmt.Sprintf("Phone number %s not found for %s", phone, r.name), nil)
	}
	r.phones = slices.Delete(r.phones, i, i+1)
	return nil
}

func (r *Record) Email() (string, bool) {
	return r.email, r.email != ""
}

// AddEmail sets the first email of the contact. Use EditEmail to replace it.
func (r *Record) AddEmail(raw string) error {
	email, err := validation.Email(raw)
	if err != nil {
		return err
	}
	if r.email != "" {
		return NewError(ErrDuplicate, fmt.Sprintf("Email for %s already set, use change-email", r.name), nil)
	}
	r.email = email
	return nil
}

func (r *Record) EditEmail(raw string) error {
	email, err := validation.Email(raw)
	if err != nil {
		return err
	}
	if r.email == "" {
		return NewFieldNotSetError("Email", r.name)
	}
	r.email = email
	return nil
}

func (r *Record) Address() (string, bool) {
	return r.address, r.address != ""
}

func (r *Record) SetAddress(text string) error {
	address, err := validation.Required("Address", text)
	if err != nil {
		return err
	}
	r.address = address
	return nil
}

func (r *Record) Birthday() (time.Time, bool) {
	if r.birthday == nil {
		return time.Time{}, false
	}
	return *r.birthday, true
}

func (r *Record) SetBirthday(raw string) error {
	date, err := validation.Birthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &date
	return nil
}

func (r *Record) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Contact name: %s, phones: %s", r.name, strings.Join(r.phones, "; "))
	if r.email != "" {
		fmt.Fprintf(&b, ", email: %s", r.email)
	}
	if r.address != "" {
		fmt.Fprintf(&b, ", address: %s", r.address)
	}
	if r.birthday != nil {
		fmt.Fprintf(&b, ", birthday: %s", r.birthday.Format(validation.BirthdayLayout))
	}
	return b.String()
}

func (r *Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{
		Name:    r.name,
		Phones:  r.phones,
		Email:   r.email,
		Address: r.address,
	}
	if out.Phones == nil {
		out.Phones = []string{}
	}
	if r.birthday != nil {
		out.Birthday = r.birthday.Format(validation.BirthdayLayout)
	}
	return json.Marshal(out)
}

// UnmarshalJSON runs every stored field back through validation.
func (r *Record) UnmarshalJSON(data []byte) error {
	var in recordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	record, err := NewRecord(in.Name)
	if err != nil {
		return fmt.Errorf("invalid stored contact: %w", err)
	}
	for _, phone := range in.Phones {
		if err := record.AddPhone(phone); err != nil {
			return fmt.Errorf("invalid stored phone for %s: %w", record.name, err)
		}
	}
	if in.Email != "" {
		if err := record.AddEmail(in.Email); err != nil {
			return fmt.Errorf("invalid stored email for %s: %w", record.name, err)
		}
	}
	if in.Address != "" {
		if err := record.SetAddress(in.Address); err != nil {
			return fmt.Errorf("invalid stored address for %s: %w", record.name, err)
		}
	}
	if in.Birthday != "" {
		if err := record.SetBirthday(in.Birthday); err != nil {
			return fmt.Errorf("invalid stored birthday for %s: %w", record.name, err)
		}
	}

	*r = *record
	return nil
}
