package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"rhystmorgan/assistant/internal/models"
	"rhystmorgan/assistant/internal/validation"
)

var csvHeader = []string{"name", "phones", "email", "address", "birthday"}

const phoneSeparator = ";"

// ImportResult summarizes an import into an address book.
type ImportResult struct {
	Imported []string
	Skipped  []string
	Errors   []ImportError
}

// ImportError is a CSV row that could not become a contact.
type ImportError struct {
	Line int
	Name string
	Err  error
}

func (e ImportError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Name, e.Err)
}

// ExportContacts writes records as CSV with phones joined by ';'.
func ExportContacts(path string, records []*models.Record) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", closeErr)
		}
	}()

	return writeContacts(file, records)
}

func writeContacts(w io.Writer, records []*models.Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, record := range records {
		email, _ := record.Email()
		address, _ := record.Address()
		var birthday string
		if date, ok := record.Birthday(); ok {
			birthday = date.Format(validation.BirthdayLayout)
		}

		row := []string{record.Name(), strings.Join(record.Phones(), phoneSeparator), email, address, birthday}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write contacts: %w", err)
	}
	return nil
}

// ImportContacts adds every valid CSV row to book. Rows naming an existing
// contact are skipped and invalid rows are reported without stopping the import.
func ImportContacts(path string, book *models.AddressBook) (*ImportResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(csvHeader)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if !slices.Equal(header, csvHeader) {
		return nil, fmt.Errorf("unexpected header %q, want %q", header, csvHeader)
	}

	result := &ImportResult{}
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		name := strings.TrimSpace(row[0])
		if book.Has(name) {
			result.Skipped = append(result.Skipped, name)
			continue
		}

		record, err := recordFromRow(row)
		if err != nil {
			result.Errors = append(result.Errors, ImportError{Line: line, Name: name, Err: err})
			continue
		}
		if err := book.Add(record); err != nil {
			result.Skipped = append(result.Skipped, name)
			continue
		}
		result.Imported = append(result.Imported, record.Name())
	}

	return result, nil
}

func recordFromRow(row []string) (*models.Record, error) {
	record, err := models.NewRecord(row[0])
	if err != nil {
		return nil, err
	}

	for _, phone := range strings.Split(row[1], phoneSeparator) {
		if strings.TrimSpace(phone) == "" {
			continue
		}
		if err := record.AddPhone(phone); err != nil && !models.IsKind(err, models.ErrDuplicate) {
			return nil, err
		}
	}
	if email := strings.TrimSpace(row[2]); email != "" {
		if err := record.AddEmail(email); err != nil {
			return nil, err
		}
	}
	if address := strings.TrimSpace(row[3]); address != "" {
		if err := record.SetAddress(address); err != nil {
			return nil, err
		}
	}
	if birthday := strings.TrimSpace(row[4]); birthday != "" {
		if err := record.SetBirthday(birthday); err != nil {
			return nil, err
		}
	}
	return record, nil
}
