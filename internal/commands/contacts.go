package commands

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"rhystmorgan/assistant/internal/audit"
	"rhystmorgan/assistant/internal/models"
	"rhystmorgan/assistant/internal/utils"
	"rhystmorgan/assistant/internal/validation"
)

func (h *Handler) registerContacts() {
	h.register(&Command{Name: "add", Example: "add alice 0501234567", Description: "Add a contact or another phone to it", MinArgs: 2, Run: h.addContact})
	h.register(&Command{Name: "change", Example: "change alice 0501234567 0931234567", Description: "Replace a phone of a contact", MinArgs: 3, Run: h.changePhone})
	h.register(&Command{Name: "remove-phone", Example: "remove-phone alice 0501234567", Description: "Remove a phone from a contact", MinArgs: 2, Run: h.removePhone})
	h.register(&Command{Name: "phone", Example: "phone alice", Description: "Show phones of a contact", MinArgs: 1, Run: h.showPhone})
	h.register(&Command{Name: "all", Example: "all", Description: "Show all contacts", Run: h.showAll})
	h.register(&Command{Name: "find-contact", Example: "find-contact 0501234567", Description: "Find a contact by name or phone", MinArgs: 1, Run: h.findContact})
	h.register(&Command{Name: "delete", Example: "delete alice", Description: "Delete a contact", MinArgs: 1, Run: h.deleteContact})
	h.register(&Command{Name: "add-email", Example: "add-email alice alice@example.com", Description: "Add an email to a contact", MinArgs: 2, Run: h.addEmail})
	h.register(&Command{Name: "change-email", Example: "change-email alice alice@work.com", Description: "Change the email of a contact", MinArgs: 2, Run: h.changeEmail})
	h.register(&Command{Name: "show-email", Example: "show-email alice", Description: "Show the email of a contact", MinArgs: 1, Run: h.showEmail})
	h.register(&Command{Name: "add-address", Example: "add-address alice Kyiv, Khreshchatyk 1", Description: "Set the address of a contact", MinArgs: 2, Run: h.addAddress})
	h.register(&Command{Name: "show-address", Example: "show-address alice", Description: "Show the address of a contact", MinArgs: 1, Run: h.showAddress})
	h.register(&Command{Name: "add-birthday", Example: "add-birthday alice 17.05.1990", Description: "Set the birthday of a contact", MinArgs: 2, Run: h.addBirthday})
	h.register(&Command{Name: "show-birthday", Example: "show-birthday alice", Description: "Show the birthday of a contact", MinArgs: 1, Run: h.showBirthday})
	h.register(&Command{Name: "export-contacts", Example: "export-contacts contacts.csv", Description: "Write all contacts to a CSV file", MinArgs: 1, Run: h.exportContacts})
	h.register(&Command{Name: "import-contacts", Example: "import-contacts contacts.csv", Description: "Add contacts from a CSV file, existing names are skipped", MinArgs: 1, Run: h.importContacts})
	h.register(&Command{
		Name:        "birthdays",
		Example:     "birthdays 7",
		Description: "Birthdays in the next N days, weekends moved to Monday",
		Prompts:     []string{"Enter number of days: "},
		MinArgs:     1,
		Run:         h.birthdays,
	})
}

func (h *Handler) addContact(args []string) (string, error) {
	name, phone := args[0], args[1]

	record, err := h.book.Get(name)
	if err != nil {
		record, err = models.NewRecord(name)
		if err != nil {
			return "", err
		}
		if err := record.AddPhone(phone); err != nil {
			return "", err
		}
		if err := h.book.Add(record); err != nil {
			return "", err
		}
		h.recordChange(audit.KindContact, record.Name(), audit.ActionCreate, map[string]string{"phone": phone})
		return "Contact added.", nil
	}

	if err := record.AddPhone(phone); err != nil {
		if models.IsKind(err, models.ErrDuplicate) {
			return Message(err), nil
		}
		return "", err
	}
	h.recordChange(audit.KindContact, name, audit.ActionUpdate, map[string]string{"phone": phone})
	return "Contact added.", nil
}

func (h *Handler) changePhone(args []string) (string, error) {
	name, oldPhone, newPhone := args[0], args[1], args[2]

	record, err := h.book.Get(name)
	if err != nil {
		return "", err
	}
	if err := record.EditPhone(oldPhone, newPhone); err != nil {
		return "", err
	}
	h.recordChange(audit.KindContact, name, audit.ActionUpdate, map[string]string{"old_phone": oldPhone, "phone": newPhone})
	return "Contact changed", nil
}

func (h *Handler) removePhone(args []string) (string, error) {
	name, phone := args[0], args[1]

	record, err := h.book.Get(name)
	if err != nil {
		return "", err
	}
	if err := record.RemovePhone(phone); err != nil {
		return "", err
	}
	h.recordChange(audit.KindContact, name, audit.ActionUpdate, map[string]string{"removed_phone": phone})
	return "Phone removed", nil
}

func (h *Handler) showPhone(args []string) (string, error) {
	name := args[0]

	record, err := h.book.Get(name)
	if err != nil {
		return "", err
	}
	phones := record.Phones()
	if len(phones) == 0 {
		return fmt.Sprintf("No phones for %s", name), nil
	}
	return fmt.Sprintf("Phones of %s: %s", name, strings.Join(phones, ", ")), nil
}

func (h *Handler) showAll([]string) (string, error) {
	records := h.book.Records()
	if len(records) == 0 {
		return "You don't have any contacts yet", nil
	}

	lines := make([]string, 0, len(records))
	for _, record := range records {
		lines = append(lines, record.String())
	}
	return strings.Join(lines, "\n"), nil
}

func (h *Handler) findContact(args []string) (string, error) {
	record, err := h.book.Find(args[0])
	if err != nil {
		if models.IsKind(err, models.ErrNotFound) {
			return Message(err), nil
		}
		return "", err
	}
	return record.String(), nil
}

func (h *Handler) deleteContact(args []string) (string, error) {
	name := args[0]

	if err := h.book.Delete(name); err != nil {
		return "", err
	}
	h.recordChange(audit.KindContact, name, audit.ActionDelete, nil)
	return fmt.Sprintf("Contact '%s' deleted successfully", name), nil
}

func (h *Handler) addEmail(args []string) (string, error) {
	name := args[0]

	record, err := h.book.Get(name)
	if err != nil {
		return "", err
	}
	if err := record.AddEmail(args[1]); err != nil {
		return "", err
	}
	email, _ := record.Email()
	h.recordChange(audit.KindContact, name, audit.ActionUpdate, map[string]string{"email": email})
	return fmt.Sprintf("Email added for %s", name), nil
}

func (h *Handler) changeEmail(args []string) (string, error) {
	name := args[0]

	record, err := h.book.Get(name)
	if err != nil {
		return "", err
	}
	if err := record.EditEmail(args[1]); err != nil {
		return "", err
	}
	email, _ := record.Email()
	h.recordChange(audit.KindContact, name, audit.ActionUpdate, map[string]string{"email": email})
	return "Email changed", nil
}

func (h *Handler) showEmail(args []string) (string, error) {
	name := args[0]

	record, err := h.book.Get(name)
	if err != nil {
		return "", err
	}
	email, ok := record.Email()
	if !ok {
		return "", models.NewFieldNotSetError("Email", name)
	}
	return fmt.Sprintf("Email of %s: %s", name, email), nil
}

func (h *Handler) addAddress(args []string) (string, error) {
	name := args[0]

	record, err := h.book.Get(name)
	if err != nil {
		return "", err
	}
	if err := record.SetAddress(strings.Join(args[1:], " ")); err != nil {
		return "", err
	}
	address, _ := record.Address()
	h.recordChange(audit.KindContact, name, audit.ActionUpdate, map[string]string{"address": address})
	return fmt.Sprintf("Address added for %s", name), nil
}

func (h *Handler) showAddress(args []string) (string, error) {
	name := args[0]

	record, err := h.book.Get(name)
	if err != nil {
		return "", err
	}
	address, ok := record.Address()
	if !ok {
		return "", models.NewFieldNotSetError("Address", name)
	}
	return fmt.Sprintf("Address of %s: %s", name, address), nil
}

func (h *Handler) addBirthday(args []string) (string, error) {
	name := args[0]

	record, err := h.book.Get(name)
	if err != nil {
		return "", err
	}
	if err := record.SetBirthday(args[1]); err != nil {
		return "", err
	}
	h.recordChange(audit.KindContact, name, audit.ActionUpdate, map[string]string{"birthday": strings.TrimSpace(args[1])})
	return fmt.Sprintf("Birthday added for %s", name), nil
}

func (h *Handler) showBirthday(args []string) (string, error) {
	name := args[0]

	record, err := h.book.Get(name)
	if err != nil {
		return "", err
	}
	birthday, ok := record.Birthday()
	if !ok {
		return "", models.NewFieldNotSetError("Birthday", name)
	}
	return fmt.Sprintf("Birthday of %s: %s", name, birthday.Format(validation.BirthdayLayout)), nil
}

func (h *Handler) birthdays(args []string) (string, error) {
	days, err := validation.Days(args[0])
	if err != nil {
		return "", err
	}

	upcoming := h.book.BirthdaysWithin(h.now(), days)
	if len(upcoming) == 0 {
		return "No upcoming birthdays", nil
	}

	dates := make([]time.Time, 0, len(upcoming))
	for date := range upcoming {
		dates = append(dates, date)
	}
	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })

	lines := make([]string, 0, len(dates))
	for _, date := range dates {
		lines = append(lines, fmt.Sprintf("%s: %s", date.Format("Monday, 02 January"), strings.Join(upcoming[date], ", ")))
	}
	return strings.Join(lines, "\n"), nil
}

func (h *Handler) exportContacts(args []string) (string, error) {
	path := strings.Join(args, " ")
	records := h.book.Records()
	if err := utils.ExportContacts(path, records); err != nil {
		return "", err
	}
	return fmt.Sprintf("Exported %d contacts to %s", len(records), path), nil
}

func (h *Handler) importContacts(args []string) (string, error) {
	path := strings.Join(args, " ")
	result, err := utils.ImportContacts(path, h.book)
	if result != nil {
		for _, name := range result.Imported {
			h.recordChange(audit.KindContact, name, audit.ActionCreate, map[string]string{"source": path})
		}
	}
	if err != nil {
		return "", err
	}

	lines := []string{fmt.Sprintf("Imported %d contacts, skipped %d existing", len(result.Imported), len(result.Skipped))}
	for _, rowErr := range result.Errors {
		lines = append(lines, fmt.Sprintf("Line %d (%s): %s", rowErr.Line, rowErr.Name, Message(rowErr.Err)))
	}
	return strings.Join(lines, "\n"), nil
}
