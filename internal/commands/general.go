package commands

import (
	"fmt"
	"sort"
	"strings"

	"rhystmorgan/assistant/internal/audit"
	"rhystmorgan/assistant/internal/utils"
)

func (h *Handler) registerGeneral() {
	h.register(&Command{
		Name:        "hello",
		Example:     "hello",
		Description: "Greet the assistant",
		Run: func([]string) (string, error) {
			return "How can I help you?", nil
		},
	})
	h.register(&Command{
		Name:        "help",
		Example:     "help",
		Description: "Show this table",
		Run: func([]string) (string, error) {
			return h.help(), nil
		},
	})
	for _, name := range []string{"close", "exit"} {
		h.register(&Command{
			Name:        name,
			Example:     name,
			Description: "Save and leave the assistant",
			Exit:        true,
			Run: func([]string) (string, error) {
				return "Good bye!", nil
			},
		})
	}
	h.register(&Command{
		Name:        "history",
		Example:     "history alice",
		Description: "Show recorded changes of a contact or note",
		MinArgs:     1,
		Run:         h.history,
	})
}

func (h *Handler) help() string {
	var rows [][]string
	for _, cmd := range h.Commands() {
		rows = append(rows, []string{cmd.Name, cmd.Example, cmd.Description})
	}
	return utils.RenderTable([]string{"Command", "Example", "Description"}, rows)
}

func (h *Handler) history(args []string) (string, error) {
	if h.journal == nil {
		return "History is not enabled", nil
	}

	subject := args[0]
	entries, err := h.journal.History(audit.KindContact, subject)
	if err != nil {
		return "", err
	}
	notes, err := h.journal.History(audit.KindNote, subject)
	if err != nil {
		return "", err
	}
	entries = append(entries, notes...)
	if len(entries) == 0 {
		return fmt.Sprintf("No history for %s", subject), nil
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		line := fmt.Sprintf("%s %s %s %s", entry.Timestamp.Format("2006-01-02 15:04:05"), entry.Kind, entry.Subject, entry.Action)
		if details := formatDetails(entry.Details); details != "" {
			line += " " + details
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func formatDetails(details map[string]string) string {
	keys := make([]string, 0, len(details))
	for key := range details {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+details[key])
	}
	return strings.Join(parts, " ")
}
