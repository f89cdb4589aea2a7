package commands

import (
	"fmt"
	"strings"

	"rhystmorgan/assistant/internal/audit"
	"rhystmorgan/assistant/internal/models"
)

var notePrompts = []string{
	"Enter title: ",
	"Enter text (optional): ",
	"Enter tags separated by comma (optional): ",
}

var updateNotePrompts = []string{
	"Enter title: ",
	"Enter new text (optional): ",
	"Enter new tags separated by comma (optional): ",
}

func (h *Handler) registerNotes() {
	h.register(&Command{
		Name:        "add-note",
		Example:     "add-note groceries milk and bread",
		Description: "Add a note, asks for anything not given",
		Prompts:     notePrompts,
		MinArgs:     len(notePrompts),
		Run:         h.addNote,
	})
	h.register(&Command{
		Name:        "update-note",
		Example:     "update-note groceries",
		Description: "Replace text and tags of a note",
		Prompts:     updateNotePrompts,
		MinArgs:     len(updateNotePrompts),
		Run:         h.updateNote,
	})
	h.register(&Command{Name: "delete-note", Example: "delete-note groceries", Description: "Delete a note by title", MinArgs: 1, Run: h.deleteNote})
	h.register(&Command{Name: "find-note", Example: "find-note groceries", Description: "Show a note by title", MinArgs: 1, Run: h.findNote})
	h.register(&Command{Name: "find-tag", Example: "find-tag home", Description: "Show notes with a tag", MinArgs: 1, Run: h.findTag})
	h.register(&Command{Name: "notes", Example: "notes", Description: "List note titles and tags", Run: h.showNotes})
}

func (h *Handler) addNote(args []string) (string, error) {
	note, err := h.notes.Add(args[0], args[1], args[2])
	if err != nil {
		return "", err
	}
	h.recordChange(audit.KindNote, note.Title, audit.ActionCreate, map[string]string{"tags": strings.Join(note.Tags, ",")})
	return fmt.Sprintf("Note with title: '%s' added.", note.Title), nil
}

func (h *Handler) updateNote(args []string) (string, error) {
	note, err := h.notes.UpdateByTitle(args[0], args[1], args[2])
	if err != nil {
		if models.IsKind(err, models.ErrNotFound) {
			return Message(err), nil
		}
		return "", err
	}
	h.recordChange(audit.KindNote, note.Title, audit.ActionUpdate, map[string]string{"tags": strings.Join(note.Tags, ",")})
	return fmt.Sprintf("Note with title: '%s' updated.", note.Title), nil
}

func (h *Handler) deleteNote(args []string) (string, error) {
	title := args[0]
	if err := h.notes.DeleteByTitle(title); err != nil {
		if models.IsKind(err, models.ErrNotFound) {
			return Message(err), nil
		}
		return "", err
	}
	h.recordChange(audit.KindNote, title, audit.ActionDelete, nil)
	return fmt.Sprintf("Note '%s' deleted.", title), nil
}

func (h *Handler) findNote(args []string) (string, error) {
	note, err := h.notes.FindByTitle(args[0])
	if err != nil {
		if models.IsKind(err, models.ErrNotFound) {
			return Message(err), nil
		}
		return "", err
	}
	return note.String(), nil
}

func (h *Handler) findTag(args []string) (string, error) {
	tag := args[0]
	notes := h.notes.FindByTag(tag)
	if len(notes) == 0 {
		return fmt.Sprintf("No notes found with tag: '%s'.", tag), nil
	}

	lines := make([]string, 0, len(notes))
	for _, note := range notes {
		if note.Text != "" {
			lines = append(lines, note.Text)
		} else {
			lines = append(lines, note.Title)
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (h *Handler) showNotes([]string) (string, error) {
	notes := h.notes.All()
	if len(notes) == 0 {
		return "No notes found.", nil
	}

	lines := make([]string, 0, len(notes))
	for _, note := range notes {
		lines = append(lines, fmt.Sprintf("Title %s: tags %s", note.Title, strings.Join(note.Tags, ",")))
	}
	return strings.Join(lines, "\n"), nil
}
