package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"rhystmorgan/assistant/internal/validation"
)

type Note struct {
	Title string   `json:"title"`
	Text  string   `json:"text,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

func (n *Note) HasTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	for _, existingTag := range n.Tags {
		if strings.EqualFold(existingTag, tag) {
			return true
		}
	}
	return false
}

func (n *Note) String() string {
	var b strings.Builder
	b.WriteString("Title: " + n.Title)
	if n.Text != "" {
		b.WriteString("\nText: " + n.Text)
	}
	if len(n.Tags) > 0 {
		b.WriteString("\nTags: " + strings.Join(n.Tags, ", "))
	}
	return b.String()
}

// ParseTags splits a comma-separated tag list, trimming each tag and dropping empty ones.
func ParseTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Notes is an ordered note list. Titles are not unique; lookups by title
// operate on the first note with that title.
type Notes struct {
	notes []*Note
}

func NewNotes() *Notes {
	return &Notes{}
}

func (ns *Notes) Add(title, text, tags string) (*Note, error) {
	title, err := validation.Required("Title", title)
	if err != nil {
		return nil, err
	}
	note := &Note{
		Title: title,
		Text:  strings.TrimSpace(text),
		Tags:  ParseTags(tags),
	}
	ns.notes = append(ns.notes, note)
	return note, nil
}

func (ns *Notes) index(title string) int {
	title = strings.TrimSpace(title)
	return slices.IndexFunc(ns.notes, func(n *Note) bool {
		return n.Title == title
	})
}

func (ns *Notes) FindByTitle(title string) (*Note, error) {
	i := ns.index(title)
	if i < 0 {
		return nil, NewNoteNotFoundError(title)
	}
	return ns.notes[i], nil
}

func (ns *Notes) DeleteByTitle(title string) error {
	i := ns.index(title)
	if i < 0 {
		return NewNoteNotFoundError(title)
	}
	ns.notes = slices.Delete(ns.notes, i, i+1)
	return nil
}

// UpdateByTitle replaces the text and tags of the first note titled title.
func (ns *Notes) UpdateByTitle(title, text, tags string) (*Note, error) {
	note, err := ns.FindByTitle(title)
	if err != nil {
		return nil, err
	}
	note.Text = strings.TrimSpace(text)
	note.Tags = ParseTags(tags)
	return note, nil
}

func (ns *Notes) FindByTag(tag string) []*Note {
	var results []*Note
	for _, note := range ns.notes {
		if note.HasTag(tag) {
			results = append(results, note)
		}
	}
	return results
}

func (ns *Notes) All() []*Note {
	return slices.Clone(ns.notes)
}

func (ns *Notes) Len() int {
	return len(ns.notes)
}

func (ns *Notes) MarshalJSON() ([]byte, error) {
	if ns.notes == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(ns.notes)
}

// UnmarshalJSON runs every stored note back through Add.
func (ns *Notes) UnmarshalJSON(data []byte) error {
	var stored []*Note
	if err := json.Unmarshal(data, &stored); err != nil {
		return err
	}

	notes := NewNotes()
	for i, note := range stored {
		if note == nil {
			continue
		}
		if _, err := notes.Add(note.Title, note.Text, strings.Join(note.Tags, ",")); err != nil {
			return fmt.Errorf("invalid stored note %d: %w", i+1, err)
		}
	}

	*ns = *notes
	return nil
}
