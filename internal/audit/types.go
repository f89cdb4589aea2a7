package audit

import (
	"time"
)

// Action is the kind of change recorded in the journal.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Kind names what the journal entry is about.
type Kind string

const (
	KindContact Kind = "contact"
	KindNote    Kind = "note"
)

// Entry is a single journal line
type Entry struct {
	ID        string            `json:"id"`
	Kind      Kind              `json:"kind"`
	Subject   string            `json:"subject"`
	Action    Action            `json:"action"`
	Timestamp time.Time         `json:"timestamp"`
	Details   map[string]string `json:"details,omitempty"`
}
