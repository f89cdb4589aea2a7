package commands

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"rhystmorgan/assistant/internal/audit"
	"rhystmorgan/assistant/internal/models"
	"rhystmorgan/assistant/internal/validation"
)

// ErrMissingArgument is returned when a command gets fewer arguments than it needs.
var ErrMissingArgument = errors.New("missing argument")

const invalidCommand = "Invalid command"

// Command is one REPL command. Commands with Prompts receive one argument per
// prompt; the rest receive the positional arguments typed after the name.
type Command struct {
	Name        string
	Example     string
	Description string
	MinArgs     int
	Prompts     []string
	Exit        bool
	Run         func(args []string) (string, error)
}

// Result is what the user sees after a command. Failed marks flattened errors.
type Result struct {
	Output string
	Failed bool
	Exit   bool
}

// Handler maps command names to operations on the address book and notes.
type Handler struct {
	book     *models.AddressBook
	notes    *models.Notes
	journal  *audit.Journal
	now      func() time.Time
	commands map[string]*Command
}

type Option func(*Handler)

// WithJournal records every change in j and enables the history command.
func WithJournal(j *audit.Journal) Option {
	return func(h *Handler) { h.journal = j }
}

// WithClock replaces time.Now for the birthdays command.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

func NewHandler(book *models.AddressBook, notes *models.Notes, opts ...Option) *Handler {
	h := &Handler{
		book:     book,
		notes:    notes,
		now:      time.Now,
		commands: make(map[string]*Command),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.registerGeneral()
	h.registerContacts()
	h.registerNotes()
	return h
}

func (h *Handler) register(cmd *Command) {
	h.commands[cmd.Name] = cmd
}

func (h *Handler) Lookup(name string) (*Command, bool) {
	cmd, ok := h.commands[strings.ToLower(name)]
	return cmd, ok
}

// Commands returns the registered commands ordered by name.
func (h *Handler) Commands() []*Command {
	cmds := make([]*Command, 0, len(h.commands))
	for _, cmd := range h.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// Execute runs a command without interactive prompting. Unanswered prompts
// are treated as empty answers.
func (h *Handler) Execute(name string, args []string) Result {
	cmd, ok := h.Lookup(name)
	if !ok {
		return Result{Output: invalidCommand, Failed: true}
	}
	if len(cmd.Prompts) > 0 {
		answers := prefill(cmd, args)
		for len(answers) < len(cmd.Prompts) {
			answers = append(answers, "")
		}
		return h.run(cmd, answers)
	}
	return h.run(cmd, args)
}

func (h *Handler) run(cmd *Command, args []string) Result {
	if len(args) < cmd.MinArgs {
		return Result{Output: Message(ErrMissingArgument), Failed: true}
	}

	out, err := cmd.Run(args)
	if err != nil {
		log.Debug().Err(err).Str("command", cmd.Name).Msg("command failed")
		return Result{Output: Message(err), Failed: true}
	}
	return Result{Output: out, Exit: cmd.Exit}
}

// prefill answers the leading prompts from inline arguments. The second
// prompt takes the remainder of the line.
func prefill(cmd *Command, args []string) []string {
	answers := make([]string, 0, len(cmd.Prompts))
	if len(args) == 0 {
		return answers
	}
	answers = append(answers, args[0])
	if len(cmd.Prompts) > 1 && len(args) > 1 {
		answers = append(answers, strings.Join(args[1:], " "))
	}
	return answers
}

// Message flattens any command error into the one line shown to the user.
func Message(err error) string {
	var validationErr *validation.ValidationError
	var modelErr *models.Error

	switch {
	case errors.Is(err, ErrMissingArgument):
		return "Enter value"
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &modelErr):
		return modelErr.Message
	default:
		return err.Error()
	}
}

// Parse splits a command line into a lower-cased command name and its arguments.
func Parse(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

func (h *Handler) recordChange(kind audit.Kind, subject string, action audit.Action, details map[string]string) {
	if h.journal == nil {
		return
	}
	if err := h.journal.Record(kind, subject, action, details); err != nil {
		log.Warn().Err(err).Str("subject", subject).Msg("failed to record change")
	}
}
