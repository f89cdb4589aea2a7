package commands

import "strings"

const commandPrompt = "Enter a command: "

type pendingCommand struct {
	cmd     *Command
	answers []string
}

// Session feeds REPL input lines to a Handler one at a time, collecting
// prompt answers for commands that ask for them.
type Session struct {
	handler *Handler
	pending *pendingCommand
}

func NewSession(handler *Handler) *Session {
	return &Session{handler: handler}
}

// Prompt is the label to show before reading the next line.
func (s *Session) Prompt() string {
	if s.pending != nil {
		return s.pending.cmd.Prompts[len(s.pending.answers)]
	}
	return commandPrompt
}

// Pending reports whether the session is waiting for a prompt answer.
func (s *Session) Pending() bool {
	return s.pending != nil
}

// Feed consumes one line. The zero Result means there is nothing to show yet.
func (s *Session) Feed(line string) Result {
	if s.pending != nil {
		s.pending.answers = append(s.pending.answers, strings.TrimSpace(line))
		if len(s.pending.answers) < len(s.pending.cmd.Prompts) {
			return Result{}
		}
		pending := s.pending
		s.pending = nil
		return s.handler.run(pending.cmd, pending.answers)
	}

	name, args := Parse(line)
	if name == "" {
		return Result{}
	}

	cmd, ok := s.handler.Lookup(name)
	if !ok {
		return Result{Output: invalidCommand, Failed: true}
	}

	if len(cmd.Prompts) == 0 {
		return s.handler.run(cmd, args)
	}

	answers := prefill(cmd, args)
	if len(answers) < len(cmd.Prompts) {
		s.pending = &pendingCommand{cmd: cmd, answers: answers}
		return Result{}
	}
	return s.handler.run(cmd, answers)
}

// Cancel drops a half-answered command.
func (s *Session) Cancel() {
	s.pending = nil
}
