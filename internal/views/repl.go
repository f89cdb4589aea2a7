package views

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rhystmorgan/assistant/internal/commands"
	"rhystmorgan/assistant/internal/utils"
)

const welcome = "Welcome to the assistant bot!"

// REPLModel is the interactive front end. Each submitted line is fed to the
// session and its result is printed above the input line.
type REPLModel struct {
	session *commands.Session
	input   textinput.Model

	// Exited is set once the user leaves through exit/close or end of input.
	Exited bool
}

func NewREPLModel(session *commands.Session) REPLModel {
	input := textinput.New()
	input.Prompt = session.Prompt()
	input.PromptStyle = utils.PromptStyle
	input.TextStyle = utils.InputStyle
	input.Placeholder = "help"
	input.PlaceholderStyle = utils.HintStyle
	input.Focus()

	return REPLModel{
		session: session,
		input:   input,
	}
}

func (m REPLModel) Init() tea.Cmd {
	return tea.Sequence(tea.Println(utils.TitleStyle.Render(welcome)), textinput.Blink)
}

func (m REPLModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - len(m.input.Prompt) - 1
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.Exited = true
			return m, tea.Quit
		case tea.KeyEsc:
			if m.session.Pending() {
				m.session.Cancel()
				m.resetInput()
				return m, tea.Println(utils.HintStyle.Render("Cancelled"))
			}
			return m, nil
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m REPLModel) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	echo := utils.PromptStyle.Render(m.input.Prompt) + utils.InputStyle.Render(line)

	result := m.session.Feed(line)
	m.resetInput()

	cmds := []tea.Cmd{tea.Println(echo)}
	if result.Output != "" {
		cmds = append(cmds, tea.Println(utils.Render(result.Output, result.Failed)))
	}
	if result.Exit {
		m.Exited = true
		cmds = append(cmds, tea.Quit)
	}
	return m, tea.Sequence(cmds...)
}

func (m *REPLModel) resetInput() {
	m.input.Reset()
	m.input.Prompt = m.session.Prompt()
	if m.session.Pending() {
		m.input.Placeholder = ""
	} else {
		m.input.Placeholder = "help"
	}
}

func (m REPLModel) View() string {
	return m.input.View() + "\n" + utils.HintStyle.Render("esc cancels a prompt, ctrl+c saves and quits")
}

// RunInteractive runs the bubbletea REPL until the user exits.
func RunInteractive(session *commands.Session, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(NewREPLModel(session), opts...).Run()
	return err
}
