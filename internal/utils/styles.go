package utils

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Palette holds the Catppuccin Mocha colours used by the REPL
type Palette struct {
	Red      string
	Peach    string
	Green    string
	Blue     string
	Lavender string
	Text     string
	Subtext0 string
	Overlay1 string
	Surface1 string
}

var Colours = Palette{
	Red:      "#f38ba8",
	Peach:    "#fab387",
	Green:    "#a6e3a1",
	Blue:     "#89b4fa",
	Lavender: "#b4befe",
	Text:     "#cdd6f4",
	Subtext0: "#a6adc8",
	Overlay1: "#7f849c",
	Surface1: "#45475a",
}

var (
	PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Colours.Blue)).Bold(true)
	InputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(Colours.Text))
	OutputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Colours.Green))
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(Colours.Red))
	HintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Colours.Overlay1)).Italic(true)
	TitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(Colours.Lavender)).Bold(true)

	tableHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Colours.Peach)).Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Colours.Text)).Padding(0, 1)
	tableFirstStyle  = tableCellStyle.Foreground(lipgloss.Color(Colours.Blue))
)

// RenderTable draws rows in a rounded border table with a highlighted header
// and first column.
func RenderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(Colours.Surface1))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case col == 0:
				return tableFirstStyle
			default:
				return tableCellStyle
			}
		})
	return t.String()
}

// Render styles a command result for display.
func Render(output string, failed bool) string {
	if failed {
		return ErrorStyle.Render(output)
	}
	return OutputStyle.Render(output)
}
