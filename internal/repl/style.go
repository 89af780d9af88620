package repl

import "github.com/charmbracelet/lipgloss"

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// painter renders through lipgloss only when color is on. Plain output is
// passed through untouched so multi-line results keep their layout.
type painter struct {
	color bool
}

func (p painter) render(style lipgloss.Style, s string) string {
	if !p.color || s == "" {
		return s
	}
	return style.Render(s)
}

func (p painter) prompt(s string) string { return p.render(promptStyle, s) }
func (p painter) result(s string) string { return p.render(resultStyle, s) }
func (p painter) error(s string) string  { return p.render(errorStyle, s) }
func (p painter) hint(s string) string   { return p.render(hintStyle, s) }
