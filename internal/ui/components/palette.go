package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tutorcast/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// hints must stay in sync with the switch in app/model.go executePalette.
var paletteHints = []string{
	"worksheet:open <id> [page]",
	"page:goto <n>",
	"page:next",
	"page:prev",
	"page:reload",
	"step:seek <n>",
	"guidance:list",
	"tutor:set <name>",
}

// Palette reads one player command at a time. Tab completes a unique command
// name; up and down recall earlier submissions.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	history []string
	recall  int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "page:goto 3, tutor:set amira…"
	ti.CharLimit = 128
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.recall = len(p.history)
	p.input.Reset()
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			line := strings.Join(strings.Fields(p.input.Value()), " ")
			if line != "" && (len(p.history) == 0 || p.history[len(p.history)-1] != line) {
				p.history = append(p.history, line)
			}
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
		case "tab":
			if done, ok := complete(p.input.Value()); ok {
				p.input.SetValue(done)
				p.input.CursorEnd()
			}
			return p, nil
		case "up":
			p.step(-1)
			return p, nil
		case "down":
			p.step(1)
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	lines := []string{theme.Title.Render("Player command"), p.input.View()}
	if hints := matchHints(p.input.Value(), maxHints); len(hints) > 0 {
		lines = append(lines, "")
		for _, h := range hints {
			lines = append(lines, hintStyle.Render("  "+h))
		}
	}
	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(strings.Join(lines, "\n"))
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p *Palette) step(delta int) {
	if len(p.history) == 0 {
		return
	}
	p.recall = max(0, min(len(p.history), p.recall+delta))
	if p.recall == len(p.history) {
		p.input.SetValue("")
		return
	}
	p.input.SetValue(p.history[p.recall])
	p.input.CursorEnd()
}

// complete expands a partial command name when exactly one command starts with it.
func complete(input string) (string, bool) {
	if strings.ContainsRune(strings.TrimSpace(input), ' ') {
		return "", false
	}
	prefix := strings.ToLower(strings.TrimSpace(input))
	found := ""
	for _, h := range paletteHints {
		name, _, _ := strings.Cut(h, " ")
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if found != "" {
			return "", false
		}
		found = name
	}
	if found == "" {
		return "", false
	}
	return found + " ", true
}

const maxHints = 6

// matchHints returns hints whose command name starts with the typed command,
// or every hint containing the input when no command name matches.
func matchHints(input string, limit int) []string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return paletteHints[:min(limit, len(paletteHints))]
	}
	name := strings.Fields(input)[0]
	var out []string
	for _, h := range paletteHints {
		if strings.HasPrefix(h, name) {
			out = append(out, h)
		}
	}
	if len(out) == 0 {
		for _, h := range paletteHints {
			if strings.Contains(h, input) {
				out = append(out, h)
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
