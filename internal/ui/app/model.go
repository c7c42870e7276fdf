package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	playbackdto "tutorcast/internal/modules/playback/dto"
	playbackin "tutorcast/internal/modules/playback/port/in"
	"tutorcast/internal/ui/components"
	"tutorcast/internal/ui/theme"
	playerview "tutorcast/internal/ui/views/player"
	worksheetsview "tutorcast/internal/ui/views/worksheets"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type playbackPort interface {
	Open(ctx context.Context, input playbackdto.OpenInput) (playbackin.Session, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabWorksheets tabID = iota
	tabPlayer
	tabCount
)

var tabLabels = [tabCount]string{"Worksheets", "Player"}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Enter    key.Binding
	Advance  key.Binding
	Seek     key.Binding
	Exit     key.Binding
	Guidance key.Binding
	Page     key.Binding
	Reload   key.Binding
	Dismiss  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open / select")),
		Advance:  key.NewBinding(key.WithKeys("n", " "), key.WithHelp("n", "next step")),
		Seek:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump to step")),
		Exit:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "exit text")),
		Guidance: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "guidance list")),
		Page:     key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "page")),
		Reload:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		Dismiss:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss notice")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Advance, k.Seek},
		{k.Exit, k.Guidance, k.Page, k.Reload},
		{k.Dismiss, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay
// and the command palette; the player owns the open session.
type Model struct {
	playback playbackPort

	sheetsView worksheetsview.Model
	playerView playerview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int

	initialOpen *playbackdto.OpenInput
}

func NewModel(
	worksheets worksheetsview.Port,
	playback playbackPort,
	layout playerview.LayoutPort,
	restBoundary float64,
) Model {
	return Model{
		playback:   playback,
		sheetsView: worksheetsview.New(worksheets),
		playerView: playerview.New(layout, restBoundary),
		activeTab:  tabWorksheets,
		keys:       defaultKeys(),
		help:       help.New(),
		palette:    components.NewPalette(),
		status:     "ready",
	}
}

// Resume starts the program on a worksheet page, skipping the browser.
func (m Model) Resume(worksheetID string, page int) Model {
	m.initialOpen = &playbackdto.OpenInput{WorksheetID: worksheetID, Page: page}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.sheetsView.Init(), m.playerView.Init()}
	if m.initialOpen != nil {
		cmds = append(cmds, m.openCmd(m.initialOpen.WorksheetID, m.initialOpen.Page))
	}
	return tea.Batch(cmds...)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts key input while open.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		cmd := m.propagateSize()
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case playerview.AttachedMsg:
		if msg.Err != nil {
			m.status = "open failed: " + msg.Err.Error()
		} else {
			snap := msg.Session.Snapshot()
			m.status = fmt.Sprintf("playing %s p.%d", snap.WorksheetID, snap.Page)
			m.activeTab = tabPlayer
		}
		var cmd tea.Cmd
		m.playerView, cmd = m.playerView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the list filter while the user is typing.
		if m.activeTab == tabWorksheets && m.sheetsView.Filtering() {
			var cmd tea.Cmd
			m.sheetsView, cmd = m.sheetsView.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			cmd := m.palette.Open()
			return m, cmd
		case "enter":
			if m.activeTab == tabWorksheets {
				if id, ok := m.sheetsView.SelectedWorksheetID(); ok {
					m.status = "opening " + id
					return m, m.openCmd(id, 1)
				}
				return m, nil
			}
		}

		var cmd tea.Cmd
		switch m.activeTab {
		case tabWorksheets:
			m.sheetsView, cmd = m.sheetsView.Update(msg)
		case tabPlayer:
			m.playerView, cmd = m.playerView.Update(msg)
		}
		return m, cmd
	}

	// Async results go to both views; each ignores what is not its own.
	var cmd tea.Cmd
	m.sheetsView, cmd = m.sheetsView.Update(msg)
	cmds = append(cmds, cmd)
	m.playerView, cmd = m.playerView.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabPlayer:
		content = m.playerView.View()
	default:
		content = m.sheetsView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "tutorcast  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.playerView.Attached() {
		snap := m.playerView.Snapshot()
		left = theme.Hot.Render(fmt.Sprintf("● %s p.%d", snap.WorksheetID, snap.Page)) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "worksheet:open":
		if len(parts) < 2 {
			m.status = "usage: worksheet:open <id> [page]"
			return m, nil
		}
		page := 1
		if len(parts) >= 3 {
			p, err := strconv.Atoi(parts[2])
			if err != nil || p < 1 {
				m.status = "invalid page"
				return m, nil
			}
			page = p
		}
		return m, m.openCmd(parts[1], page)
	}

	if !m.playerView.Attached() {
		m.status = "no worksheet open"
		return m, nil
	}
	m.activeTab = tabPlayer

	switch parts[0] {
	case "page:goto":
		if len(parts) < 2 {
			m.status = "usage: page:goto <n>"
			return m, nil
		}
		p, err := strconv.Atoi(parts[1])
		if err != nil || p < 1 {
			m.status = "invalid page"
			return m, nil
		}
		cmd := m.playerView.Goto(p)
		return m, cmd

	case "page:next":
		cmd := m.playerView.Turn(1)
		return m, cmd

	case "page:prev":
		cmd := m.playerView.Turn(-1)
		return m, cmd

	case "page:reload":
		cmd := m.playerView.Reload()
		return m, cmd

	case "step:seek":
		if len(parts) < 2 {
			m.status = "usage: step:seek <n>"
			return m, nil
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil || n < 1 {
			m.status = "invalid step"
			return m, nil
		}
		cmd := m.playerView.Seek(n - 1)
		return m, cmd

	case "guidance:list":
		cmd := m.playerView.GuidanceList()
		return m, cmd

	case "tutor:set":
		if len(parts) < 2 {
			m.status = "usage: tutor:set <name>"
			return m, nil
		}
		m.status = "tutor: " + parts[1]
		cmd := m.playerView.SetTutor(parts[1])
		return m, cmd

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() tea.Cmd {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	var c1, c2 tea.Cmd
	m.sheetsView, c1 = m.sheetsView.Update(sz)
	m.playerView, c2 = m.playerView.Update(sz)
	return tea.Batch(c1, c2)
}

func (m Model) openCmd(worksheetID string, page int) tea.Cmd {
	playback := m.playback
	return func() tea.Msg {
		session, err := playback.Open(context.Background(), playbackdto.OpenInput{WorksheetID: worksheetID, Page: page})
		if err != nil {
			return playerview.AttachedMsg{Err: err}
		}
		return playerview.AttachedMsg{Session: session}
	}
}
