package player

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	drmdto "tutorcast/internal/modules/drm/dto"
	"tutorcast/internal/modules/playback/dto"
	"tutorcast/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

// Session is the slice of a playback session this view drives.
type Session interface {
	Snapshot() dto.SessionOutput
	Mount(ctx context.Context, worksheetID string, page int, handoff *dto.HandoffInput) (dto.SessionOutput, error)
	Reload(ctx context.Context) (dto.SessionOutput, error)
	Navigate(ctx context.Context, delta int) (dto.SessionOutput, error)
	Select(ctx context.Context, unitID string, fromList bool) (dto.SessionOutput, error)
	Advance(ctx context.Context) dto.SessionOutput
	SeekStep(ctx context.Context, step int) (dto.SessionOutput, error)
	Exit(ctx context.Context) dto.SessionOutput
	OpenGuidanceList(ctx context.Context) dto.SessionOutput
	VideoTick(videoTime float64) dto.VideoTickOutput
	SetTutor(ctx context.Context, tutor string) (dto.SessionOutput, error)
	Subscribe(fn func(dto.SessionOutput)) func()
	Close(ctx context.Context) error
}

type LayoutPort interface {
	Layout(ctx context.Context, input drmdto.LayoutInput) (drmdto.LayoutOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// AttachedMsg hands a freshly opened session to the player.
type AttachedMsg struct {
	Session Session
	Err     error
}

type updatedMsg struct{ ch chan struct{} }

type actionMsg struct {
	out dto.SessionOutput
	err error
}

type layoutMsg struct {
	key string
	out drmdto.LayoutOutput
	err error
}

type clockTickMsg struct{}

const (
	clockStep = 200 * time.Millisecond
	// Approximate terminal cell size used to turn the pane into a container in points.
	cellWidth  = 8.0
	cellHeight = 16.0
)

// ─── list item ───────────────────────────────────────────────────────────────

type unitItem struct {
	unit   dto.UnitOutput
	active bool
}

func (i unitItem) Title() string {
	title := i.unit.Title
	if title == "" {
		title = i.unit.ID
	}
	if i.active {
		return "▶ " + title
	}
	return title
}

func (i unitItem) Description() string {
	if !i.unit.Clickable {
		return "no narration"
	}
	return fmt.Sprintf("%s · %d steps", i.unit.Kind, len(i.unit.Paragraphs))
}

func (i unitItem) FilterValue() string { return i.unit.Title }

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders one playback session: the page's units, the revealed text,
// the tutor video clock and the protected-page summary.
type Model struct {
	layoutPort LayoutPort

	session     Session
	unsubscribe func()
	updates     chan struct{}
	out         dto.SessionOutput

	layout    drmdto.LayoutOutput
	layoutKey string

	units   list.Model
	text    viewport.Model
	spinner spinner.Model
	clock   progress.Model

	rest      float64
	videoTime float64
	notice    string
	width     int
	height    int
}

func New(layoutPort LayoutPort, restBoundary float64) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Units"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	if restBoundary <= 0 {
		restBoundary = 10
	}
	return Model{
		layoutPort: layoutPort,
		units:      l,
		text:       vp,
		spinner:    sp,
		clock:      progress.New(progress.WithSolidFill(string(theme.Sapphire)), progress.WithoutPercentage()),
		rest:       restBoundary,
	}
}

func (m Model) Init() tea.Cmd { return clockTick() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.text.SetContent(m.renderText())
		cmds = append(cmds, m.layoutCmd(true))

	case AttachedMsg:
		if msg.Err != nil {
			m.notice = msg.Err.Error()
			return m, nil
		}
		cmd := m.attach(msg.Session)
		return m, cmd

	case updatedMsg:
		if msg.ch != m.updates || m.session == nil {
			return m, nil
		}
		cmds = append(cmds, m.apply(m.session.Snapshot()), waitForUpdate(m.updates))

	case actionMsg:
		cmds = append(cmds, m.settle(msg.out, msg.err))

	case layoutMsg:
		if msg.key != m.layoutKey {
			return m, nil
		}
		if msg.err != nil {
			m.layout = drmdto.LayoutOutput{}
			m.notice = "drm layout: " + msg.err.Error()
		} else {
			m.layout = msg.out
		}

	case clockTickMsg:
		m.advanceClock()
		return m, clockTick()

	case spinner.TickMsg:
		if m.out.Media == "probing" {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var vCmd tea.Cmd
	m.text, vCmd = m.text.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.session == nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("Open a worksheet from the Worksheets tab (enter)"))
	}
	sections := []string{m.renderHeader()}
	if m.notice != "" {
		sections = append(sections, theme.Notice.Render(m.notice)+theme.Muted.Render("  x: dismiss"))
	}

	listW := m.width * 4 / 10
	textW := m.width - listW
	listPane := lipgloss.NewStyle().Width(listW).Height(m.bodyHeight()).Render(m.units.View())
	textPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(textW - 2).
		Height(m.bodyHeight() - 2).
		Render(m.text.View())
	sections = append(sections,
		lipgloss.JoinHorizontal(lipgloss.Top, listPane, textPane),
		m.renderTutor(),
		m.renderProtection(),
		m.renderFooter(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Attached reports whether a session is open.
func (m Model) Attached() bool { return m.session != nil }

// Snapshot returns the last rendered session state.
func (m Model) Snapshot() dto.SessionOutput { return m.out }

func (m *Model) SetTutor(tutor string) tea.Cmd {
	return m.do(func(ctx context.Context, s Session) (dto.SessionOutput, error) {
		return s.SetTutor(ctx, tutor)
	})
}

func (m *Model) Goto(page int) tea.Cmd {
	worksheetID := m.out.WorksheetID
	return m.do(func(ctx context.Context, s Session) (dto.SessionOutput, error) {
		return s.Mount(ctx, worksheetID, page, nil)
	})
}

func (m *Model) Turn(delta int) tea.Cmd {
	return m.do(func(ctx context.Context, s Session) (dto.SessionOutput, error) {
		return s.Navigate(ctx, delta)
	})
}

func (m *Model) Seek(step int) tea.Cmd {
	return m.do(func(ctx context.Context, s Session) (dto.SessionOutput, error) {
		return s.SeekStep(ctx, step)
	})
}

func (m *Model) Reload() tea.Cmd {
	return m.do(func(ctx context.Context, s Session) (dto.SessionOutput, error) {
		return s.Reload(ctx)
	})
}

func (m *Model) GuidanceList() tea.Cmd {
	return m.do(func(ctx context.Context, s Session) (dto.SessionOutput, error) {
		return s.OpenGuidanceList(ctx), nil
	})
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}
	var cmd tea.Cmd
	switch k := msg.String(); k {
	case "enter":
		item, ok := m.units.SelectedItem().(unitItem)
		if !ok {
			return m, nil
		}
		fromList := m.out.State.GuidanceView == "list"
		cmd = m.do(func(ctx context.Context, s Session) (dto.SessionOutput, error) {
			return s.Select(ctx, item.unit.ID, fromList)
		})
	case "n", " ":
		cmd = m.do(func(ctx context.Context, s Session) (dto.SessionOutput, error) {
			return s.Advance(ctx), nil
		})
	case "esc":
		cmd = m.do(func(ctx context.Context, s Session) (dto.SessionOutput, error) {
			return s.Exit(ctx), nil
		})
	case "g":
		cmd = m.GuidanceList()
	case "left":
		cmd = m.Turn(-1)
	case "right":
		cmd = m.Turn(1)
	case "ctrl+r":
		cmd = m.Reload()
	case "x":
		m.notice = ""
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		step, _ := strconv.Atoi(k)
		cmd = m.Seek(step - 1)
	case "pgup", "pgdown":
		m.text, cmd = m.text.Update(msg)
	case "up", "down", "k", "j", "home", "end":
		m.units, cmd = m.units.Update(msg)
	}
	return m, cmd
}

func (m *Model) attach(s Session) tea.Cmd {
	closePrev := m.detach()
	updates := make(chan struct{}, 1)
	m.session = s
	m.updates = updates
	m.unsubscribe = s.Subscribe(func(dto.SessionOutput) {
		select {
		case updates <- struct{}{}:
		default:
		}
	})
	m.videoTime = 0
	m.notice = ""
	return tea.Batch(closePrev, m.apply(s.Snapshot()), waitForUpdate(updates))
}

// detach drops the current session; closing it runs off the update loop.
func (m *Model) detach() tea.Cmd {
	if m.session == nil {
		return nil
	}
	m.unsubscribe()
	close(m.updates)
	s := m.session
	m.session, m.unsubscribe, m.updates = nil, nil, nil
	return func() tea.Msg {
		if err := s.Close(context.Background()); err != nil {
			return actionMsg{err: err}
		}
		return nil
	}
}

func (m *Model) apply(out dto.SessionOutput) tea.Cmd {
	wasProbing := m.out.Media == "probing"
	m.out = out

	items := make([]list.Item, len(out.Units))
	for i, u := range out.Units {
		items[i] = unitItem{unit: u, active: u.ID == out.State.ActiveUnitID}
	}
	cmds := []tea.Cmd{m.units.SetItems(items)}
	m.text.SetContent(m.renderText())
	m.text.GotoBottom()

	if out.Media == "probing" && !wasProbing {
		cmds = append(cmds, m.spinner.Tick)
	}
	cmds = append(cmds, m.layoutCmd(false))
	return tea.Batch(cmds...)
}

// advanceClock plays the virtual tutor video forward and applies the
// synchronizer's correction.
func (m *Model) advanceClock() {
	if m.session == nil || m.out.VideoSource == "" {
		m.videoTime = 0
		return
	}
	m.videoTime += clockStep.Seconds()
	if m.videoTime >= 2*m.rest {
		m.videoTime = 0
	}
	if tick := m.session.VideoTick(m.videoTime); tick.Seek {
		m.videoTime = tick.SeekTo
	}
}

// do runs one session transition on the update loop, so transitions happen
// in the order their keys arrived.
func (m *Model) do(fn func(ctx context.Context, s Session) (dto.SessionOutput, error)) tea.Cmd {
	if m.session == nil {
		return nil
	}
	out, err := fn(context.Background(), m.session)
	return m.settle(out, err)
}

func (m *Model) settle(out dto.SessionOutput, err error) tea.Cmd {
	if err != nil {
		m.notice = err.Error()
	}
	if out.WorksheetID == "" {
		return nil
	}
	return m.apply(out)
}

// layoutCmd recomputes the protected-page windows when the page or the pane changed.
func (m *Model) layoutCmd(force bool) tea.Cmd {
	if m.layoutPort == nil || m.session == nil || !m.out.DRMProtected {
		m.layoutKey = ""
		m.layout = drmdto.LayoutOutput{}
		return nil
	}
	key := fmt.Sprintf("%s/%d/%dx%d", m.out.WorksheetID, m.out.Page, m.width, m.height)
	if key == m.layoutKey && !force {
		return nil
	}
	m.layoutKey = key
	input := drmdto.LayoutInput{
		WorksheetID:     m.out.WorksheetID,
		Page:            m.out.Page,
		ContainerWidth:  float64(max(m.width, 1)) * cellWidth,
		ContainerHeight: float64(max(m.bodyHeight(), 1)) * cellHeight,
	}
	port := m.layoutPort
	return func() tea.Msg {
		out, err := port.Layout(context.Background(), input)
		return layoutMsg{key: key, out: out, err: err}
	}
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	textW := m.width - listW
	m.units.SetSize(listW, m.bodyHeight())
	m.text.Width = textW - 4
	m.text.Height = m.bodyHeight() - 4
	m.clock.Width = max(m.width-30, 10)
}

func (m Model) bodyHeight() int {
	// header, tutor strip, protection line, footer
	h := m.height - 4
	if m.notice != "" {
		h--
	}
	return max(h, 3)
}

func (m Model) activeUnit() (dto.UnitOutput, bool) {
	for _, u := range m.out.Units {
		if u.ID == m.out.State.ActiveUnitID {
			return u, true
		}
	}
	return dto.UnitOutput{}, false
}

func (m Model) renderHeader() string {
	o := m.out
	parts := []string{
		theme.Title.Render(o.WorksheetID),
		theme.Muted.Render(fmt.Sprintf("p.%d", o.Page)),
		theme.Muted.Render("[" + o.Mode + "]"),
	}
	if o.DRMProtected {
		parts = append(parts, theme.Locked.Render("protected"))
	}
	switch o.Media {
	case "probing":
		parts = append(parts, m.spinner.View()+theme.Muted.Render(" checking narration"))
	case "available":
		parts = append(parts, theme.Good.Render("● narrated"))
	case "unavailable":
		parts = append(parts, theme.Muted.Render("○ text only"))
	}
	parts = append(parts, theme.Muted.Render("tutor: "+o.Tutor))
	return strings.Join(parts, "  ")
}

func (m Model) renderText() string {
	st := m.out.State
	unit, ok := m.activeUnit()
	if !ok {
		if st.GuidanceView == "list" {
			return theme.Muted.Render("Guidance: pick a unit and press enter")
		}
		if len(m.out.Units) == 0 {
			return theme.Muted.Render("(nothing to narrate on this page)")
		}
		return theme.Muted.Render("Select a unit and press enter to start")
	}

	style := theme.ParagraphLTR
	if unit.Direction == "rtl" {
		style = theme.ParagraphRTL
	}
	w := max(m.text.Width-2, 10)

	var sb strings.Builder
	sb.WriteString(style.Width(w).Inherit(theme.Title).Render(unit.Title) + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("step %d/%d", st.StepIndex+1, len(unit.Paragraphs))) + "\n\n")
	for i, p := range st.DisplayedParagraphs {
		line := style.Width(w)
		if i == len(st.DisplayedParagraphs)-1 && m.out.Speaking {
			line = line.Inherit(theme.Speaking)
		}
		sb.WriteString(line.Render(p) + "\n\n")
	}
	if st.GuidanceView == "detail" {
		sb.WriteString(theme.Muted.Render("esc: back to the guidance list"))
	}
	return sb.String()
}

func (m Model) renderTutor() string {
	if m.out.VideoSource == "" {
		return theme.Muted.Render("tutor video off")
	}
	label := theme.Muted.Render("resting ")
	if m.out.Speaking {
		label = theme.Speaking.Render("speaking")
	}
	pct := m.videoTime / (2 * m.rest)
	return fmt.Sprintf("%s %s %5.1fs", label, m.clock.ViewAs(pct), m.videoTime)
}

func (m Model) renderProtection() string {
	if !m.out.DRMProtected {
		return ""
	}
	if m.layout.WorksheetID == "" {
		return theme.Locked.Render("protected page")
	}
	return theme.Locked.Render("protected page") + theme.Muted.Render(fmt.Sprintf(
		"  %d clear windows  scale %.2f", len(m.layout.Windows), m.layout.Scale))
}

func (m Model) renderFooter() string {
	hints := "enter: select  n: next step  1-9: step  esc: exit  ←/→: page"
	if m.out.Mode == "auto" {
		hints += "  g: guidance"
	}
	return theme.Muted.Render(hints)
}

func clockTick() tea.Cmd {
	return tea.Tick(clockStep, func(time.Time) tea.Msg { return clockTickMsg{} })
}

func waitForUpdate(updates chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-updates; !ok {
			return nil
		}
		return updatedMsg{ch: updates}
	}
}
