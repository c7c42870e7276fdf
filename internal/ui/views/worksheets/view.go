package worksheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	worksheetdto "tutorcast/internal/modules/worksheet/dto"
	"tutorcast/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	ListWorksheets(ctx context.Context) ([]string, error)
	LoadPage(ctx context.Context, input worksheetdto.LoadPageInput) (worksheetdto.PageOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ListLoadedMsg struct {
	IDs []string
	Err error
}

// PreviewLoadedMsg carries page 1 of one worksheet.
type PreviewLoadedMsg struct {
	WorksheetID string
	Page        worksheetdto.PageOutput
	Err         error
}

// ─── list item ───────────────────────────────────────────────────────────────

type worksheetItem struct {
	id      string
	summary string
}

func (i worksheetItem) Title() string { return i.id }
func (i worksheetItem) Description() string {
	if i.summary == "" {
		return "…"
	}
	return i.summary
}
func (i worksheetItem) FilterValue() string { return i.id }

// ─── model ───────────────────────────────────────────────────────────────────

// Model browses worksheets and previews the units of their first page.
// Previews are cached per worksheet for the life of the program.
type Model struct {
	port    Port
	list    list.Model
	pages   map[string]worksheetdto.PageOutput
	shown   string
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Worksheets"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		pages:   map[string]worksheetdto.PageOutput{},
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadListCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case ListLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Worksheets: " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.IDs))
		for i, id := range msg.IDs {
			items[i] = worksheetItem{id: id}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.IDs) > 0 {
			cmds = append(cmds, m.showPreview(msg.IDs[0]))
		}

	case PreviewLoadedMsg:
		if msg.Err == nil {
			m.pages[msg.WorksheetID] = msg.Page
			m.describe(msg.WorksheetID, summarize(msg.Page))
		}
		if msg.WorksheetID != m.shown {
			return m, nil
		}
		if msg.Err != nil {
			m.preview.SetContent(theme.Hot.Render(msg.Err.Error()))
		} else {
			m.preview.SetContent(m.renderPreview(msg.Page))
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(worksheetItem); ok {
				cmds = append(cmds, m.showPreview(item.id))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading worksheets…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m Model) SelectedWorksheetID() (string, bool) {
	if item, ok := m.list.SelectedItem().(worksheetItem); ok {
		return item.id, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is open.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

// showPreview renders a cached page or starts loading it.
func (m *Model) showPreview(id string) tea.Cmd {
	m.shown = id
	if page, ok := m.pages[id]; ok {
		m.preview.SetContent(m.renderPreview(page))
		return nil
	}
	m.preview.SetContent(theme.Muted.Render("loading " + id + "…"))
	return m.loadPreviewCmd(id)
}

func (m *Model) describe(id, summary string) {
	for i, it := range m.list.Items() {
		if item, ok := it.(worksheetItem); ok && item.id == id {
			item.summary = summary
			m.list.SetItem(i, item)
			return
		}
	}
}

func summarize(p worksheetdto.PageOutput) string {
	if p.Mode == "" {
		return "no content"
	}
	clickable := 0
	for _, u := range p.Units {
		if u.Clickable {
			clickable++
		}
	}
	s := fmt.Sprintf("%s · %d/%d narrated", p.Mode, clickable, len(p.Units))
	if p.DRMProtected {
		s += " · protected"
	}
	return s
}

func (m Model) renderPreview(p worksheetdto.PageOutput) string {
	if p.Mode == "" {
		return theme.Muted.Render("No content on page 1")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(p.WorksheetID) + "\n\n")
	sb.WriteString(theme.Muted.Render("mode:   ") + p.Mode + "\n")
	sb.WriteString(fmt.Sprintf("%s%d\n", theme.Muted.Render("page:   "), p.Page))
	if p.DRMProtected {
		sb.WriteString(theme.Muted.Render("drm:    ") + theme.Locked.Render("protected") + "\n")
	}
	sb.WriteString(fmt.Sprintf("%s%d\n\n", theme.Muted.Render("units:  "), len(p.Units)))
	for _, u := range p.Units {
		line := fmt.Sprintf("• %s (%d)", u.Title, len(u.Paragraphs))
		if u.Clickable {
			sb.WriteString(line + "\n")
		} else {
			sb.WriteString(theme.Inert.Render(line) + "\n")
		}
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: open in Player"))
	return sb.String()
}

func (m Model) loadListCmd() tea.Cmd {
	return func() tea.Msg {
		ids, err := m.port.ListWorksheets(context.Background())
		return ListLoadedMsg{IDs: ids, Err: err}
	}
}

func (m Model) loadPreviewCmd(id string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		page, err := port.LoadPage(context.Background(), worksheetdto.LoadPageInput{WorksheetID: id, Page: 1})
		return PreviewLoadedMsg{WorksheetID: id, Page: page, Err: err}
	}
}
