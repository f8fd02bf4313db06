package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ganttline/internal/cli/formatter"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/service"
	"github.com/alexanderramin/ganttline/internal/timeline"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newViewCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse a project's chart interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			if !app.interactive() {
				return fmt.Errorf("view needs a terminal; use 'ganttline chart' instead")
			}
			_, err = tea.NewProgram(newGanttView(ctx, app, p), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project short ID or UUID")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

type ganttKeyMap struct {
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Earlier  key.Binding
	Later    key.Binding
	Middle   key.Binding
	Reset    key.Binding
	Warnings key.Binding
	Reload   key.Binding
	Quit     key.Binding
}

func defaultGanttKeys() ganttKeyMap {
	return ganttKeyMap{
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Earlier:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "earlier")),
		Later:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "later")),
		Middle:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "middle")),
		Reset:    key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "all")),
		Warnings: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "warnings")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k ganttKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ZoomIn, k.ZoomOut, k.Earlier, k.Later, k.Middle, k.Reset, k.Warnings, k.Reload, k.Quit}
}

// bodyKeyMap scrolls rows vertically. Letter keys stay free for the chart.
func bodyKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
	}
}

// chartLoadedMsg carries one rebuild. full is true when it covers the whole
// computed range and so defines the viewport bounds.
type chartLoadedMsg struct {
	view *service.ChartView
	full bool
	err  error
}

// ganttView is the interactive chart. Every navigation step rebuilds the
// chart for the new window; nothing is cached between rebuilds.
type ganttView struct {
	ctx     context.Context
	app     *App
	project *domain.Project
	keys    ganttKeyMap

	chart        *service.ChartView
	window       *timeline.Viewport
	body         viewport.Model
	showWarnings bool
	loading      bool
	err          error

	width, height int
}

const ganttViewChrome = 3 // title, status and help lines

func newGanttView(ctx context.Context, app *App, p *domain.Project) *ganttView {
	body := viewport.New(formatter.DefaultChartWidth, 20)
	body.KeyMap = bodyKeyMap()
	return &ganttView{
		ctx:     ctx,
		app:     app,
		project: p,
		keys:    defaultGanttKeys(),
		body:    body,
		width:   formatter.DefaultChartWidth,
		loading: true,
	}
}

func (m *ganttView) Init() tea.Cmd {
	return m.loadFull()
}

func (m *ganttView) loadFull() tea.Cmd {
	ctx, app, id := m.ctx, m.app, m.project.ID
	return func() tea.Msg {
		view, err := app.Gantt.GetChart(ctx, id)
		return chartLoadedMsg{view: view, full: true, err: err}
	}
}

func (m *ganttView) loadWindow() tea.Cmd {
	if m.window == nil {
		return nil
	}
	start, end := m.window.Window()
	ctx, app, id := m.ctx, m.app, m.project.ID
	return func() tea.Msg {
		view, err := app.Gantt.GetChartWith(ctx, id, service.ChartRequest{From: &start, To: &end})
		return chartLoadedMsg{view: view, err: err}
	}
}

func (m *ganttView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.body.Width = msg.Width
		m.body.Height = max(1, msg.Height-ganttViewChrome)
		m.refresh()
		return m, nil

	case chartLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.chart = msg.view
		if msg.full {
			return m, m.rebound()
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// rebound resets the viewport to the freshly computed full range, keeping
// the previous window where it still fits.
func (m *ganttView) rebound() tea.Cmd {
	defer m.refresh()
	if !m.chart.Header.HasRange {
		m.window = nil
		return nil
	}
	r := m.chart.Header.Range
	next, err := timeline.NewViewport(r.Start, r.End)
	if err != nil {
		m.err = err
		return nil
	}
	prev := m.window
	m.window = next
	if prev == nil {
		return nil
	}
	fullStart, fullEnd := prev.Full()
	start, end := prev.Window()
	if start.Equal(fullStart) && end.Equal(fullEnd) {
		return nil
	}
	m.window.Apply(start, end)
	return m.navigate()
}

func (m *ganttView) navigate() tea.Cmd {
	m.loading = true
	return m.loadWindow()
}

func (m *ganttView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.loadFull()
	case key.Matches(msg, m.keys.Warnings):
		m.showWarnings = !m.showWarnings
		m.refresh()
		return m, nil
	}

	if m.window != nil {
		before, _ := m.window.Window()
		beforeDays := m.window.WindowDays()
		switch {
		case key.Matches(msg, m.keys.ZoomIn):
			m.window.ZoomIn()
		case key.Matches(msg, m.keys.ZoomOut):
			m.window.ZoomOut()
		case key.Matches(msg, m.keys.Earlier):
			m.window.Scroll(-1)
		case key.Matches(msg, m.keys.Later):
			m.window.Scroll(1)
		case key.Matches(msg, m.keys.Middle):
			m.window.FocusMiddle()
		case key.Matches(msg, m.keys.Reset):
			m.window.Reset()
		default:
			var cmd tea.Cmd
			m.body, cmd = m.body.Update(msg)
			return m, cmd
		}
		after, _ := m.window.Window()
		if after.Equal(before) && m.window.WindowDays() == beforeDays {
			return m, nil
		}
		return m, m.navigate()
	}

	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

func (m *ganttView) refresh() {
	if m.chart == nil {
		return
	}
	content := formatter.FormatGantt(m.chart.Chart, m.chart.Header, m.chart.Bars, m.width)
	if m.showWarnings && len(m.chart.Chart.Warnings) > 0 {
		content += "\n" + formatter.FormatWarnings(m.chart.Chart.Warnings)
	}
	m.body.SetContent(content)
}

func (m *ganttView) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header(m.project.Name) + " " + formatter.Dim("["+m.project.DisplayID()+"]") + "\n")

	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	case m.chart == nil:
		b.WriteString(formatter.Dim("Loading…") + "\n")
	default:
		b.WriteString(m.body.View() + "\n")
	}

	b.WriteString(m.status() + "\n")
	hints := make([]string, 0, len(m.keys.ShortHelp()))
	for _, k := range m.keys.ShortHelp() {
		hints = append(hints, formatter.Dim(k.Help().Key+": "+k.Help().Desc))
	}
	b.WriteString(strings.Join(hints, "  "))
	return b.String()
}

func (m *ganttView) status() string {
	start, end, ok := m.windowBounds()
	if !ok {
		return formatter.Dim("no dated items")
	}
	fullStart, fullEnd := m.window.Full()
	parts := []string{
		fmt.Sprintf("%s → %s", start.Format(domain.DateLayout), end.Format(domain.DateLayout)),
		formatter.Plural(m.window.WindowDays(), "day"),
	}
	if !start.Equal(fullStart) || !end.Equal(fullEnd) {
		parts = append(parts, fmt.Sprintf("of %s → %s", fullStart.Format(domain.DateLayout), fullEnd.Format(domain.DateLayout)))
	}
	if m.loading {
		parts = append(parts, "loading…")
	}
	if m.chart != nil && m.chart.RebuildID != "" {
		parts = append(parts, "rebuild "+m.chart.RebuildID[:8])
	}
	if m.chart != nil && len(m.chart.Chart.Warnings) > 0 {
		parts = append(parts, formatter.StyleYellow.Render(formatter.Plural(len(m.chart.Chart.Warnings), "warning")))
	}
	return formatter.Dim(strings.Join(parts, " · "))
}

// windowBounds reports the visible range. ok is false without dated items.
func (m *ganttView) windowBounds() (start, end time.Time, ok bool) {
	if m.window == nil {
		return time.Time{}, time.Time{}, false
	}
	start, end = m.window.Window()
	return start, end, true
}
