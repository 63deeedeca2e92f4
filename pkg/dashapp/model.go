package dashapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/BrianJOC/agri-console/dashboard"
	"github.com/BrianJOC/agri-console/table"
	"github.com/BrianJOC/agri-console/wizard"
	"github.com/BrianJOC/agri-console/wizard/onboarding"
)

type screen int

const (
	screenOnboarding screen = iota
	screenDashboard
)

type submissionMsg struct {
	result wizard.Result
	err    error
}

type boardKeyMap struct {
	Section key.Binding
	Reload  key.Binding
	Copy    key.Binding
	Help    key.Binding
	Quit    key.Binding
	table   table.KeyMap
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Section, k.Reload, k.Copy, k.Help, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), k.table.ShortHelp()}
}

func newBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Section: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch table")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy error")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		table:   table.DefaultKeyMap(),
	}
}

type model struct {
	ctx    context.Context
	cfg    Config
	logger *zap.Logger

	screen screen
	form   *onboardingForm
	board  *board

	spinner spinner.Model
	help    help.Model
	keys    boardKeyMap

	helpVisible bool
	statusMsg   string
	lastErr     error

	width  int
	height int
}

func newModel(ctx context.Context, cfg Config) (*model, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.ItemsPerPage <= 0 {
		cfg.ItemsPerPage = defaultItemsPerPage
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &model{
		ctx:       ctx,
		cfg:       cfg,
		logger:    cfg.Logger,
		spinner:   sp,
		help:      help.New(),
		keys:      newBoardKeyMap(),
		statusMsg: "Welcome! Create your account to get started.",
	}

	if cfg.Role != "" {
		b, err := newBoard(cfg.Role, cfg.Source, cfg.ItemsPerPage)
		if err != nil {
			return nil, err
		}
		m.board = b
		m.screen = screenDashboard
		m.statusMsg = fmt.Sprintf("Loading %s dashboard…", roleLabel(cfg.Role))
		return m, nil
	}

	form, err := newOnboardingForm(cfg)
	if err != nil {
		return nil, err
	}
	m.form = form
	m.screen = screenOnboarding
	return m, nil
}

func (m *model) Init() tea.Cmd {
	if m.screen == screenDashboard {
		return tea.Batch(m.board.loadCmd(m.ctx), m.spinner.Tick)
	}
	return m.form.focusCurrent()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		prevWidth := m.width
		prevHeight := m.height
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if (prevWidth > 0 && msg.Width < prevWidth) || (prevHeight > 0 && msg.Height < prevHeight) {
			return m, tea.ClearScreen
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.screen == screenOnboarding {
			return m, m.updateOnboarding(msg)
		}
		return m, m.updateBoard(msg)

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case submissionMsg:
		return m, m.handleSubmission(msg)

	case sectionLoadedMsg:
		if m.board == nil {
			return m, nil
		}
		if err := m.board.handleLoaded(msg); err != nil {
			m.lastErr = err
			m.logger.Warn("dashboard load failed", zap.Int("section", msg.index), zap.Error(err))
			m.setStatusf("Could not load %s: %v", m.board.sections[msg.index].title, err)
			return m, nil
		}
		m.setStatusf("%s dashboard ready • %d records", roleLabel(m.board.role), m.board.recordCount())
		return m, nil

	case sectionPageMsg:
		if m.board != nil {
			if s := m.board.handlePageChanged(msg); s != nil {
				m.setStatusf("%s: page %d", s.title, msg.page)
			}
		}
		return m, nil
	}

	if m.screen == screenOnboarding && m.form != nil {
		return m, m.form.updateInput(msg)
	}
	return m, nil
}

func (m *model) busy() bool {
	if m.screen == screenOnboarding {
		return m.form.submitting
	}
	if m.board == nil {
		return false
	}
	for _, s := range m.board.sections {
		if s.loading {
			return true
		}
	}
	return false
}

func (m *model) updateOnboarding(msg tea.KeyMsg) tea.Cmd {
	f := m.form
	switch msg.String() {
	case "tab", "down":
		return f.moveFocus(1)
	case "shift+tab", "up":
		return f.moveFocus(-1)
	case "enter":
		return m.submit()
	case "esc", "ctrl+b":
		if !f.submitting && f.controller.Retreat() {
			m.setStatusf("Step %d of %d: %s", f.controller.Step(), f.controller.StepCount(), f.controller.Current().Title)
			return f.resetFocus()
		}
		return nil
	case "ctrl+y":
		m.copyLastError()
		return nil
	}

	if f.focusedIsSelect() {
		switch msg.String() {
		case "left", "h", "k":
			f.moveSelection(-1)
		case "right", "l", "j":
			f.moveSelection(1)
		case "?":
			m.helpVisible = !m.helpVisible
		default:
			if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9' {
				f.chooseOption(int(msg.Runes[0] - '1'))
			}
		}
		return nil
	}
	return f.updateInput(msg)
}

// submit implements Enter: advance on intermediate steps, register on the last.
func (m *model) submit() tea.Cmd {
	c := m.form.controller
	if m.form.submitting {
		m.setStatus("Registration already in progress")
		return nil
	}
	if c.Step() < c.StepCount() || !c.ValidateStep(c.Step()).Empty() {
		before := c.Step()
		if _, err := c.SubmitIfFinal(m.ctx); err != nil {
			m.reportSubmitError(err)
			return nil
		}
		if c.Step() != before {
			m.setStatusf("Step %d of %d: %s", c.Step(), c.StepCount(), c.Current().Title)
			return m.form.resetFocus()
		}
		m.setStatus("Please fix the highlighted fields")
		return m.form.focusFirstError()
	}

	m.form.submitting = true
	m.form.notice = ""
	m.setStatus("Submitting registration…")
	ctx := m.ctx
	return tea.Batch(
		func() tea.Msg {
			res, err := c.SubmitIfFinal(ctx)
			return submissionMsg{result: res, err: err}
		},
		m.spinner.Tick,
	)
}

func (m *model) handleSubmission(msg submissionMsg) tea.Cmd {
	c := m.form.controller
	m.form.submitting = false
	if msg.err != nil {
		m.reportSubmitError(msg.err)
		return nil
	}
	if c.Status() != wizard.StatusSubmitted {
		m.setStatus("Please fix the highlighted fields")
		return m.form.focusFirstError()
	}

	role := onboarding.Role(msg.result.Role)
	b, err := newBoard(role, m.cfg.Source, m.cfg.ItemsPerPage)
	if err != nil {
		m.lastErr = err
		m.setStatusf("Registered, but no dashboard for role %q", msg.result.Role)
		return nil
	}
	m.logger.Info("registration complete", zap.String("role", msg.result.Role), zap.String("destination", msg.result.Destination))
	m.board = b
	m.screen = screenDashboard
	m.form.notice = ""
	m.setStatusf("Registration successful! Opening %s dashboard…", roleLabel(role))
	return tea.Batch(b.loadCmd(m.ctx), m.spinner.Tick)
}

func (m *model) reportSubmitError(err error) {
	switch {
	case errors.Is(err, wizard.ErrSubmissionInFlight):
		m.setStatus("Registration already in progress")
		return
	case errors.Is(err, wizard.ErrAlreadySubmitted):
		return
	}
	m.lastErr = err
	m.form.notice = registrationFailedNotice
	m.logger.Warn("registration failed", zap.Error(err))
	m.setStatus(registrationFailedNotice + " (ctrl+y copies the error)")
}

func (m *model) updateBoard(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		return nil
	case key.Matches(msg, m.keys.Section):
		m.board.nextSection()
		if s := m.board.current(); s != nil {
			m.setStatusf("Viewing %s", s.title)
		}
		return nil
	case key.Matches(msg, m.keys.Reload):
		m.setStatus("Reloading…")
		return tea.Batch(m.board.reloadCmd(m.ctx, m.board.active), m.spinner.Tick)
	case key.Matches(msg, m.keys.Copy):
		m.copyLastError()
		return nil
	case msg.Type == tea.KeyEsc:
		m.helpVisible = false
		return nil
	}
	return m.board.updateActive(msg)
}

func (m *model) copyLastError() {
	if m.lastErr == nil {
		m.setStatus("No error to copy")
		return
	}
	if err := clipboard.WriteAll(m.lastErr.Error()); err != nil {
		m.setStatus("Failed to copy error")
		return
	}
	m.setStatus("Error copied to clipboard")
}

func (m *model) setStatus(msg string) {
	m.statusMsg = msg
}

func (m *model) setStatusf(format string, args ...any) {
	m.setStatus(fmt.Sprintf(format, args...))
}

func (m *model) View() string {
	var sections []string
	if m.screen == screenOnboarding {
		sections = []string{
			renderHeader("Create your account", fmt.Sprintf("Step %d of %d", m.form.controller.Step(), m.form.controller.StepCount())),
			m.renderOnboarding(),
		}
		if m.form.notice != "" {
			sections = append(sections, noticeStyle.Render(m.form.notice))
		}
	} else {
		sections = []string{
			renderHeader(fmt.Sprintf("%s Dashboard", roleLabel(m.board.role)), fmt.Sprintf("%d records", m.board.recordCount())),
			m.renderBoard(),
		}
	}

	status := m.statusMsg
	if m.busy() {
		status = m.spinner.View() + " " + status
	}
	sections = append(sections, statusBarStyle.Render(status))

	switch {
	case m.helpVisible:
		sections = append(sections, helpStyle.Render(m.renderHelp()))
	case m.screen == screenOnboarding:
		sections = append(sections, footerStyle.Render("Tab/↑↓ move • Enter next/submit • Esc back • ←/→ choose role • Ctrl+C quit"))
	default:
		sections = append(sections, footerStyle.Render(m.help.View(m.keys)))
	}

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)
	width := m.width
	if width <= 0 {
		width = lipgloss.Width(view)
	}
	height := lipgloss.Height(view)
	if m.height > height {
		height = m.height
	}
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, view)
}

func roleLabel(role onboarding.Role) string {
	if role == onboarding.RoleNGO {
		return "NGO"
	}
	return dashboard.Title(string(role))
}

func renderHeader(title, subtitle string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("Agri Console"), "  ",
		detailTitleStyle.Render(title), "  ",
		subtitleStyle.Render(subtitle),
	)
}

func (m *model) renderOnboarding() string {
	c := m.form.controller
	meta := c.Current()
	errs := c.Errors()

	var b strings.Builder
	b.WriteString(renderProgress(c.Step(), onboarding.Steps()))
	b.WriteString("\n\n")
	b.WriteString(detailTitleStyle.Render(fmt.Sprintf("Step %d: %s", c.Step(), meta.Title)))
	b.WriteString("\n")
	b.WriteString(infoTextStyle.Render(meta.Description))
	b.WriteString("\n")

	for idx, field := range meta.Fields {
		focused := idx == m.form.focus
		label := labelStyle.Render(field.Label)
		if focused {
			label = focusedLabelStyle.Render(field.Label)
		}
		b.WriteString("\n")
		b.WriteString(label)
		b.WriteString("\n")
		if field.Kind == wizard.FieldKindSelect {
			b.WriteString(renderOptions(field, m.form.selectIndex, focused))
		} else {
			ti := m.form.inputs[field.Path]
			b.WriteString(ti.View())
		}
		b.WriteString("\n")
		if msg, bad := errs[field.Path]; bad && msg != "" {
			b.WriteString(errorTextStyle.Render(msg))
			b.WriteString("\n")
		}
	}

	width := m.width
	if width <= 0 {
		width = 80
	}
	return styleForWidth(formPanelStyle, width).Render(strings.TrimRight(b.String(), "\n"))
}

func renderProgress(current int, steps []wizard.Step) string {
	parts := make([]string, 0, len(steps))
	for idx, st := range steps {
		title := st.Metadata().Title
		switch {
		case idx+1 < current:
			parts = append(parts, stepDoneStyle.Render("✔ "+title))
		case idx+1 == current:
			parts = append(parts, stepActiveStyle.Render("● "+title))
		default:
			parts = append(parts, stepPendingStyle.Render("○ "+title))
		}
	}
	return strings.Join(parts, subtitleStyle.Render(" ─ "))
}

func renderOptions(field wizard.FieldDefinition, selected int, focused bool) string {
	lines := make([]string, 0, len(field.Options))
	for idx, opt := range field.Options {
		cursor := " "
		style := infoTextStyle
		if idx == selected {
			cursor = ">"
			style = selectedOptionStyle
			if focused {
				style = style.Copy().Underline(true)
			}
		}
		line := fmt.Sprintf("%s %d. %s", cursor, idx+1, opt.Label)
		if opt.Description != "" {
			line = fmt.Sprintf("%s (%s)", line, opt.Description)
		}
		lines = append(lines, style.Render(line))
	}
	return strings.Join(lines, "\n")
}

func (m *model) renderBoard() string {
	width := m.width
	if width <= 0 {
		width = 100
	}
	tabs := make([]string, 0, len(m.board.sections))
	for idx, s := range m.board.sections {
		if idx == m.board.active {
			tabs = append(tabs, activeTabStyle.Render(s.title))
		} else {
			tabs = append(tabs, tabStyle.Render(s.title))
		}
	}
	s := m.board.current()
	if s == nil {
		return styleForWidth(listPanelStyle, width).Render("No tables for this role")
	}
	body := s.table.View()
	if s.err != nil {
		body = errorTextStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n" + body
	}
	content := lipgloss.JoinVertical(lipgloss.Left, lipgloss.JoinHorizontal(lipgloss.Top, tabs...), body)
	return styleForWidth(listPanelStyle, width).Render(content)
}

func (m *model) renderHelp() string {
	if m.screen == screenOnboarding {
		return strings.Join([]string{
			"Key Bindings:",
			"  Tab / ↑↓     Move between fields",
			"  Enter        Next step / submit",
			"  Esc, Ctrl+B  Previous step",
			"  ←/→, 1-3     Choose role",
			"  Ctrl+Y       Copy last error",
			"  Ctrl+C       Quit",
		}, "\n")
	}
	h := m.help
	h.ShowAll = true
	return h.View(m.keys)
}
