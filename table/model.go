package table

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	bubbletable "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PageChangedMsg is emitted when the user asks for another page. The owner of
// the Pagination decides whether to apply it.
type PageChangedMsg struct {
	Page int
}

// KeyMap defines the bindings understood by Model.
type KeyMap struct {
	PrevColumn key.Binding
	NextColumn key.Binding
	Sort       key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevColumn: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
		NextColumn: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		PrevPage:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev page")),
		NextPage:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next page")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevColumn, k.NextColumn, k.Sort, k.PrevPage, k.NextPage}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var (
	pagerStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#CBD5F5")).Padding(0, 1)
	pagerDisabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#475569"))
	pagerEnabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")).Bold(true)
	emptyStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")).Padding(0, 1)
	tableErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).Padding(0, 1)
)

// Model is a Bubble Tea component that displays a Presenter's output.
type Model[T any] struct {
	presenter  *Presenter[T]
	items      []T
	pagination *Pagination

	inner    bubbletable.Model
	keys     KeyMap
	focusCol int
	view     View
	err      error
	height   int
}

// NewModel wraps presenter in an interactive component.
func NewModel[T any](presenter *Presenter[T], height int) *Model[T] {
	if height <= 0 {
		height = 10
	}
	styles := bubbletable.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#4C566A")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#E0E7FF")).
		Background(lipgloss.Color("#312E81"))

	m := &Model[T]{
		presenter: presenter,
		keys:      DefaultKeyMap(),
		height:    height,
		inner: bubbletable.New(
			bubbletable.WithFocused(true),
			bubbletable.WithHeight(height),
			bubbletable.WithStyles(styles),
		),
	}
	m.refresh()
	return m
}

// SetItems replaces the records shown.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.refresh()
}

// SetPagination replaces the caller-owned pagination. nil shows all items.
func (m *Model[T]) SetPagination(p *Pagination) {
	if p == nil {
		m.pagination = nil
	} else {
		cp := *p
		m.pagination = &cp
	}
	m.refresh()
}

// Rendered returns the last rendered View.
func (m *Model[T]) Rendered() View {
	return m.view
}

// Err returns the error of the last render, if any.
func (m *Model[T]) Err() error {
	return m.err
}

// Keys returns the active key bindings.
func (m *Model[T]) Keys() KeyMap {
	return m.keys
}

// FocusedColumn returns the key of the column that receives sort requests.
func (m *Model[T]) FocusedColumn() string {
	cols := m.presenter.Columns()
	if len(cols) == 0 {
		return ""
	}
	return cols[m.focusCol].Key
}

// SelectedKey returns the row key under the cursor.
func (m *Model[T]) SelectedKey() (string, bool) {
	idx := m.inner.Cursor()
	if idx < 0 || idx >= len(m.view.Rows) {
		return "", false
	}
	return m.view.Rows[idx].Key, true
}

// Update handles column focus, sorting, paging, and row navigation.
func (m *Model[T]) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.PrevColumn):
			m.moveFocus(-1)
			return nil
		case key.Matches(keyMsg, m.keys.NextColumn):
			m.moveFocus(1)
			return nil
		case key.Matches(keyMsg, m.keys.Sort):
			if m.presenter.ToggleSort(m.FocusedColumn()) {
				m.refresh()
			}
			return nil
		case key.Matches(keyMsg, m.keys.PrevPage):
			return m.requestPage(Pagination.Previous)
		case key.Matches(keyMsg, m.keys.NextPage):
			return m.requestPage(Pagination.Next)
		}
	}
	var cmd tea.Cmd
	m.inner, cmd = m.inner.Update(msg)
	return cmd
}

func (m *Model[T]) requestPage(move func(Pagination) bool) tea.Cmd {
	if m.pagination == nil {
		return nil
	}
	pg := *m.pagination
	requested := 0
	owner := pg.OnPageChange
	pg.OnPageChange = func(page int) {
		requested = page
		if owner != nil {
			owner(page)
		}
	}
	if !move(pg) {
		return nil
	}
	return func() tea.Msg {
		return PageChangedMsg{Page: requested}
	}
}

func (m *Model[T]) moveFocus(delta int) {
	count := len(m.presenter.Columns())
	if count == 0 {
		return
	}
	m.focusCol = (m.focusCol + delta) % count
	if m.focusCol < 0 {
		m.focusCol += count
	}
	m.syncColumns()
}

func (m *Model[T]) refresh() {
	view, err := m.presenter.Render(m.items, m.pagination)
	m.err = err
	if err != nil {
		m.view = View{}
		return
	}
	m.view = view
	m.syncColumns()
	rows := make([]bubbletable.Row, 0, len(view.Rows))
	for _, r := range view.Rows {
		rows = append(rows, bubbletable.Row(r.Cells))
	}
	m.inner.SetRows(rows)
	switch {
	case len(rows) == 0:
	case m.inner.Cursor() < 0:
		m.inner.SetCursor(0)
	case m.inner.Cursor() >= len(rows):
		m.inner.SetCursor(len(rows) - 1)
	}
}

func (m *Model[T]) syncColumns() {
	widths := m.view.Widths()
	cols := make([]bubbletable.Column, 0, len(m.view.Headers))
	for i, h := range m.view.Headers {
		title := h.Label()
		if i == m.focusCol {
			title = "▸" + title
		}
		width := widths[i] + 1
		if w := lipgloss.Width(title); w > width {
			width = w
		}
		cols = append(cols, bubbletable.Column{Title: title, Width: width})
	}
	m.inner.SetColumns(cols)
}

// View renders the grid and, when paginated, the pager line.
func (m *Model[T]) View() string {
	if m.err != nil {
		return tableErrorStyle.Render(m.err.Error())
	}
	sections := []string{m.inner.View()}
	if len(m.view.Rows) == 0 {
		sections = append(sections, emptyStyle.Render("No records"))
	}
	if p := m.view.Pager; p != nil {
		sections = append(sections, renderPager(*p))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderPager(p Pager) string {
	prev := pagerDisabledStyle.Render("[ Previous")
	if p.PrevEnabled {
		prev = pagerEnabledStyle.Render("[ Previous")
	}
	next := pagerDisabledStyle.Render("Next ]")
	if p.NextEnabled {
		next = pagerEnabledStyle.Render("Next ]")
	}
	line := strings.Join([]string{p.Summary(), prev, next}, "   ")
	return pagerStyle.Render(line)
}
