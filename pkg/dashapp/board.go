package dashapp

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BrianJOC/agri-console/api"
	"github.com/BrianJOC/agri-console/dashboard"
	"github.com/BrianJOC/agri-console/table"
	"github.com/BrianJOC/agri-console/wizard/onboarding"
)

// panel is the part of table.Model the board needs, independent of record type.
type panel interface {
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetPagination(p *table.Pagination)
}

// section is one titled table on a dashboard. The section owns the current
// page; its table only requests changes.
type section struct {
	title   string
	table   panel
	page    int
	total   int
	loading bool
	err     error
	load    func(ctx context.Context) tea.Msg
}

// sectionPageMsg is a table.PageChangedMsg tagged with the section whose
// table asked for it.
type sectionPageMsg struct {
	index int
	page  int
}

type sectionLoadedMsg struct {
	index int
	total int
	err   error
	apply func()
}

func newSection[T any](title string, columns []table.Column[T], key table.KeyFunc[T], fetch func(context.Context) ([]T, error), height int) (*section, error) {
	presenter, err := table.New(columns, key)
	if err != nil {
		return nil, err
	}
	view := table.NewModel(presenter, height)
	s := &section{title: title, table: view, page: 1}
	s.load = func(ctx context.Context) tea.Msg {
		items, err := fetch(ctx)
		return sectionLoadedMsg{
			total: len(items),
			err:   err,
			apply: func() { view.SetItems(items) },
		}
	}
	return s, nil
}

func (s *section) applyPagination(itemsPerPage int) {
	if s.page < 1 {
		s.page = 1
	}
	s.table.SetPagination(&table.Pagination{
		ItemsPerPage: itemsPerPage,
		TotalItems:   s.total,
		CurrentPage:  s.page,
	})
}

// board is the dashboard screen for one role.
type board struct {
	role         onboarding.Role
	sections     []*section
	active       int
	itemsPerPage int
}

func newBoard(role onboarding.Role, src dashboard.Source, itemsPerPage int) (*board, error) {
	if !role.Valid() {
		return nil, ErrUnknownRole
	}
	height := itemsPerPage + 1

	var sections []*section
	switch role {
	case onboarding.RoleFarmer:
		crops, err := newSection("My Crops", dashboard.CropColumns(), dashboard.CropKey, src.Crops, height)
		if err != nil {
			return nil, err
		}
		market, err := newSection("Marketplace", dashboard.ProductColumns(), dashboard.ProductKey, src.Products, height)
		if err != nil {
			return nil, err
		}
		sections = []*section{crops, market}
	case onboarding.RoleVendor:
		inventory, err := newSection("Inventory", dashboard.ProductColumns(), dashboard.ProductKey, src.Products, height)
		if err != nil {
			return nil, err
		}
		sections = []*section{inventory}
	case onboarding.RoleNGO:
		analytics, err := newSection("Regional Analytics", dashboard.AnalyticsColumns(), dashboard.AnalyticsKey, src.Analytics, height)
		if err != nil {
			return nil, err
		}
		sections = []*section{analytics}
	}

	b := &board{role: role, sections: sections, itemsPerPage: itemsPerPage}
	for _, sec := range b.sections {
		sec.applyPagination(itemsPerPage)
	}
	return b, nil
}

func (b *board) current() *section {
	if len(b.sections) == 0 {
		return nil
	}
	return b.sections[b.active]
}

func (b *board) nextSection() {
	if len(b.sections) == 0 {
		return
	}
	b.active = (b.active + 1) % len(b.sections)
}

// loadCmd fetches every section.
func (b *board) loadCmd(ctx context.Context) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(b.sections))
	for idx := range b.sections {
		cmds = append(cmds, b.reloadCmd(ctx, idx))
	}
	return tea.Batch(cmds...)
}

func (b *board) reloadCmd(ctx context.Context, idx int) tea.Cmd {
	if idx < 0 || idx >= len(b.sections) {
		return nil
	}
	s := b.sections[idx]
	s.loading = true
	load := s.load
	return func() tea.Msg {
		msg := load(ctx)
		loaded, ok := msg.(sectionLoadedMsg)
		if ok {
			loaded.index = idx
			return loaded
		}
		return msg
	}
}

func (b *board) handleLoaded(msg sectionLoadedMsg) error {
	if msg.index < 0 || msg.index >= len(b.sections) {
		return nil
	}
	s := b.sections[msg.index]
	s.loading = false
	s.err = msg.err
	if msg.err != nil {
		return msg.err
	}
	msg.apply()
	s.total = msg.total
	s.page = 1
	s.applyPagination(b.itemsPerPage)
	return nil
}

// updateActive forwards msg to the active section's table. Page requests
// come back as sectionPageMsg so they land on that section even if the
// user switches sections first.
func (b *board) updateActive(msg tea.Msg) tea.Cmd {
	s := b.current()
	if s == nil {
		return nil
	}
	idx := b.active
	cmd := s.table.Update(msg)
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		out := cmd()
		if changed, ok := out.(table.PageChangedMsg); ok {
			return sectionPageMsg{index: idx, page: changed.Page}
		}
		return out
	}
}

func (b *board) handlePageChanged(msg sectionPageMsg) *section {
	if msg.index < 0 || msg.index >= len(b.sections) {
		return nil
	}
	s := b.sections[msg.index]
	s.page = msg.page
	s.applyPagination(b.itemsPerPage)
	return s
}

// recordCount reports the total records loaded across sections.
func (b *board) recordCount() int {
	total := 0
	for _, s := range b.sections {
		total += s.total
	}
	return total
}

var _ panel = (*table.Model[api.Crop])(nil)
