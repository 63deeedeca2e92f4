// Package table presents a slice of arbitrary records as a sortable,
// optionally paginated grid. The presenter never interprets records beyond
// the field selectors of its columns.
package table

import (
	"fmt"
	"slices"
	"strings"
)

// Direction is the order of the active sort.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Indicator returns the arrow shown next to the sorted column header.
func (d Direction) Indicator() string {
	if d == Descending {
		return "↓"
	}
	return "↑"
}

// SortState is the single active sort column and its direction.
type SortState struct {
	Key       string
	Direction Direction
}

// Column describes how one field of T maps to a displayed column.
type Column[T any] struct {
	// Key identifies the column and the record field it reads.
	Key    string
	Header string
	// Value selects the field from a record.
	Value func(T) any
	// Render overrides the displayed text. Sorting still uses Value.
	Render   func(T) string
	Sortable bool
	// Less replaces the textual comparison for this column.
	Less func(a, b T) bool
}

// KeyFunc returns a value that uniquely identifies a record within a render pass.
type KeyFunc[T any] func(T) string

// HeaderCell is one rendered column header.
type HeaderCell struct {
	Key       string
	Title     string
	Sortable  bool
	Indicator string
}

// Label returns the title followed by the sort indicator, if any.
func (h HeaderCell) Label() string {
	if h.Indicator == "" {
		return h.Title
	}
	return h.Title + " " + h.Indicator
}

// Row is one rendered record.
type Row struct {
	Key   string
	Cells []string
}

// View is the output of a render pass.
type View struct {
	Headers []HeaderCell
	Rows    []Row
	// Pager is nil when pagination was not supplied or all items fit on one page.
	Pager *Pager
}

// Presenter holds the column layout and the sort state of one table instance.
type Presenter[T any] struct {
	columns []Column[T]
	key     KeyFunc[T]
	sort    *SortState
}

// Option configures a Presenter during New.
type Option[T any] func(*Presenter[T]) error

// WithSort starts the presenter sorted on key in dir.
func WithSort[T any](key string, dir Direction) Option[T] {
	return func(p *Presenter[T]) error {
		col, ok := p.column(key)
		if !ok {
			return ValidationError{Reason: fmt.Sprintf("unknown column %q", key)}
		}
		if !col.Sortable {
			return ValidationError{Reason: fmt.Sprintf("column %q is not sortable", key)}
		}
		p.sort = &SortState{Key: key, Direction: dir}
		return nil
	}
}

// New validates the column layout and returns a Presenter. Without
// WithSort no sort is active.
func New[T any](columns []Column[T], key KeyFunc[T], opts ...Option[T]) (*Presenter[T], error) {
	if key == nil {
		return nil, ValidationError{Reason: "key extractor is required"}
	}
	if len(columns) == 0 {
		return nil, ValidationError{Reason: "at least one column is required"}
	}
	seen := make(map[string]struct{}, len(columns))
	for i, col := range columns {
		if strings.TrimSpace(col.Key) == "" {
			return nil, ValidationError{Reason: fmt.Sprintf("column %d has no key", i)}
		}
		if col.Value == nil {
			return nil, ValidationError{Reason: fmt.Sprintf("column %q has no value selector", col.Key)}
		}
		if _, dup := seen[col.Key]; dup {
			return nil, ValidationError{Reason: fmt.Sprintf("duplicate column key %q", col.Key)}
		}
		seen[col.Key] = struct{}{}
	}
	p := &Presenter[T]{
		columns: append([]Column[T]{}, columns...),
		key:     key,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Columns returns the column layout in display order.
func (p *Presenter[T]) Columns() []Column[T] {
	return append([]Column[T]{}, p.columns...)
}

// Sort returns the active sort state, if any.
func (p *Presenter[T]) Sort() (SortState, bool) {
	if p.sort == nil {
		return SortState{}, false
	}
	return *p.sort, true
}

// ToggleSort activates sorting on key. Re-triggering the active column flips
// its direction; a different column starts ascending. Unknown and
// non-sortable columns are ignored. It reports whether the state changed.
func (p *Presenter[T]) ToggleSort(key string) bool {
	col, ok := p.column(key)
	if !ok || !col.Sortable {
		return false
	}
	if p.sort != nil && p.sort.Key == key {
		if p.sort.Direction == Ascending {
			p.sort.Direction = Descending
		} else {
			p.sort.Direction = Ascending
		}
		return true
	}
	p.sort = &SortState{Key: key, Direction: Ascending}
	return true
}

// ResetSort clears the active sort.
func (p *Presenter[T]) ResetSort() {
	p.sort = nil
}

// Sorted returns a sorted copy of items. Items comparing equal keep their input order.
func (p *Presenter[T]) Sorted(items []T) []T {
	out := append([]T(nil), items...)
	if p.sort == nil {
		return out
	}
	col, ok := p.column(p.sort.Key)
	if !ok {
		return out
	}
	cmp := textualCompare(col)
	if col.Less != nil {
		cmp = lessCompare(col.Less)
	}
	if p.sort.Direction == Descending {
		asc := cmp
		cmp = func(a, b T) int { return -asc(a, b) }
	}
	slices.SortStableFunc(out, cmp)
	return out
}

// Render produces headers and the rows of the current page. items is never
// modified. A nil pagination renders every item.
func (p *Presenter[T]) Render(items []T, pagination *Pagination) (View, error) {
	if pagination != nil {
		if err := pagination.Validate(); err != nil {
			return View{}, err
		}
	}

	view := View{Headers: p.headers()}

	sorted := p.Sorted(items)
	display := sorted
	if pagination != nil {
		start, end := pagination.window(len(sorted))
		display = sorted[start:end]
		view.Pager = newPager(*pagination)
	}

	view.Rows = make([]Row, 0, len(display))
	for _, item := range display {
		view.Rows = append(view.Rows, p.row(item))
	}
	return view, nil
}

func (p *Presenter[T]) headers() []HeaderCell {
	out := make([]HeaderCell, 0, len(p.columns))
	for _, col := range p.columns {
		cell := HeaderCell{Key: col.Key, Title: col.Header, Sortable: col.Sortable}
		if col.Sortable && p.sort != nil && p.sort.Key == col.Key {
			cell.Indicator = p.sort.Direction.Indicator()
		}
		out = append(out, cell)
	}
	return out
}

func (p *Presenter[T]) row(item T) Row {
	cells := make([]string, 0, len(p.columns))
	for _, col := range p.columns {
		if col.Render != nil {
			cells = append(cells, col.Render(item))
			continue
		}
		cells = append(cells, textOf(col.Value(item)))
	}
	return Row{Key: p.key(item), Cells: cells}
}

func (p *Presenter[T]) column(key string) (Column[T], bool) {
	for _, col := range p.columns {
		if col.Key == key {
			return col, true
		}
	}
	return Column[T]{}, false
}

// textualCompare orders by the textual form of the selected value, so 10 sorts before 2.
func textualCompare[T any](col Column[T]) func(a, b T) int {
	return func(a, b T) int {
		return strings.Compare(textOf(col.Value(a)), textOf(col.Value(b)))
	}
}

func lessCompare[T any](less func(a, b T) bool) func(a, b T) int {
	return func(a, b T) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		default:
			return 0
		}
	}
}

func textOf(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// ByNumber builds a Less that orders records by a numeric field instead of
// its text. Columns opt in by setting Column.Less.
func ByNumber[T any](field func(T) float64) func(a, b T) bool {
	return func(a, b T) bool {
		return field(a) < field(b)
	}
}
