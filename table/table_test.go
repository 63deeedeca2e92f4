package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    string
	Name  string
	Group string
	Count int
}

func testColumns() []Column[record] {
	return []Column[record]{
		{Key: "name", Header: "Name", Value: func(r record) any { return r.Name }, Sortable: true},
		{Key: "group", Header: "Group", Value: func(r record) any { return r.Group }, Sortable: true},
		{Key: "count", Header: "Count", Value: func(r record) any { return r.Count }, Sortable: true},
		{Key: "note", Header: "Note", Value: func(r record) any { return nil }},
	}
}

func recordKey(r record) string { return r.ID }

func newTestPresenter(t *testing.T) *Presenter[record] {
	t.Helper()
	p, err := New(testColumns(), recordKey)
	require.NoError(t, err)
	return p
}

func keys(v View) []string {
	out := make([]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		out = append(out, r.Key)
	}
	return out
}

func TestNewValidatesColumns(t *testing.T) {
	t.Parallel()

	_, err := New(testColumns(), nil)
	require.IsType(t, ValidationError{}, err)

	_, err = New([]Column[record]{}, recordKey)
	require.IsType(t, ValidationError{}, err)

	_, err = New([]Column[record]{{Key: "name"}}, recordKey)
	require.IsType(t, ValidationError{}, err)

	dup := append(testColumns(), Column[record]{Key: "name", Value: func(r record) any { return r.Name }})
	_, err = New(dup, recordKey)
	require.ErrorContains(t, err, "duplicate")
}

func TestNewWithInitialSort(t *testing.T) {
	t.Parallel()

	p, err := New(testColumns(), recordKey, WithSort[record]("group", Descending))
	require.NoError(t, err)
	state, ok := p.Sort()
	require.True(t, ok)
	require.Equal(t, SortState{Key: "group", Direction: Descending}, state)

	p.ToggleSort("group")
	state, _ = p.Sort()
	require.Equal(t, Ascending, state.Direction)

	_, err = New(testColumns(), recordKey, WithSort[record]("note", Ascending))
	require.ErrorContains(t, err, `column "note" is not sortable`)

	_, err = New(testColumns(), recordKey, WithSort[record]("missing", Ascending))
	require.IsType(t, ValidationError{}, err)
}

func TestToggleSortCycle(t *testing.T) {
	t.Parallel()

	items := []record{{ID: "1", Name: "cherry"}, {ID: "2", Name: "apple"}, {ID: "3", Name: "banana", Group: "b"}}
	p := newTestPresenter(t)

	_, active := p.Sort()
	require.False(t, active)

	require.True(t, p.ToggleSort("name"))
	view, err := p.Render(items, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"2", "3", "1"}, keys(view))
	require.Equal(t, "↑", view.Headers[0].Indicator)
	require.Empty(t, view.Headers[1].Indicator)

	require.True(t, p.ToggleSort("name"))
	view, err = p.Render(items, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"1", "3", "2"}, keys(view))
	require.Equal(t, "Name ↓", view.Headers[0].Label())

	require.True(t, p.ToggleSort("group"))
	state, active := p.Sort()
	require.True(t, active)
	require.Equal(t, SortState{Key: "group", Direction: Ascending}, state)

	p.ResetSort()
	_, active = p.Sort()
	require.False(t, active)
}

func TestToggleSortIgnoresUnsortableAndUnknown(t *testing.T) {
	t.Parallel()

	p := newTestPresenter(t)
	require.False(t, p.ToggleSort("note"))
	require.False(t, p.ToggleSort("missing"))
	_, active := p.Sort()
	require.False(t, active)
}

func TestSortIsStable(t *testing.T) {
	t.Parallel()

	items := []record{
		{ID: "a", Group: "x"},
		{ID: "b", Group: "y"},
		{ID: "c", Group: "x"},
		{ID: "d", Group: "y"},
		{ID: "e", Group: "x"},
	}
	p := newTestPresenter(t)
	p.ToggleSort("group")
	view, err := p.Render(items, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "c", "e", "b", "d"}, keys(view))

	p.ToggleSort("group")
	view, err = p.Render(items, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "d", "a", "c", "e"}, keys(view))
}

func TestTextualSortOrdersNumbersAsText(t *testing.T) {
	t.Parallel()

	items := []record{{ID: "two", Count: 2}, {ID: "ten", Count: 10}, {ID: "one", Count: 1}}
	p := newTestPresenter(t)
	p.ToggleSort("count")
	view, err := p.Render(items, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"one", "ten", "two"}, keys(view))

	cols := testColumns()
	cols[2].Less = ByNumber(func(r record) float64 { return float64(r.Count) })
	numeric, err := New(cols, recordKey)
	require.NoError(t, err)
	numeric.ToggleSort("count")
	view, err = numeric.Render(items, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two", "ten"}, keys(view))
}

func TestPaginationSlicesSortedItems(t *testing.T) {
	t.Parallel()

	items := []record{{ID: "E", Name: "E"}, {ID: "A", Name: "A"}, {ID: "D", Name: "D"}, {ID: "B", Name: "B"}, {ID: "C", Name: "C"}}
	p := newTestPresenter(t)
	p.ToggleSort("name")

	view, err := p.Render(items, &Pagination{ItemsPerPage: 2, TotalItems: 5, CurrentPage: 2})
	require.NoError(t, err)
	require.Equal(t, []string{"C", "D"}, keys(view))

	want := &Pager{From: 3, To: 4, Total: 5, Page: 2, Pages: 3, PrevEnabled: true, NextEnabled: true}
	if diff := cmp.Diff(want, view.Pager); diff != "" {
		t.Fatalf("pager mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, "Showing 3 to 4 of 5 results", view.Pager.Summary())

	view, err = p.Render(items, &Pagination{ItemsPerPage: 2, TotalItems: 5, CurrentPage: 3})
	require.NoError(t, err)
	require.Equal(t, []string{"E"}, keys(view))
	require.Equal(t, 5, view.Pager.To)

	view, err = p.Render(items, &Pagination{ItemsPerPage: 2, TotalItems: 5, CurrentPage: 9})
	require.NoError(t, err)
	require.Empty(t, view.Rows)
	require.Equal(t, "Showing 0 to 0 of 5 results", view.Pager.Summary())
	require.False(t, view.Pager.NextEnabled)

	view, err = p.Render(items, &Pagination{ItemsPerPage: 2, TotalItems: 5, CurrentPage: 0})
	require.NoError(t, err)
	require.Empty(t, view.Rows)
	require.Equal(t, "Showing 0 to 0 of 5 results", view.Pager.Summary())
}

func TestPaginationBoundaryControls(t *testing.T) {
	t.Parallel()

	var requested []int
	pg := Pagination{ItemsPerPage: 2, TotalItems: 5, CurrentPage: 1, OnPageChange: func(page int) {
		requested = append(requested, page)
	}}
	require.Equal(t, 3, pg.PageCount())
	require.False(t, pg.HasPrevious())
	require.False(t, pg.Previous())
	require.True(t, pg.Next())

	pg.CurrentPage = 3
	require.False(t, pg.HasNext())
	require.False(t, pg.Next())
	require.True(t, pg.Previous())

	require.Equal(t, []int{2, 2}, requested)
	require.Equal(t, 3, pg.CurrentPage)
}

func TestPagerHiddenWhenEverythingFits(t *testing.T) {
	t.Parallel()

	items := []record{{ID: "1"}, {ID: "2"}}
	view, err := newTestPresenter(t).Render(items, &Pagination{ItemsPerPage: 2, TotalItems: 2, CurrentPage: 1})
	require.NoError(t, err)
	require.Nil(t, view.Pager)
	require.Len(t, view.Rows, 2)
}

func TestRenderRejectsInvalidPagination(t *testing.T) {
	t.Parallel()

	p := newTestPresenter(t)
	_, err := p.Render(nil, &Pagination{ItemsPerPage: 0, TotalItems: 3, CurrentPage: 1})
	var cfgErr InvalidConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "itemsPerPage", cfgErr.Field)

	_, err = p.Render(nil, &Pagination{ItemsPerPage: 2, TotalItems: -1, CurrentPage: 1})
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "totalItems", cfgErr.Field)
}

func TestRenderIsIdempotentAndDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	items := []record{{ID: "2", Name: "b", Count: 3}, {ID: "1", Name: "a", Count: 7}}
	original := append([]record(nil), items...)
	p := newTestPresenter(t)
	p.ToggleSort("name")

	first, err := p.Render(items, nil)
	require.NoError(t, err)
	second, err := p.Render(items, nil)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("re-render changed output (-first +second):\n%s", diff)
	}
	require.Equal(t, original, items)
	require.Equal(t, []string{"a", "", "7", ""}, first.Rows[0].Cells)
}

func TestRenderEmptyItems(t *testing.T) {
	t.Parallel()

	view, err := newTestPresenter(t).Render(nil, nil)
	require.NoError(t, err)
	require.Empty(t, view.Rows)
	require.Len(t, view.Headers, 4)
}

func TestRendererOverridesDisplayOnly(t *testing.T) {
	t.Parallel()

	cols := []Column[record]{
		{Key: "name", Header: "Name", Value: func(r record) any { return r.Name }, Render: func(r record) string { return "<" + r.Name + ">" }, Sortable: true},
	}
	p, err := New(cols, recordKey)
	require.NoError(t, err)
	p.ToggleSort("name")
	view, err := p.Render([]record{{ID: "2", Name: "b"}, {ID: "1", Name: "a"}}, nil)
	require.NoError(t, err)
	require.Equal(t, []Row{{Key: "1", Cells: []string{"<a>"}}, {Key: "2", Cells: []string{"<b>"}}}, view.Rows)
}

func TestViewText(t *testing.T) {
	t.Parallel()

	items := []record{{ID: "1", Name: "alpha", Count: 1}, {ID: "2", Name: "beta", Count: 2}, {ID: "3", Name: "gamma", Count: 3}}
	view, err := newTestPresenter(t).Render(items, &Pagination{ItemsPerPage: 2, TotalItems: 3, CurrentPage: 1})
	require.NoError(t, err)

	text := view.Text()
	require.Contains(t, text, "Name")
	require.Contains(t, text, "alpha")
	require.NotContains(t, text, "gamma")
	require.Contains(t, text, "Showing 1 to 2 of 3 results")
}
