package table

import "fmt"

// Pagination describes the page window a caller wants displayed. The caller
// owns CurrentPage; the presenter only reads it and reports navigation
// requests through OnPageChange.
type Pagination struct {
	ItemsPerPage int
	TotalItems   int
	CurrentPage  int
	OnPageChange func(page int)
}

// Validate rejects settings that cannot be windowed.
func (p Pagination) Validate() error {
	if p.ItemsPerPage <= 0 {
		return InvalidConfigurationError{Field: "itemsPerPage", Value: p.ItemsPerPage}
	}
	if p.TotalItems < 0 {
		return InvalidConfigurationError{Field: "totalItems", Value: p.TotalItems}
	}
	return nil
}

// PageCount returns ceil(TotalItems / ItemsPerPage).
func (p Pagination) PageCount() int {
	if p.ItemsPerPage <= 0 || p.TotalItems <= 0 {
		return 0
	}
	return (p.TotalItems + p.ItemsPerPage - 1) / p.ItemsPerPage
}

// HasPrevious reports whether the Previous control is enabled.
func (p Pagination) HasPrevious() bool {
	return p.CurrentPage > 1
}

// HasNext reports whether the Next control is enabled.
func (p Pagination) HasNext() bool {
	return p.CurrentPage < p.PageCount()
}

// Controls reports whether pagination controls and the summary are shown at all.
func (p Pagination) Controls() bool {
	return p.TotalItems > p.ItemsPerPage
}

// Previous asks the caller to move one page back. It reports whether the
// request was made.
func (p Pagination) Previous() bool {
	if !p.HasPrevious() {
		return false
	}
	if p.OnPageChange != nil {
		p.OnPageChange(p.CurrentPage - 1)
	}
	return true
}

// Next asks the caller to move one page forward. It reports whether the
// request was made.
func (p Pagination) Next() bool {
	if !p.HasNext() {
		return false
	}
	if p.OnPageChange != nil {
		p.OnPageChange(p.CurrentPage + 1)
	}
	return true
}

// window returns the half-open slice bounds of the current page within n sorted items.
func (p Pagination) window(n int) (int, int) {
	start := (p.CurrentPage - 1) * p.ItemsPerPage
	end := p.CurrentPage * p.ItemsPerPage
	start = clamp(start, 0, n)
	end = clamp(end, start, n)
	return start, end
}

// Pager is the rendered state of the pagination controls.
type Pager struct {
	From        int
	To          int
	Total       int
	Page        int
	Pages       int
	PrevEnabled bool
	NextEnabled bool
}

// Summary returns the "Showing X to Y of Z results" line.
func (p Pager) Summary() string {
	return fmt.Sprintf("Showing %d to %d of %d results", p.From, p.To, p.Total)
}

func newPager(p Pagination) *Pager {
	if !p.Controls() {
		return nil
	}
	from, to := p.window(p.TotalItems)
	if from < to {
		from++
	} else {
		from, to = 0, 0
	}
	return &Pager{
		From:        from,
		To:          to,
		Total:       p.TotalItems,
		Page:        p.CurrentPage,
		Pages:       p.PageCount(),
		PrevEnabled: p.HasPrevious(),
		NextEnabled: p.HasNext(),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
