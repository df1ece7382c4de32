// Package pagination turns a (page, page size, item count) triple into the
// numbers a table footer needs: total pages, the visible item range, and the
// row of page buttons with ellipsis collapsing.
package pagination

import "fmt"

// DefaultPageSizes are the page sizes offered by the size selector.
var DefaultPageSizes = []int{10, 25, 50, 100}

// maxSlots is the number of page button positions rendered at most.
const maxSlots = 5

// Info describes the pagination state of a filtered record set.
type Info struct {
	CurrentPage int
	PageSize    int
	TotalItems  int
}

// New returns pagination info for the given state. A non-positive page size
// is treated as 1 so the arithmetic never divides by zero.
func New(currentPage, pageSize, totalItems int) Info {
	if pageSize <= 0 {
		pageSize = 1
	}
	if totalItems < 0 {
		totalItems = 0
	}
	return Info{CurrentPage: currentPage, PageSize: pageSize, TotalItems: totalItems}
}

// TotalPages returns ceil(totalItems / pageSize).
func TotalPages(totalItems, pageSize int) int {
	if pageSize <= 0 || totalItems <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// TotalPages returns the number of pages for this state.
func (i Info) TotalPages() int {
	return TotalPages(i.TotalItems, i.PageSize)
}

// StartItem is the 1-based index of the first item on the current page.
func (i Info) StartItem() int {
	return (i.CurrentPage-1)*i.PageSize + 1
}

// EndItem is the 1-based index of the last item on the current page.
func (i Info) EndItem() int {
	return min(i.CurrentPage*i.PageSize, i.TotalItems)
}

// Visible reports whether the pagination control should be shown at all.
func (i Info) Visible() bool {
	return i.TotalItems > 0
}

// Summary returns the "showing X to Y of Z" line.
func (i Info) Summary() string {
	return fmt.Sprintf("Showing %d to %d of %d entries", i.StartItem(), i.EndItem(), i.TotalItems)
}

// PrevDisabled reports whether the previous-page button is inactive.
func (i Info) PrevDisabled() bool {
	return i.CurrentPage == 1
}

// NextDisabled reports whether the next-page button is inactive.
func (i Info) NextDisabled() bool {
	total := i.TotalPages()
	return i.CurrentPage == total || total == 0
}

// Prev returns the target page of the previous-page button.
func (i Info) Prev() int {
	return Clamp(i.CurrentPage-1, i.TotalPages())
}

// Next returns the target page of the next-page button.
func (i Info) Next() int {
	return Clamp(i.CurrentPage+1, i.TotalPages())
}

// Slots returns the page buttons for the current state.
func (i Info) Slots() []Slot {
	return Slots(i.CurrentPage, i.TotalPages())
}

// Clamp bounds page into [1, totalPages]. With no pages at all it returns 1.
func Clamp(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Slot is one page button position. An ellipsis slot is rendered as "..."
// and is not clickable.
type Slot struct {
	Page     int
	Ellipsis bool
}

// Label returns the text shown for the slot.
func (s Slot) Label() string {
	if s.Ellipsis {
		return "..."
	}
	return fmt.Sprintf("%d", s.Page)
}

// Slots computes up to five page buttons.
//
// With more than five pages the first and last slots are pinned to page 1
// and the last page. Slot 1 collapses to an ellipsis unless it holds page 2,
// and slot 3 collapses unless it holds the second-to-last page.
func Slots(currentPage, totalPages int) []Slot {
	n := min(maxSlots, totalPages)
	if n <= 0 {
		return nil
	}

	slots := make([]Slot, 0, n)
	for idx := 0; idx < n; idx++ {
		var page int
		switch {
		case totalPages <= maxSlots:
			page = idx + 1
		case currentPage <= 3:
			page = idx + 1
			if idx == 4 {
				page = totalPages
			}
		case currentPage >= totalPages-2:
			page = totalPages - 4 + idx
			if idx == 0 {
				page = 1
			}
		default:
			page = currentPage - 2 + idx
			if idx == 0 {
				page = 1
			}
			if idx == 4 {
				page = totalPages
			}
		}

		ellipsis := false
		if totalPages > maxSlots {
			ellipsis = (idx == 1 && page != 2) || (idx == 3 && page != totalPages-1)
		}
		slots = append(slots, Slot{Page: page, Ellipsis: ellipsis})
	}
	return slots
}

// NextPageSize returns the size following current in sizes, wrapping around.
// An unknown current size selects the first option.
func NextPageSize(sizes []int, current int) int {
	if len(sizes) == 0 {
		return current
	}
	for i, s := range sizes {
		if s == current {
			return sizes[(i+1)%len(sizes)]
		}
	}
	return sizes[0]
}

// PrevPageSize returns the size preceding current in sizes, wrapping around.
func PrevPageSize(sizes []int, current int) int {
	if len(sizes) == 0 {
		return current
	}
	for i, s := range sizes {
		if s == current {
			return sizes[(i-1+len(sizes))%len(sizes)]
		}
	}
	return sizes[0]
}
