package pagination

import (
	"fmt"
	"strings"

	"github.com/ledgerline/mfin/internal/ui/styles"
)

// Render draws the pagination footer on one line:
//
//	Showing 1 to 10 of 47 entries   Rows: [10] 25 50 100   ‹ [1] 2 3 4 5 ›
//
// It returns an empty string when there is nothing to paginate.
func (i Info) Render(pageSizes []int) string {
	if !i.Visible() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(styles.MutedMsg(i.Summary()))

	if len(pageSizes) > 0 {
		sb.WriteString("   ")
		sb.WriteString(styles.MutedMsg("Rows:"))
		for _, size := range pageSizes {
			sb.WriteString(" ")
			if size == i.PageSize {
				sb.WriteString(styles.Render(styles.CurrentPageStyle, fmt.Sprintf("[%d]", size)))
			} else {
				sb.WriteString(styles.Render(styles.PageStyle, fmt.Sprintf("%d", size)))
			}
		}
	}

	sb.WriteString("   ")
	sb.WriteString(arrow("‹", i.PrevDisabled()))
	for _, slot := range i.Slots() {
		sb.WriteString(" ")
		switch {
		case slot.Ellipsis:
			sb.WriteString(styles.MutedMsg(slot.Label()))
		case slot.Page == i.CurrentPage:
			sb.WriteString(styles.Render(styles.CurrentPageStyle, "["+slot.Label()+"]"))
		default:
			sb.WriteString(styles.Render(styles.PageStyle, slot.Label()))
		}
	}
	sb.WriteString(" ")
	sb.WriteString(arrow("›", i.NextDisabled()))

	return sb.String()
}

func arrow(symbol string, disabled bool) string {
	if disabled {
		return styles.Render(styles.DisabledStyle, symbol)
	}
	return styles.Render(styles.PageStyle, symbol)
}
