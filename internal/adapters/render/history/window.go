package history

// Ellipsis marks a gap in a page window.
const Ellipsis = -1

const maxPagesShown = 5

// PageWindow returns the page numbers to display for the given current page,
// with Ellipsis entries standing in for collapsed ranges. Windows always keep
// the first and last page visible and the current page flanked by its
// neighbours.
func PageWindow(current, totalPages int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	if totalPages <= maxPagesShown {
		pages := make([]int, 0, totalPages)
		for page := 1; page <= totalPages; page++ {
			pages = append(pages, page)
		}
		return pages
	}

	startPage := current - 1
	endPage := current + 1
	switch {
	case current <= 3:
		startPage = 2
		endPage = 4
	case current >= totalPages-2:
		startPage = totalPages - 3
		endPage = totalPages - 1
	}

	pages := make([]int, 0, maxPagesShown+2)
	pages = append(pages, 1)
	if startPage > 2 {
		pages = append(pages, Ellipsis)
	}
	for page := startPage; page <= endPage; page++ {
		pages = append(pages, page)
	}
	if endPage < totalPages-1 {
		pages = append(pages, Ellipsis)
	}
	pages = append(pages, totalPages)

	return pages
}
