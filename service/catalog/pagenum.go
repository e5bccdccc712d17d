package catalog

// Ellipsis is the gap marker in a PageNumbers sequence.
const Ellipsis = -1

// PageNumbers returns the page-control sequence for the given current page:
// first and last page always, a window of current-1..current+1 around the
// current page, and at most one Ellipsis gap on each side. Small page counts
// (<= 5) list every page. Returns nil when there is at most one page.
func PageNumbers(current, totalPages int) []int {
	if totalPages <= 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	if totalPages <= 5 {
		pages := make([]int, totalPages)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	windowStart := current - 1
	windowEnd := current + 1
	if windowStart < 2 {
		windowStart = 2
	}
	if windowEnd > totalPages-1 {
		windowEnd = totalPages - 1
	}

	pages := []int{1}
	if windowStart > 2 {
		pages = append(pages, Ellipsis)
	}
	for p := windowStart; p <= windowEnd; p++ {
		pages = append(pages, p)
	}
	if windowEnd < totalPages-1 {
		pages = append(pages, Ellipsis)
	}
	return append(pages, totalPages)
}
