// Package pagination computes page windows: the short run of page numbers
// shown around the current page.
package pagination

import "math"

// Entry is one page number in a window.
type Entry struct {
	Number     int  `json:"number"`
	IsSelected bool `json:"selected"`
	IsBoundary bool `json:"boundary"`
}

// Window returns up to length page numbers around page, in ascending order.
//
// Fractional pages are floored, then clamped into [1, pageCount]. The window
// grows one page at a time, alternating sides and starting with the high
// side, until it holds length pages or both ends are reached. Entries equal
// to 1 or pageCount are boundaries.
//
// With pageCount 0 the result is a single selected boundary entry for page 1.
func Window(page float64, pageCount, length int) []Entry {
	if length < 1 {
		length = 1
	}
	if pageCount < 1 {
		return []Entry{{Number: 1, IsSelected: true, IsBoundary: true}}
	}

	current := clamp(page, pageCount)
	low, high := current, current
	size := 1

	for iter := 3; size < length && iter <= 2*length; iter++ {
		if iter%2 == 0 {
			if low > 1 {
				low--
				size++
			}
		} else if high < pageCount {
			high++
			size++
		}
	}

	window := make([]Entry, 0, size)
	for n := low; n <= high; n++ {
		window = append(window, Entry{
			Number:     n,
			IsSelected: n == current,
			IsBoundary: n == 1 || n == pageCount,
		})
	}
	return window
}

// PageCount returns the number of pages needed for total items.
func PageCount(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// Bounds returns the slice bounds [start, end) of page within total items.
// The page is clamped as in Window.
func Bounds(page, perPage, total int) (start, end int) {
	pages := PageCount(total, perPage)
	if pages == 0 {
		return 0, 0
	}
	p := clamp(float64(page), pages)
	start = (p - 1) * perPage
	end = min(start+perPage, total)
	return start, end
}

// Clamp floors page and clamps it into [1, pageCount]. NaN and values
// below one give 1.
func Clamp(page float64, pageCount int) int {
	if pageCount < 1 {
		return 1
	}
	return clamp(page, pageCount)
}

func clamp(page float64, pageCount int) int {
	if math.IsNaN(page) || page < 1 {
		return 1
	}
	if page >= float64(pageCount) {
		return pageCount
	}
	return int(math.Floor(page))
}
