// Package pagination derives the visible page of an in-memory collection.
//
// Page numbers are always listed in full (1..TotalPages) without ellipsis.
// That does not scale to hundreds of pages and is kept that way on purpose.
package pagination

// DefaultPageSize matches the job and resume lists.
const DefaultPageSize = 5

// Window is the slice of a collection currently shown.
type Window[T any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
	PageSize    int
}

// Empty reports whether there is nothing to show. An empty collection has no
// pages at all rather than an empty first page.
func (w Window[T]) Empty() bool {
	return w.TotalPages == 0
}

func (w Window[T]) HasPrev() bool { return w.CurrentPage > 1 }

func (w Window[T]) HasNext() bool { return w.CurrentPage < w.TotalPages }

// TotalPages returns ceil(n/size). Zero means there are no pages.
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Slice returns items[(page-1)*size : page*size], clipped to the collection.
func Slice[T any](items []T, size, page int) []T {
	if size <= 0 || page < 1 {
		return nil
	}

	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}

	end := start + size
	if end > len(items) {
		end = len(items)
	}

	return items[start:end:end]
}

// Pages lists every page number from 1 to total.
func Pages(total int) []int {
	pages := make([]int, 0, total)
	for i := 1; i <= total; i++ {
		pages = append(pages, i)
	}
	return pages
}
