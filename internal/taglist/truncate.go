package taglist

import "fmt"

// Truncate returns at most limit items and the number of items left out.
// A non-positive limit shows everything.
func Truncate(items []string, limit int) ([]string, int) {
	if limit <= 0 || len(items) <= limit {
		return items, 0
	}
	return items[:limit], len(items) - limit
}

// MoreLabel renders the summary tag for hidden items. It is empty when nothing is hidden.
func MoreLabel(hidden int) string {
	if hidden <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d more", hidden)
}
