package catalog

import "strings"

// Filter keeps the items of the given category whose name contains query,
// ignoring case. An empty category means the default one; an empty query
// matches everything. Input order is preserved.
func Filter(items []Item, category Category, query string) []Item {
	if category == "" {
		category = DefaultCategory()
	}
	q := strings.ToLower(query)

	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Category != category {
			continue
		}
		if !strings.Contains(strings.ToLower(it.Name), q) {
			continue
		}
		out = append(out, it)
	}
	return out
}
