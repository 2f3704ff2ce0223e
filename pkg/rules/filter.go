package rules

import (
	"sort"
	"strings"
)

// Filter is a category allow-list. The zero value (or an empty filter)
// matches every category. Unknown names simply match nothing; a typo in
// the filter is not an error.
type Filter struct {
	categories map[string]bool
}

// ParseFilter builds a Filter from a comma-separated category list.
// Empty entries and surrounding whitespace are dropped.
func ParseFilter(spec string) Filter {
	f := Filter{}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if f.categories == nil {
			f.categories = make(map[string]bool)
		}
		f.categories[part] = true
	}
	return f
}

// NewFilter builds a Filter from a category slice.
func NewFilter(categories []string) Filter {
	f := Filter{}
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if f.categories == nil {
			f.categories = make(map[string]bool)
		}
		f.categories[c] = true
	}
	return f
}

// IsEmpty reports whether the filter matches all categories.
func (f Filter) IsEmpty() bool {
	return len(f.categories) == 0
}

// Match reports whether the category passes the filter.
func (f Filter) Match(category string) bool {
	if f.IsEmpty() {
		return true
	}
	return f.categories[category]
}

// Categories returns the filter's categories in sorted order, for
// logging.
func (f Filter) Categories() []string {
	out := make([]string, 0, len(f.categories))
	for c := range f.categories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
