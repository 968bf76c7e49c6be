package nfd

import "strings"

// FilterGroup is one entry of a filter list: a set of extensions shown as a
// single choice in the dialog.
type FilterGroup struct {
	Extensions []string
}

// Name is the label backends show for the group, e.g. "png, jpg".
func (g FilterGroup) Name() string {
	return strings.Join(g.Extensions, ", ")
}

// Patterns returns the group as glob patterns, e.g. "*.png".
func (g FilterGroup) Patterns() []string {
	patterns := make([]string, len(g.Extensions))
	for i, ext := range g.Extensions {
		patterns[i] = "*." + ext
	}
	return patterns
}

// ParseFilterList splits a filter list such as "png,jpg;pdf" into groups.
// Surrounding whitespace and a leading dot on an extension are dropped, as
// are empty extensions and groups.
func ParseFilterList(filterList string) []FilterGroup {
	var groups []FilterGroup
	for _, rawGroup := range strings.Split(filterList, ";") {
		var g FilterGroup
		for _, ext := range strings.Split(rawGroup, ",") {
			ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
			if ext != "" {
				g.Extensions = append(g.Extensions, ext)
			}
		}
		if len(g.Extensions) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}
