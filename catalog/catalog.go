// Package catalog groups user-facing commands by category for display.
package catalog

import (
	"sort"
	"strings"
)

// Marker prefixes every command line in an entry body.
const Marker = "\u200b ⋄"

// Item is anything that can be listed in the catalog.
type Item interface {
	Name() string
	Category() string
	Description() string
}

// Entry is the rendered block for one category.
type Entry struct {
	Title string
	Body  string
}

// Option customises how Aggregate renders items.
type Option func(*options)

type options struct {
	nameFormat func(Item) string
}

// WithNameFormat renders item names with f instead of Item.Name.
func WithNameFormat(f func(Item) string) Option {
	return func(o *options) {
		o.nameFormat = f
	}
}

// Aggregate groups items by category in the order categories are first seen,
// sorts each group by name and renders one Entry per category.
func Aggregate(items []Item, opts ...Option) []Entry {
	o := options{nameFormat: func(it Item) string { return it.Name() }}
	for _, opt := range opts {
		opt(&o)
	}

	var order []string
	groups := make(map[string][]Item)
	for _, it := range items {
		cat := it.Category()
		if _, seen := groups[cat]; !seen {
			order = append(order, cat)
		}
		groups[cat] = append(groups[cat], it)
	}

	entries := make([]Entry, 0, len(order))
	for _, cat := range order {
		group := groups[cat]
		if len(group) == 0 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Name() < group[j].Name()
		})

		lines := make([]string, 0, len(group))
		for _, it := range group {
			lines = append(lines, Marker+" "+o.nameFormat(it)+": "+it.Description())
		}
		entries = append(entries, Entry{
			Title: "Category: " + cat,
			Body:  strings.Join(lines, "\n"),
		})
	}
	return entries
}

// Filter returns the items whose category is not in excluded.
func Filter(items []Item, excluded ...string) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		skip := false
		for _, cat := range excluded {
			if it.Category() == cat {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, it)
		}
	}
	return out
}
