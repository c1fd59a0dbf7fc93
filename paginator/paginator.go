// Package paginator provides a bounded page view over an ordered list.
package paginator

import (
	"errors"
	"fmt"
)

// ErrInvalidPageSize is returned by New when the page size is below one.
var ErrInvalidPageSize = errors.New("page size must be at least 1")

// OutOfRangeError is returned by Jump when the requested page does not exist.
type OutOfRangeError struct {
	Requested  int
	TotalPages int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("page %d out of range (0-%d)", e.Requested, e.TotalPages-1)
}

// Paginator walks entries a page at a time. It is not safe for concurrent use.
type Paginator[T any] struct {
	entries  []T
	pageSize int
	index    int
}

// New returns a Paginator positioned on the first page.
func New[T any](entries []T, pageSize int) (*Paginator[T], error) {
	if pageSize < 1 {
		return nil, ErrInvalidPageSize
	}
	return &Paginator[T]{entries: entries, pageSize: pageSize}, nil
}

// TotalPages is never less than one, even with no entries.
func (p *Paginator[T]) TotalPages() int {
	if len(p.entries) == 0 {
		return 1
	}
	return (len(p.entries) + p.pageSize - 1) / p.pageSize
}

// Index returns the zero-based current page.
func (p *Paginator[T]) Index() int {
	return p.index
}

// Len returns the number of entries across all pages.
func (p *Paginator[T]) Len() int {
	return len(p.entries)
}

// CurrentPage returns the entries on the current page.
func (p *Paginator[T]) CurrentPage() []T {
	start := p.index * p.pageSize
	if start >= len(p.entries) {
		return []T{}
	}
	end := start + p.pageSize
	if end > len(p.entries) {
		end = len(p.entries)
	}
	return p.entries[start:end]
}

// Next moves forward one page. It reports false when already on the last page.
func (p *Paginator[T]) Next() bool {
	if p.index >= p.TotalPages()-1 {
		return false
	}
	p.index++
	return true
}

// Previous moves back one page. It reports false when already on the first page.
func (p *Paginator[T]) Previous() bool {
	if p.index <= 0 {
		return false
	}
	p.index--
	return true
}

// First moves to the first page.
func (p *Paginator[T]) First() {
	p.index = 0
}

// Last moves to the last page.
func (p *Paginator[T]) Last() {
	p.index = p.TotalPages() - 1
}

// Jump moves to page n. The position is unchanged when n is out of range.
func (p *Paginator[T]) Jump(n int) error {
	if n < 0 || n >= p.TotalPages() {
		return &OutOfRangeError{Requested: n, TotalPages: p.TotalPages()}
	}
	p.index = n
	return nil
}
