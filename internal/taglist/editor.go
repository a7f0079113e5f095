// Package taglist edits ordered lists of short free-text tokens such as skills.
package taglist

import (
	"errors"
	"fmt"
	"strings"
)

var ErrIndexOutOfRange = errors.New("tag index out of range")

type Option func(*Editor)

// WithoutDuplicates makes Add ignore a token that is already in the list.
// Duplicates are accepted by default.
func WithoutDuplicates() Option {
	return func(e *Editor) {
		e.unique = true
	}
}

// Editor holds an input buffer and the committed items.
// It is owned by one form and is not safe for concurrent use.
type Editor struct {
	name   string
	input  string
	items  []string
	unique bool
}

func New(name string, opts ...Option) *Editor {
	e := &Editor{name: name, items: []string{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) Name() string { return e.name }

func (e *Editor) SetInput(s string) { e.input = s }

func (e *Editor) Input() string { return e.input }

// Add appends the trimmed token and clears the input buffer.
// Blank input is ignored and leaves the buffer as it was.
func (e *Editor) Add(raw string) bool {
	token := strings.TrimSpace(raw)
	if token == "" {
		return false
	}

	if e.unique && e.Contains(token) {
		e.input = ""
		return false
	}

	e.items = append(e.items, token)
	e.input = ""

	return true
}

// Commit adds the current input buffer.
func (e *Editor) Commit() bool {
	return e.Add(e.input)
}

// RemoveAt drops the item at position i and keeps the order of the rest.
func (e *Editor) RemoveAt(i int) error {
	if i < 0 || i >= len(e.items) {
		return fmt.Errorf("%s: %w: %d of %d", e.name, ErrIndexOutOfRange, i, len(e.items))
	}

	e.items = append(e.items[:i:i], e.items[i+1:]...)

	return nil
}

func (e *Editor) Contains(token string) bool {
	for _, item := range e.items {
		if item == token {
			return true
		}
	}
	return false
}

// Items returns a copy of the committed items.
func (e *Editor) Items() []string {
	items := make([]string, len(e.items))
	copy(items, e.items)
	return items
}

func (e *Editor) Len() int { return len(e.items) }

// Load replaces the items, for example when editing a stored record.
// Stored duplicates are kept even in a WithoutDuplicates editor.
func (e *Editor) Load(items []string) {
	e.Reset()
	for _, item := range items {
		if token := strings.TrimSpace(item); token != "" {
			e.items = append(e.items, token)
		}
	}
}

func (e *Editor) Reset() {
	e.items = []string{}
	e.input = ""
}
