// Package entity defines the encyclopedia's domain entities.
package entity

// Entry is a titled Markdown document.
type Entry struct {
	Title   string
	Content string
}
