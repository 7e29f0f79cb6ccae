// Package library is a small in-memory graph of authors, books,
// magazines, and tags, grounded on original_source/demo-hackernews's
// Item/Story/Job interface-plus-coercion shape and
// original_source/demo-feeds's static in-memory Feed dataset (no network
// calls, unlike demo-hackernews's live HN API). It exists to exercise
// optional edges (a publication's author), folded edges (a publication's
// tags), recursive edges (a book's sequel chain), and tags (an author's
// name carried forward to their books) together in one adapter.
package library

import "github.com/google/uuid"

// Kind distinguishes the four vertex subtypes in this graph.
type Kind int

const (
	KindAuthor Kind = iota
	KindBook
	KindMagazine
	KindTag
)

// TypeName returns the schema vertex type name for k.
func (k Kind) TypeName() string {
	switch k {
	case KindAuthor:
		return "Author"
	case KindBook:
		return "Book"
	case KindMagazine:
		return "Magazine"
	default:
		return "Tag"
	}
}

// Vertex is the adapter's single traversal token: a tagged union over
// the graph's four vertex kinds, matching numbers.Vertex's shape (one
// struct, a Kind discriminant) rather than four separate Go types, so it
// can serve as adapter.Basic's single type parameter.
type Vertex struct {
	Kind Kind

	ID    uuid.UUID // set for Author, Book, Magazine
	Title string    // Book, Magazine
	Name  string    // Author name, or Tag text when Kind == KindTag

	AuthorID *uuid.UUID // Book/Magazine's author, nil when uncredited
	Year     int64      // Book/Magazine
	Tags     []string   // Book/Magazine's tag names
	SequelID *uuid.UUID // Book's next entry in its series, if any
}
