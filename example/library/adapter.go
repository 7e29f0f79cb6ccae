package library

import (
	"iter"

	"go.appointy.com/graphwalk/adapter"
	"go.appointy.com/graphwalk/hints"
	"go.appointy.com/graphwalk/value"
)

// Adapter walks the fixed author/book/magazine/tag dataset. Grounded on
// demo-hackernews's HackerNewsAdapter: a Publication interface coerces
// down to Book or Magazine the same way Item coerces down to Story or
// Job, and "author"/"wrote" mirror byUser/byUsername's optional,
// reverse-lookup shape.
type Adapter struct{}

var _ adapter.Basic[Vertex] = Adapter{}

func (Adapter) ResolveStartingVertices(edgeName string, parameters map[string]value.Value, info hints.ResolveInfo) iter.Seq[Vertex] {
	return func(yield func(Vertex) bool) {
		switch edgeName {
		case "Author":
			for _, a := range dataset.authors {
				if !yield(authorVertex(a)) {
					return
				}
			}
		case "Publication", "Book":
			for _, b := range dataset.books {
				if !yield(bookVertex(b)) {
					return
				}
			}
		}
		if edgeName == "Publication" || edgeName == "Magazine" {
			for _, m := range dataset.magazines {
				if !yield(magazineVertex(m)) {
					return
				}
			}
		}
	}
}

func (Adapter) ResolveProperty(v Vertex, typeName, propertyName string, info hints.ResolveInfo) value.Value {
	switch propertyName {
	case "id":
		if v.Kind != KindAuthor {
			return value.Null()
		}
		return value.String(v.ID.String())
	case "name":
		return value.String(v.Name)
	case "title":
		return value.String(v.Title)
	case "year":
		return value.Int64(v.Year)
	default:
		return value.Null()
	}
}

func (Adapter) ResolveNeighbors(v Vertex, typeName, edgeName string, parameters map[string]value.Value, info hints.ResolveEdgeInfo) iter.Seq[Vertex] {
	return func(yield func(Vertex) bool) {
		switch edgeName {
		case "author":
			if v.AuthorID == nil {
				return
			}
			a, ok := findAuthor(*v.AuthorID)
			if !ok {
				return
			}
			yield(authorVertex(a))
		case "tags":
			for _, t := range v.Tags {
				if !yield(tagVertex(t)) {
					return
				}
			}
		case "wrote":
			for _, b := range booksByAuthor(v.ID) {
				if !yield(bookVertex(b)) {
					return
				}
			}
			for _, m := range magazinesByAuthor(v.ID) {
				if !yield(magazineVertex(m)) {
					return
				}
			}
		case "sequel":
			if v.SequelID == nil {
				return
			}
			b, ok := findBook(*v.SequelID)
			if !ok {
				return
			}
			yield(bookVertex(b))
		}
	}
}

func (Adapter) ResolveCoercion(v Vertex, typeName, coerceToType string, info hints.ResolveInfo) bool {
	switch coerceToType {
	case "Book":
		return v.Kind == KindBook
	case "Magazine":
		return v.Kind == KindMagazine
	default:
		return false
	}
}
