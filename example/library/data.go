package library

import "github.com/google/uuid"

var (
	authorLeGuin = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	authorAsimov = uuid.MustParse("00000000-0000-0000-0000-000000000002")

	bookWizard     = uuid.MustParse("00000000-0000-0000-0000-000000000101")
	bookTombs      = uuid.MustParse("00000000-0000-0000-0000-000000000102")
	bookShore      = uuid.MustParse("00000000-0000-0000-0000-000000000103")
	bookFoundation = uuid.MustParse("00000000-0000-0000-0000-000000000201")

	magazineGalaxy    = uuid.MustParse("00000000-0000-0000-0000-000000000301")
	magazineFantasist = uuid.MustParse("00000000-0000-0000-0000-000000000302")
)

type authorData struct {
	id   uuid.UUID
	name string
}

type bookData struct {
	id       uuid.UUID
	title    string
	authorID uuid.UUID
	year     int64
	tags     []string
	sequelID *uuid.UUID
}

type magazineData struct {
	id       uuid.UUID
	title    string
	authorID *uuid.UUID
	year     int64
	tags     []string
}

// dataset is the fixed in-memory graph every query runs against,
// grounded on demo-feeds's FeedAdapter holding a `&[Feed]` slice rather
// than reaching out to a live service.
var dataset = struct {
	authors   []authorData
	books     []bookData
	magazines []magazineData
}{
	authors: []authorData{
		{id: authorLeGuin, name: "Ursula K. Le Guin"},
		{id: authorAsimov, name: "Isaac Asimov"},
	},
	books: []bookData{
		{id: bookWizard, title: "A Wizard of Earthsea", authorID: authorLeGuin, year: 1968, tags: []string{"fantasy", "earthsea"}, sequelID: &bookTombs},
		{id: bookTombs, title: "The Tombs of Atuan", authorID: authorLeGuin, year: 1971, tags: []string{"fantasy", "earthsea"}, sequelID: &bookShore},
		{id: bookShore, title: "The Farthest Shore", authorID: authorLeGuin, year: 1972, tags: []string{"fantasy", "earthsea"}},
		{id: bookFoundation, title: "Foundation", authorID: authorAsimov, year: 1951, tags: []string{"sci-fi", "foundation"}},
	},
	magazines: []magazineData{
		{id: magazineGalaxy, title: "Galaxy Science Fiction", authorID: &authorAsimov, year: 1950, tags: []string{"sci-fi", "anthology"}},
		{id: magazineFantasist, title: "The Fantasist", authorID: nil, year: 1960, tags: []string{"anthology"}},
	},
}

func findAuthor(id uuid.UUID) (authorData, bool) {
	for _, a := range dataset.authors {
		if a.id == id {
			return a, true
		}
	}
	return authorData{}, false
}

func findBook(id uuid.UUID) (bookData, bool) {
	for _, b := range dataset.books {
		if b.id == id {
			return b, true
		}
	}
	return bookData{}, false
}

func booksByAuthor(id uuid.UUID) []bookData {
	var out []bookData
	for _, b := range dataset.books {
		if b.authorID == id {
			out = append(out, b)
		}
	}
	return out
}

func magazinesByAuthor(id uuid.UUID) []magazineData {
	var out []magazineData
	for _, m := range dataset.magazines {
		if m.authorID != nil && *m.authorID == id {
			out = append(out, m)
		}
	}
	return out
}
