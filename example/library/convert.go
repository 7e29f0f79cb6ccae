package library

func authorVertex(a authorData) Vertex {
	return Vertex{Kind: KindAuthor, ID: a.id, Name: a.name}
}

func bookVertex(b bookData) Vertex {
	return Vertex{
		Kind:     KindBook,
		ID:       b.id,
		Title:    b.title,
		AuthorID: &b.authorID,
		Year:     b.year,
		Tags:     b.tags,
		SequelID: b.sequelID,
	}
}

func magazineVertex(m magazineData) Vertex {
	return Vertex{
		Kind:     KindMagazine,
		ID:       m.id,
		Title:    m.title,
		AuthorID: m.authorID,
		Year:     m.year,
		Tags:     m.tags,
	}
}

func tagVertex(name string) Vertex {
	return Vertex{Kind: KindTag, Name: name}
}
