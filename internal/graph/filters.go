package graph

import "github.com/jkarvo/libris/internal/catalog"

// filterBooksByAuthor keeps only books referencing the given author.
func filterBooksByAuthor(books []*catalog.Book, authorID string) []*catalog.Book {
	var result []*catalog.Book
	for _, b := range books {
		if b.AuthorID == authorID {
			result = append(result, b)
		}
	}
	return result
}

// filterBooksByGenre keeps only books carrying the given genre.
func filterBooksByGenre(books []*catalog.Book, genre string) []*catalog.Book {
	var result []*catalog.Book
	for _, b := range books {
		for _, g := range b.Genres {
			if g == genre {
				result = append(result, b)
				break
			}
		}
	}
	return result
}

// distinctAuthorIDs collects the unique author references of the
// given books, preserving first-seen order.
func distinctAuthorIDs(books []*catalog.Book) []string {
	seen := make(map[string]bool, len(books))
	var ids []string
	for _, b := range books {
		if !seen[b.AuthorID] {
			seen[b.AuthorID] = true
			ids = append(ids, b.AuthorID)
		}
	}
	return ids
}
