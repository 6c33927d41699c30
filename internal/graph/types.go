package graph

import (
	"context"
	"errors"

	"github.com/go-logr/logr"
	graphql "github.com/graph-gophers/graphql-go"

	"github.com/jkarvo/libris/internal/catalog"
)

// authorResolver resolves Author fields. bookCount is precomputed on
// the allAuthors path; when nil, BookCount issues its own count query.
// Both paths yield the number of books referencing the author at read
// time.
type authorResolver struct {
	store     catalog.Store
	author    *catalog.Author
	bookCount *int32
}

func (r *authorResolver) Name() string {
	return r.author.Name
}

func (r *authorResolver) Born() *int32 {
	if r.author.Born == nil {
		return nil
	}
	born := int32(*r.author.Born)
	return &born
}

func (r *authorResolver) ID() graphql.ID {
	return graphql.ID(r.author.ID)
}

func (r *authorResolver) Books(ctx context.Context) (*[]*bookResolver, error) {
	books, err := r.store.FindBooksByAuthor(ctx, r.author.ID)
	if err != nil {
		logr.FromContextOrDiscard(ctx).Error(err, "fetching books for author", "author", r.author.Name)
		return nil, errInternal("failed to fetch books")
	}

	resolvers := make([]*bookResolver, 0, len(books))
	for _, b := range books {
		// Books fetched by author reference all resolve to this author.
		resolvers = append(resolvers, &bookResolver{
			store:        r.store,
			book:         b,
			author:       r.author,
			authorLoaded: true,
		})
	}
	return &resolvers, nil
}

func (r *authorResolver) BookCount(ctx context.Context) (int32, error) {
	if r.bookCount != nil {
		return *r.bookCount, nil
	}

	n, err := r.store.CountBooksByAuthor(ctx, r.author.ID)
	if err != nil {
		logr.FromContextOrDiscard(ctx).Error(err, "counting books for author", "author", r.author.Name)
		return 0, errInternal("failed to count books")
	}
	return n, nil
}

// bookResolver resolves Book fields. The author is loaded lazily on
// first access unless a batched lookup already supplied it.
type bookResolver struct {
	store        catalog.Store
	book         *catalog.Book
	author       *catalog.Author
	authorLoaded bool
}

func (r *bookResolver) Title() string {
	return r.book.Title
}

func (r *bookResolver) Published() int32 {
	return int32(r.book.Published)
}

func (r *bookResolver) Genres() []string {
	if r.book.Genres == nil {
		return []string{}
	}
	return r.book.Genres
}

func (r *bookResolver) ID() graphql.ID {
	return graphql.ID(r.book.ID)
}

// Author resolves the book's author reference. A dangling reference
// resolves to null rather than failing the enclosing selection.
func (r *bookResolver) Author(ctx context.Context) (*authorResolver, error) {
	if !r.authorLoaded {
		author, err := r.store.FindAuthorByID(ctx, r.book.AuthorID)
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			author = nil
		case err != nil:
			logr.FromContextOrDiscard(ctx).Error(err, "fetching author for book", "title", r.book.Title)
			return nil, errInternal("failed to fetch author")
		}
		r.author, r.authorLoaded = author, true
	}

	if r.author == nil {
		return nil, nil
	}
	return &authorResolver{store: r.store, author: r.author}, nil
}

// userResolver resolves User fields.
type userResolver struct {
	user *catalog.User
}

func (r *userResolver) Username() string {
	return r.user.Username
}

func (r *userResolver) FavoriteGenres() *[]*string {
	genres := make([]*string, 0, len(r.user.FavoriteGenres))
	for i := range r.user.FavoriteGenres {
		genres = append(genres, &r.user.FavoriteGenres[i])
	}
	return &genres
}

func (r *userResolver) ID() graphql.ID {
	return graphql.ID(r.user.ID)
}

// tokenResolver resolves the Token returned by login.
type tokenResolver struct {
	value string
}

func (r *tokenResolver) Value() string {
	return r.value
}
