package graph

import (
	"context"
	"errors"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/jkarvo/libris/internal/auth"
	"github.com/jkarvo/libris/internal/catalog"
)

func (r *Resolver) BookCount(ctx context.Context) (int32, error) {
	n, err := r.store.CountBooks(ctx)
	if err != nil {
		logr.FromContextOrDiscard(ctx).Error(err, "counting books")
		return 0, errInternal("failed to count books")
	}
	return n, nil
}

func (r *Resolver) AuthorCount(ctx context.Context) (int32, error) {
	n, err := r.store.CountAuthors(ctx)
	if err != nil {
		logr.FromContextOrDiscard(ctx).Error(err, "counting authors")
		return 0, errInternal("failed to count authors")
	}
	return n, nil
}

// AllBooks returns every book, optionally narrowed to an author name
// and/or a genre, with authors resolved through one batched lookup.
func (r *Resolver) AllBooks(ctx context.Context, args struct {
	Author *string
	Genre  *string
}) ([]*bookResolver, error) {
	log := logr.FromContextOrDiscard(ctx)

	books, err := r.store.FindAllBooks(ctx)
	if err != nil {
		log.Error(err, "fetching books")
		return nil, errInternal("failed to fetch books")
	}

	if args.Author != nil && *args.Author != "" {
		author, err := r.store.FindAuthorByName(ctx, *args.Author)
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			// Unknown author name matches nothing.
			books = nil
		case err != nil:
			log.Error(err, "fetching author for filter")
			return nil, errInternal("failed to fetch books")
		default:
			books = filterBooksByAuthor(books, author.ID)
		}
	}
	if args.Genre != nil && *args.Genre != "" {
		books = filterBooksByGenre(books, *args.Genre)
	}

	// One multi-get for all distinct author references instead of a
	// lookup per book. A dangling reference is simply absent from the
	// map and resolves to null on field access.
	authors, err := r.store.FindAuthorsByIDs(ctx, distinctAuthorIDs(books))
	if err != nil {
		log.Error(err, "fetching authors for books")
		return nil, errInternal("failed to fetch books")
	}

	resolvers := make([]*bookResolver, 0, len(books))
	for _, b := range books {
		resolvers = append(resolvers, &bookResolver{
			store:        r.store,
			book:         b,
			author:       authors[b.AuthorID],
			authorLoaded: true,
		})
	}
	return resolvers, nil
}

// AllAuthors returns every author with the per-author book count
// precomputed concurrently, so listing authors does not issue a count
// query per bookCount field access.
func (r *Resolver) AllAuthors(ctx context.Context) ([]*authorResolver, error) {
	log := logr.FromContextOrDiscard(ctx)

	authors, err := r.store.FindAllAuthors(ctx)
	if err != nil {
		log.Error(err, "fetching authors")
		return nil, errInternal("failed to fetch authors")
	}

	counts := make([]int32, len(authors))
	g, gctx := errgroup.WithContext(ctx)
	for i, a := range authors {
		i, a := i, a
		g.Go(func() error {
			n, err := r.store.CountBooksByAuthor(gctx, a.ID)
			counts[i] = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.Error(err, "counting books per author")
		return nil, errInternal("failed to fetch authors")
	}

	resolvers := make([]*authorResolver, 0, len(authors))
	for i, a := range authors {
		resolvers = append(resolvers, &authorResolver{
			store:     r.store,
			author:    a,
			bookCount: &counts[i],
		})
	}
	return resolvers, nil
}

func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	user := auth.UserFromContext(ctx)
	if user == nil {
		return nil, nil
	}
	return &userResolver{user: user}, nil
}
