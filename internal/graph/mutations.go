package graph

import (
	"context"
	"errors"

	"github.com/go-logr/logr"

	"github.com/jkarvo/libris/internal/auth"
	"github.com/jkarvo/libris/internal/catalog"
)

// AddBook creates a book for the authenticated caller, creating its
// author first if the name is not known yet.
func (r *Resolver) AddBook(ctx context.Context, args struct {
	Title     string
	Published int32
	Author    string
	Genres    []string
}) (*bookResolver, error) {
	user := auth.UserFromContext(ctx)
	if user == nil {
		return nil, errUnauthenticated()
	}

	author, err := r.findOrCreateAuthor(ctx, args.Author)
	if err != nil {
		logr.FromContextOrDiscard(ctx).Error(err, "resolving author", "name", args.Author)
		return nil, errInvalidInput("saving book failed", "author")
	}

	book := &catalog.Book{
		Title:     args.Title,
		Published: int(args.Published),
		AuthorID:  author.ID,
		Genres:    args.Genres,
	}
	if err := r.store.SaveBook(ctx, book); err != nil {
		logr.FromContextOrDiscard(ctx).Error(err, "saving book", "title", args.Title)
		return nil, errInvalidInput("saving book failed", "title")
	}

	return &bookResolver{store: r.store, book: book, author: author, authorLoaded: true}, nil
}

// findOrCreateAuthor resolves an author by name, creating it when
// absent. The unique name index turns the check-then-act race of two
// concurrent creations into ErrDuplicate, after which the author that
// won the race is fetched. Exactly one author per name either way.
func (r *Resolver) findOrCreateAuthor(ctx context.Context, name string) (*catalog.Author, error) {
	author, err := r.store.FindAuthorByName(ctx, name)
	if err == nil {
		return author, nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return nil, err
	}

	author = &catalog.Author{Name: name}
	err = r.store.SaveAuthor(ctx, author)
	if err == nil {
		return author, nil
	}
	if errors.Is(err, catalog.ErrDuplicate) {
		return r.store.FindAuthorByName(ctx, name)
	}
	return nil, err
}

// EditAuthor sets an author's birth year. An unknown name is a soft
// miss: it returns null, not an error.
func (r *Resolver) EditAuthor(ctx context.Context, args struct {
	Name      string
	SetBornTo int32
}) (*authorResolver, error) {
	author, err := r.store.FindAuthorByName(ctx, args.Name)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		logr.FromContextOrDiscard(ctx).Error(err, "fetching author", "name", args.Name)
		return nil, errInvalidInput("failed to update author", "name")
	}

	born := int(args.SetBornTo)
	author.Born = &born
	if err := r.store.UpdateAuthor(ctx, author); err != nil {
		logr.FromContextOrDiscard(ctx).Error(err, "updating author", "name", args.Name)
		return nil, errInvalidInput("failed to update author", "name")
	}

	return &authorResolver{store: r.store, author: author}, nil
}

// CreateUser registers a new account. No authentication is required:
// this is self-registration. The favoriteGenres argument seeds the
// list with a single genre when non-empty.
func (r *Resolver) CreateUser(ctx context.Context, args struct {
	Username       string
	FavoriteGenres string
}) (*userResolver, error) {
	genres := []string{}
	if args.FavoriteGenres != "" {
		genres = []string{args.FavoriteGenres}
	}

	user := &catalog.User{Username: args.Username, FavoriteGenres: genres}
	if err := r.store.SaveUser(ctx, user); err != nil {
		logr.FromContextOrDiscard(ctx).Error(err, "creating user", "username", args.Username)
		return nil, errInvalidInput("creating the user failed", "username")
	}

	return &userResolver{user: user}, nil
}

// Login authenticates a user and issues a bearer token carrying the
// username and id.
func (r *Resolver) Login(ctx context.Context, args struct {
	Username string
	Password string
}) (*tokenResolver, error) {
	user, err := r.store.FindUserByUsername(ctx, args.Username)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, errBadCredentials()
	}
	if err != nil {
		logr.FromContextOrDiscard(ctx).Error(err, "fetching user for login")
		return nil, errInternal("login failed")
	}

	if err := r.verifier.Verify(user, args.Password); err != nil {
		return nil, errBadCredentials()
	}

	token, err := auth.IssueToken(r.tokenSecret, user)
	if err != nil {
		logr.FromContextOrDiscard(ctx).Error(err, "issuing token")
		return nil, errInternal("login failed")
	}

	return &tokenResolver{value: token}, nil
}

// AddFavoriteGenre replaces the authenticated user's favorite genres
// wholesale with the given list.
func (r *Resolver) AddFavoriteGenre(ctx context.Context, args struct {
	Genres []string
}) (*userResolver, error) {
	user := auth.UserFromContext(ctx)
	if user == nil {
		return nil, errUnauthenticated()
	}

	genres := args.Genres
	if genres == nil {
		genres = []string{}
	}

	updated := *user
	updated.FavoriteGenres = genres
	if err := r.store.UpdateUser(ctx, &updated); err != nil {
		logr.FromContextOrDiscard(ctx).Error(err, "updating user", "username", user.Username)
		return nil, errInvalidInput("failed to update user", "")
	}

	return &userResolver{user: &updated}, nil
}
