package catalog

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate indicates a unique constraint (author name,
	// username) was violated by an insert.
	ErrDuplicate = errors.New("duplicate entity")
)

// Store provides typed access to the three catalog collections. All
// implementations assign ids on insert and return ErrNotFound /
// ErrDuplicate as appropriate; any other error is an I/O failure of
// the underlying store.
type Store interface {
	FindAuthorByID(ctx context.Context, id string) (*Author, error)
	FindAuthorByName(ctx context.Context, name string) (*Author, error)
	FindAllAuthors(ctx context.Context) ([]*Author, error)
	// FindAuthorsByIDs returns the authors for the given ids, keyed by
	// id. Ids with no matching author are absent from the result.
	FindAuthorsByIDs(ctx context.Context, ids []string) (map[string]*Author, error)
	// SaveAuthor inserts a new author and assigns its id. Returns
	// ErrDuplicate if an author with the same name already exists.
	SaveAuthor(ctx context.Context, author *Author) error
	UpdateAuthor(ctx context.Context, author *Author) error
	CountAuthors(ctx context.Context) (int32, error)

	FindAllBooks(ctx context.Context) ([]*Book, error)
	FindBooksByAuthor(ctx context.Context, authorID string) ([]*Book, error)
	SaveBook(ctx context.Context, book *Book) error
	CountBooks(ctx context.Context) (int32, error)
	CountBooksByAuthor(ctx context.Context, authorID string) (int32, error)

	FindUserByID(ctx context.Context, id string) (*User, error)
	FindUserByUsername(ctx context.Context, username string) (*User, error)
	// SaveUser inserts a new user and assigns its id. Returns
	// ErrDuplicate if the username is taken.
	SaveUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, user *User) error
}
