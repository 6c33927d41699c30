package catalog

import (
	"context"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID generates a random entity id for stores that do not assign
// their own (the in-memory store; MongoDB assigns ObjectIDs).
func NewID() string {
	id, err := gonanoid.Generate(idAlphabet, 12)
	if err != nil {
		// Only fails if the system entropy source is broken.
		panic(err)
	}
	return id
}

// MemStore is an in-memory Store. It backs tests and the --memory
// server mode, and enforces the same uniqueness constraints as the
// Mongo store. Entities are returned in insertion order, which is the
// store's natural order.
type MemStore struct {
	mu      sync.RWMutex
	authors []*Author
	books   []*Book
	users   []*User
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func copyAuthor(a *Author) *Author {
	dup := *a
	if a.Born != nil {
		born := *a.Born
		dup.Born = &born
	}
	return &dup
}

func copyBook(b *Book) *Book {
	dup := *b
	dup.Genres = append([]string(nil), b.Genres...)
	return &dup
}

func copyUser(u *User) *User {
	dup := *u
	dup.FavoriteGenres = append([]string(nil), u.FavoriteGenres...)
	return &dup
}

func (s *MemStore) FindAuthorByID(ctx context.Context, id string) (*Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.authors {
		if a.ID == id {
			return copyAuthor(a), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) FindAuthorByName(ctx context.Context, name string) (*Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.authors {
		if a.Name == name {
			return copyAuthor(a), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) FindAllAuthors(ctx context.Context) ([]*Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	authors := make([]*Author, 0, len(s.authors))
	for _, a := range s.authors {
		authors = append(authors, copyAuthor(a))
	}
	return authors, nil
}

func (s *MemStore) FindAuthorsByIDs(ctx context.Context, ids []string) (map[string]*Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	result := make(map[string]*Author, len(ids))
	for _, a := range s.authors {
		if wanted[a.ID] {
			result[a.ID] = copyAuthor(a)
		}
	}
	return result, nil
}

func (s *MemStore) SaveAuthor(ctx context.Context, author *Author) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.authors {
		if a.Name == author.Name {
			return ErrDuplicate
		}
	}

	author.ID = NewID()
	s.authors = append(s.authors, copyAuthor(author))
	return nil
}

func (s *MemStore) UpdateAuthor(ctx context.Context, author *Author) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.authors {
		if a.ID == author.ID {
			s.authors[i] = copyAuthor(author)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemStore) CountAuthors(ctx context.Context) (int32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int32(len(s.authors)), nil
}

func (s *MemStore) FindAllBooks(ctx context.Context) ([]*Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]*Book, 0, len(s.books))
	for _, b := range s.books {
		books = append(books, copyBook(b))
	}
	return books, nil
}

func (s *MemStore) FindBooksByAuthor(ctx context.Context, authorID string) ([]*Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var books []*Book
	for _, b := range s.books {
		if b.AuthorID == authorID {
			books = append(books, copyBook(b))
		}
	}
	return books, nil
}

func (s *MemStore) SaveBook(ctx context.Context, book *Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book.ID = NewID()
	if book.Genres == nil {
		book.Genres = []string{}
	}
	s.books = append(s.books, copyBook(book))
	return nil
}

func (s *MemStore) CountBooks(ctx context.Context) (int32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int32(len(s.books)), nil
}

func (s *MemStore) CountBooksByAuthor(ctx context.Context, authorID string) (int32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int32
	for _, b := range s.books {
		if b.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

func (s *MemStore) FindUserByID(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) SaveUser(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return ErrDuplicate
		}
	}

	user.ID = NewID()
	if user.FavoriteGenres == nil {
		user.FavoriteGenres = []string{}
	}
	s.users = append(s.users, copyUser(user))
	return nil
}

func (s *MemStore) UpdateUser(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.ID == user.ID {
			s.users[i] = copyUser(user)
			return nil
		}
	}
	return ErrNotFound
}
