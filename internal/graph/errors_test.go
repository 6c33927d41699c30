package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/jkarvo/libris/internal/auth"
	"github.com/jkarvo/libris/internal/catalog"
)

// failingStore wraps a MemStore and fails every read that backs a
// query operation, to exercise the fail-closed error mapping.
type failingStore struct {
	*catalog.MemStore
	err error
}

func (s *failingStore) CountBooks(ctx context.Context) (int32, error)   { return 0, s.err }
func (s *failingStore) CountAuthors(ctx context.Context) (int32, error) { return 0, s.err }

func (s *failingStore) FindAllBooks(ctx context.Context) ([]*catalog.Book, error) {
	return nil, s.err
}

func (s *failingStore) FindAllAuthors(ctx context.Context) ([]*catalog.Author, error) {
	return nil, s.err
}

func (s *failingStore) FindAuthorByID(ctx context.Context, id string) (*catalog.Author, error) {
	return nil, s.err
}

func (s *failingStore) FindAuthorsByIDs(ctx context.Context, ids []string) (map[string]*catalog.Author, error) {
	return nil, s.err
}

func (s *failingStore) FindBooksByAuthor(ctx context.Context, authorID string) ([]*catalog.Book, error) {
	return nil, s.err
}

func (s *failingStore) CountBooksByAuthor(ctx context.Context, authorID string) (int32, error) {
	return 0, s.err
}

func (s *failingStore) FindUserByUsername(ctx context.Context, username string) (*catalog.User, error) {
	return nil, s.err
}

func setupFailingResolver(t *testing.T) *Resolver {
	t.Helper()
	store := &failingStore{
		MemStore: catalog.NewMemStore(),
		err:      errors.New("store unreachable"),
	}
	return New(store, auth.FixedSecret{Secret: testLoginSecret}, testTokenSecret)
}

// Reads fail closed: a broken store surfaces as INTERNAL_SERVER_ERROR,
// never as a raw store error.
func TestReadsFailClosed(t *testing.T) {
	resolver := setupFailingResolver(t)
	ctx := context.Background()

	t.Run("bookCount", func(t *testing.T) {
		_, err := resolver.BookCount(ctx)
		if err == nil {
			t.Fatal("BookCount() succeeded against a broken store")
		}
		if code := errorCode(t, err); code != CodeInternal {
			t.Errorf("code = %q, want %q", code, CodeInternal)
		}
	})

	t.Run("authorCount", func(t *testing.T) {
		_, err := resolver.AuthorCount(ctx)
		if err == nil {
			t.Fatal("AuthorCount() succeeded against a broken store")
		}
		if code := errorCode(t, err); code != CodeInternal {
			t.Errorf("code = %q, want %q", code, CodeInternal)
		}
	})

	t.Run("allBooks", func(t *testing.T) {
		_, err := resolver.AllBooks(ctx, struct{ Author, Genre *string }{})
		if err == nil {
			t.Fatal("AllBooks() succeeded against a broken store")
		}
		if code := errorCode(t, err); code != CodeInternal {
			t.Errorf("code = %q, want %q", code, CodeInternal)
		}
	})

	t.Run("allAuthors", func(t *testing.T) {
		_, err := resolver.AllAuthors(ctx)
		if err == nil {
			t.Fatal("AllAuthors() succeeded against a broken store")
		}
		if code := errorCode(t, err); code != CodeInternal {
			t.Errorf("code = %q, want %q", code, CodeInternal)
		}
	})
}

func TestFieldResolversFailClosed(t *testing.T) {
	broken := &failingStore{
		MemStore: catalog.NewMemStore(),
		err:      errors.New("store unreachable"),
	}
	ctx := context.Background()

	author := &catalog.Author{ID: "a1", Name: "Robert Martin"}
	book := &catalog.Book{ID: "b1", Title: "Clean Code", Published: 2008, AuthorID: "a1"}

	t.Run("author books", func(t *testing.T) {
		_, err := (&authorResolver{store: broken, author: author}).Books(ctx)
		if err == nil {
			t.Fatal("Books() succeeded against a broken store")
		}
		if code := errorCode(t, err); code != CodeInternal {
			t.Errorf("code = %q, want %q", code, CodeInternal)
		}
	})

	t.Run("author bookCount", func(t *testing.T) {
		_, err := (&authorResolver{store: broken, author: author}).BookCount(ctx)
		if err == nil {
			t.Fatal("BookCount() succeeded against a broken store")
		}
		if code := errorCode(t, err); code != CodeInternal {
			t.Errorf("code = %q, want %q", code, CodeInternal)
		}
	})

	t.Run("book author", func(t *testing.T) {
		// An I/O failure is not a dangling reference: it must surface
		// as an error, not resolve to null.
		_, err := (&bookResolver{store: broken, book: book}).Author(ctx)
		if err == nil {
			t.Fatal("Author() succeeded against a broken store")
		}
		if code := errorCode(t, err); code != CodeInternal {
			t.Errorf("code = %q, want %q", code, CodeInternal)
		}
	})
}

// A store failure during the login lookup is a read failure, not a
// credential failure: callers must not be able to distinguish user
// existence from it.
func TestLoginStoreFailure(t *testing.T) {
	resolver := setupFailingResolver(t)

	_, err := resolver.Login(context.Background(), struct{ Username, Password string }{"alice", testLoginSecret})
	if err == nil {
		t.Fatal("Login() succeeded against a broken store")
	}
	if code := errorCode(t, err); code != CodeInternal {
		t.Errorf("code = %q, want %q", code, CodeInternal)
	}
}
