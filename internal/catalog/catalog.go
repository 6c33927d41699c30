// Package catalog holds the persisted entities of the library catalog
// and the Store interface that provides access to them.
package catalog

// Author is a catalog author. Name acts as a natural key: the store
// enforces at most one author per distinct name.
type Author struct {
	ID   string
	Name string
	Born *int
}

// Book is a single catalog entry. AuthorID references an Author by id;
// the reference may dangle if the author disappears out of band, and
// readers must tolerate that.
type Book struct {
	ID        string
	Title     string
	Published int
	AuthorID  string
	Genres    []string
}

// User is a registered account. Username is unique. PasswordHash is
// only populated when the bcrypt credential scheme is in use; the
// default fixed-secret scheme leaves it empty.
type User struct {
	ID             string
	Username       string
	FavoriteGenres []string
	PasswordHash   string
}
