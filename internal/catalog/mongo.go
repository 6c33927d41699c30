package catalog

import (
	"context"
	"fmt"
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on top of a MongoDB database with
// authors, books and users collections.
type MongoStore struct {
	authors *mongo.Collection
	books   *mongo.Collection
	users   *mongo.Collection
}

// NewMongoStore creates a store bound to the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		authors: db.Collection("authors"),
		books:   db.Collection("books"),
		users:   db.Collection("users"),
	}
}

// EnsureIndexes creates the unique indexes backing the natural keys
// (author name, username). SaveAuthor and SaveUser rely on these to
// report ErrDuplicate, which is what closes the find-or-create race
// on concurrent book additions.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := s.authors.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("creating author name index: %w", err)
	}

	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("creating username index: %w", err)
	}

	return nil
}

type authorDoc struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
	Born *int               `bson:"born,omitempty"`
}

type bookDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Published int                `bson:"published"`
	Author    primitive.ObjectID `bson:"author"`
	Genres    []string           `bson:"genres"`
}

type userDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	FavoriteGenres []string           `bson:"favoriteGenres"`
	PasswordHash   string             `bson:"passwordHash,omitempty"`
}

func (d *authorDoc) toAuthor() *Author {
	return &Author{ID: d.ID.Hex(), Name: d.Name, Born: d.Born}
}

func (d *bookDoc) toBook() *Book {
	return &Book{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Published: d.Published,
		AuthorID:  d.Author.Hex(),
		Genres:    d.Genres,
	}
}

func (d *userDoc) toUser() *User {
	return &User{
		ID:             d.ID.Hex(),
		Username:       d.Username,
		FavoriteGenres: d.FavoriteGenres,
		PasswordHash:   d.PasswordHash,
	}
}

func (s *MongoStore) FindAuthorByID(ctx context.Context, id string) (*Author, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id cannot reference any document.
		return nil, ErrNotFound
	}

	var doc authorDoc
	if err := s.authors.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapFindErr(err)
	}
	return doc.toAuthor(), nil
}

func (s *MongoStore) FindAuthorByName(ctx context.Context, name string) (*Author, error) {
	var doc authorDoc
	if err := s.authors.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		return nil, mapFindErr(err)
	}
	return doc.toAuthor(), nil
}

func (s *MongoStore) FindAllAuthors(ctx context.Context) ([]*Author, error) {
	cursor, err := s.authors.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var docs []authorDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	authors := make([]*Author, 0, len(docs))
	for i := range docs {
		authors = append(authors, docs[i].toAuthor())
	}
	return authors, nil
}

func (s *MongoStore) FindAuthorsByIDs(ctx context.Context, ids []string) (map[string]*Author, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue // malformed reference, resolves to a miss
		}
		oids = append(oids, oid)
	}

	result := make(map[string]*Author, len(oids))
	if len(oids) == 0 {
		return result, nil
	}

	cursor, err := s.authors.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}

	var docs []authorDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	for i := range docs {
		author := docs[i].toAuthor()
		result[author.ID] = author
	}
	return result, nil
}

func (s *MongoStore) SaveAuthor(ctx context.Context, author *Author) error {
	res, err := s.authors.InsertOne(ctx, &authorDoc{Name: author.Name, Born: author.Born})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	author.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (s *MongoStore) UpdateAuthor(ctx context.Context, author *Author) error {
	oid, err := primitive.ObjectIDFromHex(author.ID)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.authors.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"born": author.Born}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) CountAuthors(ctx context.Context) (int32, error) {
	n, err := s.authors.CountDocuments(ctx, bson.M{})
	return clampCount(n), err
}

func (s *MongoStore) FindAllBooks(ctx context.Context) ([]*Book, error) {
	cursor, err := s.books.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var docs []bookDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	books := make([]*Book, 0, len(docs))
	for i := range docs {
		books = append(books, docs[i].toBook())
	}
	return books, nil
}

func (s *MongoStore) FindBooksByAuthor(ctx context.Context, authorID string) ([]*Book, error) {
	oid, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return []*Book{}, nil
	}

	cursor, err := s.books.Find(ctx, bson.M{"author": oid})
	if err != nil {
		return nil, err
	}

	var docs []bookDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	books := make([]*Book, 0, len(docs))
	for i := range docs {
		books = append(books, docs[i].toBook())
	}
	return books, nil
}

func (s *MongoStore) SaveBook(ctx context.Context, book *Book) error {
	authorOID, err := primitive.ObjectIDFromHex(book.AuthorID)
	if err != nil {
		return fmt.Errorf("invalid author reference %q", book.AuthorID)
	}

	genres := book.Genres
	if genres == nil {
		genres = []string{}
	}

	res, err := s.books.InsertOne(ctx, &bookDoc{
		Title:     book.Title,
		Published: book.Published,
		Author:    authorOID,
		Genres:    genres,
	})
	if err != nil {
		return err
	}
	book.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (s *MongoStore) CountBooks(ctx context.Context) (int32, error) {
	n, err := s.books.CountDocuments(ctx, bson.M{})
	return clampCount(n), err
}

func (s *MongoStore) CountBooksByAuthor(ctx context.Context, authorID string) (int32, error) {
	oid, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return 0, nil
	}

	n, err := s.books.CountDocuments(ctx, bson.M{"author": oid})
	return clampCount(n), err
}

func (s *MongoStore) FindUserByID(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc userDoc
	if err := s.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapFindErr(err)
	}
	return doc.toUser(), nil
}

func (s *MongoStore) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	var doc userDoc
	if err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		return nil, mapFindErr(err)
	}
	return doc.toUser(), nil
}

func (s *MongoStore) SaveUser(ctx context.Context, user *User) error {
	genres := user.FavoriteGenres
	if genres == nil {
		genres = []string{}
	}

	res, err := s.users.InsertOne(ctx, &userDoc{
		Username:       user.Username,
		FavoriteGenres: genres,
		PasswordHash:   user.PasswordHash,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	user.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (s *MongoStore) UpdateUser(ctx context.Context, user *User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return ErrNotFound
	}

	genres := user.FavoriteGenres
	if genres == nil {
		genres = []string{}
	}

	res, err := s.users.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"favoriteGenres": genres}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func mapFindErr(err error) error {
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}

// clampCount bounds a document count to the int32 range of the
// schema's Int type instead of silently truncating.
func clampCount(n int64) int32 {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(n)
}
