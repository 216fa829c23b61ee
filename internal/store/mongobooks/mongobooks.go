// Package mongobooks stores books as documents in a MongoDB collection.
// ISBN uniqueness is enforced by a unique index created in EnsureIndexes.
package mongobooks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/5w1tchy/books-service/internal/store"
)

const (
	CollectionName = "book"
	isbnIndexName  = "isbn_unique"
	defaultTimeout = 5 * time.Second
)

type bookDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Author        string             `bson:"author"`
	ISBN          string             `bson:"isbn"`
	PublishedDate time.Time          `bson:"publishedDate"`
}

type Store struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

// Connect dials uri and returns a store over database.book. Close the
// store to disconnect the client.
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	s := New(client, database, timeout)
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}
	return s, nil
}

func New(client *mongo.Client, database string, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Store{
		client:  client,
		coll:    client.Database(database).Collection(CollectionName),
		timeout: timeout,
	}
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the unique isbn index if it is missing.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "isbn", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(isbnIndexName),
	})
	return err
}

func (s *Store) Save(ctx context.Context, rec store.BookRecord) (store.BookRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if rec.ID == "" {
		res, err := s.coll.InsertOne(ctx, toDoc(rec, primitive.NilObjectID))
		if err != nil {
			return store.BookRecord{}, fmt.Errorf("insert book: %w", classify(err))
		}
		oid, ok := res.InsertedID.(primitive.ObjectID)
		if !ok {
			return store.BookRecord{}, fmt.Errorf("insert book: unexpected id type %T", res.InsertedID)
		}
		rec.ID = oid.Hex()
		return rec, nil
	}

	oid, err := primitive.ObjectIDFromHex(rec.ID)
	if err != nil {
		return store.BookRecord{}, store.ErrNotFound
	}
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toDoc(rec, oid))
	if err != nil {
		return store.BookRecord{}, fmt.Errorf("replace book %s: %w", rec.ID, classify(err))
	}
	if res.MatchedCount == 0 {
		return store.BookRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (store.BookRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.BookRecord{}, store.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var doc bookDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return store.BookRecord{}, classify(err)
	}
	return fromDoc(doc), nil
}

// FindAll returns every document ordered by _id, which follows insertion order.
func (s *Store) FindAll(ctx context.Context) ([]store.BookRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]store.BookRecord, 0, 16)
	for cur.Next(ctx) {
		var doc bookDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode book: %w", err)
		}
		out = append(out, fromDoc(doc))
	}
	return out, cur.Err()
}

func (s *Store) Delete(ctx context.Context, rec store.BookRecord) error {
	oid, err := primitive.ObjectIDFromHex(rec.ID)
	if err != nil {
		return store.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete book %s: %w", rec.ID, err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	_, err := s.coll.DeleteMany(ctx, bson.D{})
	return err
}

func classify(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %w", store.ErrDuplicateISBN, err)
	default:
		return err
	}
}

func toDoc(rec store.BookRecord, id primitive.ObjectID) bookDoc {
	return bookDoc{
		ID:            id,
		Title:         rec.Title,
		Author:        rec.Author,
		ISBN:          rec.ISBN,
		PublishedDate: rec.PublishedDate.UTC(),
	}
}

func fromDoc(doc bookDoc) store.BookRecord {
	return store.BookRecord{
		ID:            doc.ID.Hex(),
		Title:         doc.Title,
		Author:        doc.Author,
		ISBN:          doc.ISBN,
		PublishedDate: doc.PublishedDate.UTC(),
	}
}
