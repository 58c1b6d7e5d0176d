package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abdul-muhaimin-toha/library-management/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateISBN  = errors.New("a book with this ISBN already exists")
	ErrInvalidGenre   = errors.New("genre must be one of: FICTION, NON_FICTION, SCIENCE, HISTORY, BIOGRAPHY, FANTASY")
	ErrNegativeCopies = errors.New("copies cannot be negative")

	// ErrConflict means a conditional write matched no document. Callers
	// re-read to find out why.
	ErrConflict = errors.New("conditional update matched no document")
)

// BookStore owns the catalog collection. Copies and available are only
// ever mutated through its methods.
type BookStore struct {
	Coll *mongo.Collection
}

func NewBookStore(coll *mongo.Collection) *BookStore {
	return &BookStore{Coll: coll}
}

// EnsureIndexes creates the unique ISBN index. The index, not the
// validator, is the last line of defense against duplicate catalog
// entries.
func (s *BookStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.Coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "isbn", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *BookStore) Create(ctx context.Context, book models.Book) (models.Book, error) {
	if !models.IsValidGenre(string(book.Genre)) {
		return models.Book{}, ErrInvalidGenre
	}
	if book.Copies < 0 {
		return models.Book{}, ErrNegativeCopies
	}

	now := time.Now()
	book.ID = primitive.NewObjectID()
	book.CreatedAt = now
	book.UpdatedAt = now
	if book.Copies == 0 {
		book.Available = false
	}

	if _, err := s.Coll.InsertOne(ctx, book); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Book{}, ErrDuplicateISBN
		}
		return models.Book{}, err
	}
	return book, nil
}

func (s *BookStore) Get(ctx context.Context, id primitive.ObjectID) (models.Book, error) {
	var book models.Book
	err := s.Coll.FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Book{}, ErrNotFound
	}
	if err != nil {
		return models.Book{}, err
	}
	return book, nil
}

type ListOptions struct {
	Genre    string
	SortBy   string
	SortDesc bool
	Limit    int64
}

// JSON field names accepted by sortBy, mapped onto their bson fields.
var sortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"author":    "author",
	"genre":     "genre",
	"isbn":      "isbn",
	"copies":    "copies",
	"available": "available",
}

func (s *BookStore) List(ctx context.Context, opts ListOptions) ([]models.Book, error) {
	filter := bson.M{}
	if opts.Genre != "" {
		if !models.IsValidGenre(opts.Genre) {
			return nil, ErrInvalidGenre
		}
		filter["genre"] = opts.Genre
	}

	sortBy, ok := sortFields[opts.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	order := 1
	if opts.SortDesc {
		order = -1
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}

	cursor, err := s.Coll.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: sortBy, Value: order}}).
		SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	books := []models.Book{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *BookStore) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (models.Book, error) {
	if genre, ok := fields["genre"]; ok {
		genreStr, isStr := genre.(string)
		if !isStr || !models.IsValidGenre(genreStr) {
			return models.Book{}, ErrInvalidGenre
		}
	}
	if raw, ok := fields["copies"]; ok {
		copies, isInt := asInt(raw)
		if !isInt || copies < 0 {
			return models.Book{}, ErrNegativeCopies
		}
		fields["copies"] = copies
		// A catalog edit that empties the stock also turns the book off.
		// Raising copies does not force it back on.
		if copies == 0 {
			fields["available"] = false
		}
	}
	fields["updated_at"] = time.Now()

	var updated models.Book
	err := s.Coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Book{}, ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return models.Book{}, ErrDuplicateISBN
	}
	if err != nil {
		return models.Book{}, err
	}
	return updated, nil
}

func (s *BookStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.Coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementCopies subtracts quantity from the book's stock in one
// conditional document write: it matches only while the book is available
// and holds at least quantity copies, so concurrent borrows against the
// same book can never drive copies negative. When the stock hits zero the
// same write flips available to false; it never flips it back to true.
// Returns ErrConflict when the condition did not match.
func (s *BookStore) DecrementCopies(ctx context.Context, id primitive.ObjectID, quantity int) (models.Book, error) {
	filter := bson.M{
		"_id":       id,
		"available": true,
		"copies":    bson.M{"$gte": quantity},
	}
	update := bson.A{
		bson.M{"$set": bson.M{
			"copies":     bson.M{"$subtract": bson.A{"$copies", quantity}},
			"updated_at": "$$NOW",
		}},
		bson.M{"$set": bson.M{
			"available": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$copies", 0}},
				false,
				"$available",
			}},
		}},
	}

	var updated models.Book
	err := s.Coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Book{}, ErrConflict
	}
	if err != nil {
		return models.Book{}, err
	}
	return updated, nil
}

// IncrementCopies adds quantity back to the stock. It is the compensation
// for a borrow whose record insert failed after the decrement; since that
// decrement required available=true, restoring it here cannot re-enable
// an administratively disabled book.
func (s *BookStore) IncrementCopies(ctx context.Context, id primitive.ObjectID, quantity int) error {
	update := bson.A{
		bson.M{"$set": bson.M{
			"copies":     bson.M{"$add": bson.A{"$copies", quantity}},
			"updated_at": "$$NOW",
		}},
		bson.M{"$set": bson.M{
			"available": bson.M{"$cond": bson.A{
				bson.M{"$gt": bson.A{"$copies", 0}},
				true,
				"$available",
			}},
		}},
	}
	result, err := s.Coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// JSON decoding hands numbers over as float64.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
