package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/abdul-muhaimin-toha/library-management/internal/models"
)

// BorrowStore appends to the borrow log. There are deliberately no update
// or delete methods: records are immutable once written.
type BorrowStore struct {
	Coll *mongo.Collection
	// BooksColl is the catalog collection name joined by Summaries.
	BooksColl string
}

func NewBorrowStore(coll *mongo.Collection) *BorrowStore {
	return &BorrowStore{Coll: coll, BooksColl: "books"}
}

func (s *BorrowStore) Create(ctx context.Context, bookID primitive.ObjectID, quantity int, dueDate time.Time) (models.BorrowRecord, error) {
	record := models.BorrowRecord{
		ID:        primitive.NewObjectID(),
		Book:      bookID,
		Quantity:  quantity,
		DueDate:   dueDate,
		CreatedAt: time.Now(),
	}
	if _, err := s.Coll.InsertOne(ctx, record); err != nil {
		return models.BorrowRecord{}, err
	}
	return record, nil
}

func (s *BorrowStore) All(ctx context.Context) ([]models.BorrowRecord, error) {
	cursor, err := s.Coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.BorrowRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Summaries groups the borrow log by book, sums quantities and joins the
// catalog for title and ISBN. Books that were never borrowed do not
// appear; books deleted from the catalog drop out at the join. Output is
// sorted by book id so repeated calls agree. Cost is O(borrow records)
// per call; nothing is materialized.
func (s *BorrowStore) Summaries(ctx context.Context) ([]models.BorrowSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":           "$book",
			"totalQuantity": bson.M{"$sum": "$quantity"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         s.BooksColl,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "bookDetails",
		}}},
		{{Key: "$unwind", Value: "$bookDetails"}},
		{{Key: "$project", Value: bson.M{
			"_id":           0,
			"totalQuantity": 1,
			"book": bson.M{
				"title": "$bookDetails.title",
				"isbn":  "$bookDetails.isbn",
			},
		}}},
	}

	cursor, err := s.Coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	summaries := []models.BorrowSummary{}
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}
