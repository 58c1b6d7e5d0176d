package store_test

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/abdul-muhaimin-toha/library-management/internal/store"
)

func TestBorrowStore_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("successful create stamps id and timestamp", func(mt *mtest.T) {
		s := store.NewBorrowStore(mt.Coll)

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		bookID := primitive.NewObjectID()
		due := time.Now().AddDate(0, 1, 0)

		record, err := s.Create(context.Background(), bookID, 2, due)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if record.ID.IsZero() {
			t.Error("expected a generated id")
		}
		if record.Book != bookID {
			t.Errorf("book = %v, want %v", record.Book, bookID)
		}
		if record.CreatedAt.IsZero() {
			t.Error("expected createdAt to be stamped")
		}
	})
}

func TestBorrowStore_All(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("returns the full log", func(mt *mtest.T) {
		s := store.NewBorrowStore(mt.Coll)

		bookID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.borrows", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "book", Value: bookID},
				{Key: "quantity", Value: 2},
			},
		))

		records, err := s.All(context.Background())
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("len(records) = %d, want 1", len(records))
		}
		if records[0].Book != bookID {
			t.Errorf("book = %v, want %v", records[0].Book, bookID)
		}
	})
}

func TestBorrowStore_Summaries(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("decodes aggregation rows", func(mt *mtest.T) {
		s := store.NewBorrowStore(mt.Coll)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.borrows", mtest.FirstBatch,
			bson.D{
				{Key: "totalQuantity", Value: 5},
				{Key: "book", Value: bson.D{
					{Key: "title", Value: "Dune"},
					{Key: "isbn", Value: "978-0441172719"},
				}},
			},
			bson.D{
				{Key: "totalQuantity", Value: 2},
				{Key: "book", Value: bson.D{
					{Key: "title", Value: "Foundation"},
					{Key: "isbn", Value: "978-0553293357"},
				}},
			},
		))

		summaries, err := s.Summaries(context.Background())
		if err != nil {
			t.Fatalf("Summaries() error = %v", err)
		}
		if len(summaries) != 2 {
			t.Fatalf("len(summaries) = %d, want 2", len(summaries))
		}
		if summaries[0].Book.Title != "Dune" || summaries[0].TotalQuantity != 5 {
			t.Errorf("unexpected first row: %+v", summaries[0])
		}
	})

	mt.Run("empty log yields empty slice", func(mt *mtest.T) {
		s := store.NewBorrowStore(mt.Coll)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.borrows", mtest.FirstBatch))

		summaries, err := s.Summaries(context.Background())
		if err != nil {
			t.Fatalf("Summaries() error = %v", err)
		}
		if len(summaries) != 0 {
			t.Errorf("len(summaries) = %d, want 0", len(summaries))
		}
	})
}
