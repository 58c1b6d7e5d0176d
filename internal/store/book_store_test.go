package store_test

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/abdul-muhaimin-toha/library-management/internal/models"
	"github.com/abdul-muhaimin-toha/library-management/internal/store"
)

func TestBookStore_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("successful create defaults available off when copies is zero", func(mt *mtest.T) {
		s := store.NewBookStore(mt.Coll)

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		created, err := s.Create(context.Background(), models.Book{
			Title:     "Dune",
			Author:    "Frank Herbert",
			Genre:     models.GenreFantasy,
			ISBN:      "978-0441172719",
			Copies:    0,
			Available: true,
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if created.Available {
			t.Error("expected available=false for a book with zero copies")
		}
		if created.ID.IsZero() {
			t.Error("expected a generated id")
		}
	})

	mt.Run("duplicate isbn", func(mt *mtest.T) {
		s := store.NewBookStore(mt.Coll)

		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := s.Create(context.Background(), models.Book{
			Title:     "Dune",
			Author:    "Frank Herbert",
			Genre:     models.GenreFantasy,
			ISBN:      "978-0441172719",
			Copies:    3,
			Available: true,
		})
		if !errors.Is(err, store.ErrDuplicateISBN) {
			t.Errorf("Create() error = %v, want ErrDuplicateISBN", err)
		}
	})

	mt.Run("invalid genre rejected before insert", func(mt *mtest.T) {
		s := store.NewBookStore(mt.Coll)

		_, err := s.Create(context.Background(), models.Book{
			Title:  "Dune",
			Author: "Frank Herbert",
			Genre:  "ROMANCE",
			ISBN:   "978-0441172719",
			Copies: 3,
		})
		if !errors.Is(err, store.ErrInvalidGenre) {
			t.Errorf("Create() error = %v, want ErrInvalidGenre", err)
		}
	})

	mt.Run("negative copies rejected before insert", func(mt *mtest.T) {
		s := store.NewBookStore(mt.Coll)

		_, err := s.Create(context.Background(), models.Book{
			Title:  "Dune",
			Author: "Frank Herbert",
			Genre:  models.GenreFantasy,
			ISBN:   "978-0441172719",
			Copies: -1,
		})
		if !errors.Is(err, store.ErrNegativeCopies) {
			t.Errorf("Create() error = %v, want ErrNegativeCopies", err)
		}
	})
}

func TestBookStore_Get(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("missing book maps to ErrNotFound", func(mt *mtest.T) {
		s := store.NewBookStore(mt.Coll)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.books", mtest.FirstBatch))

		_, err := s.Get(context.Background(), primitive.NewObjectID())
		if !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Get() error = %v, want ErrNotFound", err)
		}
	})
}

func TestBookStore_DecrementCopies(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("successful decrement returns updated book", func(mt *mtest.T) {
		s := store.NewBookStore(mt.Coll)

		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "title", Value: "Dune"},
			{Key: "isbn", Value: "978-0441172719"},
			{Key: "copies", Value: 2},
			{Key: "available", Value: true},
		}}))

		updated, err := s.DecrementCopies(context.Background(), id, 3)
		if err != nil {
			t.Fatalf("DecrementCopies() error = %v", err)
		}
		if updated.Copies != 2 {
			t.Errorf("copies = %d, want 2", updated.Copies)
		}
	})

	mt.Run("unmatched condition maps to ErrConflict", func(mt *mtest.T) {
		s := store.NewBookStore(mt.Coll)

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		_, err := s.DecrementCopies(context.Background(), primitive.NewObjectID(), 3)
		if !errors.Is(err, store.ErrConflict) {
			t.Errorf("DecrementCopies() error = %v, want ErrConflict", err)
		}
	})
}

func TestBookStore_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("invalid genre rejected before write", func(mt *mtest.T) {
		s := store.NewBookStore(mt.Coll)

		_, err := s.Update(context.Background(), primitive.NewObjectID(), bson.M{"genre": "ROMANCE"})
		if !errors.Is(err, store.ErrInvalidGenre) {
			t.Errorf("Update() error = %v, want ErrInvalidGenre", err)
		}
	})

	mt.Run("negative copies rejected before write", func(mt *mtest.T) {
		s := store.NewBookStore(mt.Coll)

		// JSON-decoded payloads carry numbers as float64.
		_, err := s.Update(context.Background(), primitive.NewObjectID(), bson.M{"copies": float64(-2)})
		if !errors.Is(err, store.ErrNegativeCopies) {
			t.Errorf("Update() error = %v, want ErrNegativeCopies", err)
		}
	})

	mt.Run("fractional copies rejected", func(mt *mtest.T) {
		s := store.NewBookStore(mt.Coll)

		_, err := s.Update(context.Background(), primitive.NewObjectID(), bson.M{"copies": 2.5})
		if !errors.Is(err, store.ErrNegativeCopies) {
			t.Errorf("Update() error = %v, want ErrNegativeCopies", err)
		}
	})
}
