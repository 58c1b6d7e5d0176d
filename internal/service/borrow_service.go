// Package service holds the borrow transaction: the one multi-entity
// operation in the system, and the only place concurrent requests can
// race over shared state.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abdul-muhaimin-toha/library-management/internal/constants"
	"github.com/abdul-muhaimin-toha/library-management/internal/models"
	"github.com/abdul-muhaimin-toha/library-management/internal/store"
)

var (
	ErrBookNotFound    = errors.New("Book not found")
	ErrBookUnavailable = errors.New("Book is not available for borrow")
	ErrUpdateFailed    = errors.New("Failed to update book copies after borrowing")
)

// InsufficientStockError reports how many copies the caller could still
// have borrowed.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Only %d copies available", e.Available)
}

type BookStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (models.Book, error)
	DecrementCopies(ctx context.Context, id primitive.ObjectID, quantity int) (models.Book, error)
	IncrementCopies(ctx context.Context, id primitive.ObjectID, quantity int) error
}

type BorrowStore interface {
	Create(ctx context.Context, bookID primitive.ObjectID, quantity int, dueDate time.Time) (models.BorrowRecord, error)
}

type AuditLogger interface {
	Log(ctx context.Context, entity, action string, data any) error
}

type BorrowService struct {
	Books   BookStore
	Borrows BorrowStore
	Audit   AuditLogger
}

func NewBorrowService(books BookStore, borrows BorrowStore, audit AuditLogger) *BorrowService {
	return &BorrowService{Books: books, Borrows: borrows, Audit: audit}
}

// Borrow validates the request against current stock, decrements the
// book's copies and appends a borrow record.
//
// The decrement happens BEFORE the record insert, through a single
// conditional write that re-checks stock and availability as it applies.
// A failed insert is compensated by adding the copies back, so neither
// side of the transaction can outlive the other. The pre-checks below
// exist only to classify errors without side effects; the conditional
// write is what actually keeps concurrent borrows from overselling.
func (s *BorrowService) Borrow(ctx context.Context, bookID primitive.ObjectID, quantity int, dueDate time.Time) (models.BorrowRecord, error) {
	book, err := s.Books.Get(ctx, bookID)
	if errors.Is(err, store.ErrNotFound) {
		return models.BorrowRecord{}, ErrBookNotFound
	}
	if err != nil {
		return models.BorrowRecord{}, err
	}

	if quantity > book.Copies {
		return models.BorrowRecord{}, &InsufficientStockError{Available: book.Copies}
	}
	if !book.Available {
		return models.BorrowRecord{}, ErrBookUnavailable
	}

	if _, err := s.Books.DecrementCopies(ctx, bookID, quantity); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Lost a race since the checks above; re-read so the caller
			// sees the same taxonomy as the unconcurrent path.
			return models.BorrowRecord{}, s.classifyConflict(ctx, bookID, quantity)
		}
		return models.BorrowRecord{}, ErrUpdateFailed
	}

	record, err := s.Borrows.Create(ctx, bookID, quantity, dueDate)
	if err != nil {
		if incErr := s.Books.IncrementCopies(ctx, bookID, quantity); incErr != nil {
			return models.BorrowRecord{}, errors.Join(err, incErr)
		}
		return models.BorrowRecord{}, err
	}

	if s.Audit != nil {
		s.Audit.Log(ctx, models.BorrowEntity, constants.Borrow, record)
	}
	return record, nil
}

func (s *BorrowService) classifyConflict(ctx context.Context, bookID primitive.ObjectID, quantity int) error {
	book, err := s.Books.Get(ctx, bookID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrBookNotFound
	}
	if err != nil {
		return ErrUpdateFailed
	}
	if quantity > book.Copies {
		return &InsufficientStockError{Available: book.Copies}
	}
	if !book.Available {
		return ErrBookUnavailable
	}
	return ErrUpdateFailed
}
