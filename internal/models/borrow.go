package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BorrowRecord is append-only: no update or delete exists anywhere in the
// codebase, so the borrow log doubles as an audit trail.
type BorrowRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Book      primitive.ObjectID `bson:"book" json:"book"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	DueDate   time.Time          `bson:"due_date" json:"due_date"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

const (
	BorrowEntity = "borrow"
)

type SummaryBook struct {
	Title string `bson:"title" json:"title"`
	ISBN  string `bson:"isbn" json:"isbn"`
}

// BorrowSummary is derived on demand from the borrow log; it is never
// persisted.
type BorrowSummary struct {
	Book          SummaryBook `bson:"book" json:"book"`
	TotalQuantity int         `bson:"totalQuantity" json:"totalQuantity"`
}
