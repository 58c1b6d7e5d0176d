package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MetricsHandler struct {
	BookCol   *mongo.Collection
	BorrowCol *mongo.Collection
}

// GET /admin/metrics
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	todayStart := time.Now().Truncate(24 * time.Hour)

	// 1. Catalog size
	totalBooks, _ := h.BookCol.CountDocuments(ctx, bson.M{})

	// 2. Titles open for borrowing
	availableBooks, _ := h.BookCol.CountDocuments(ctx, bson.M{"available": true})

	// 3. Copies still on the shelf
	var copiesInStock int64
	cursor, err := h.BookCol.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$copies"},
		}}},
	})
	if err == nil {
		var totals []struct {
			Total int64 `bson:"total"`
		}
		if cursor.All(ctx, &totals) == nil && len(totals) > 0 {
			copiesInStock = totals[0].Total
		}
	}

	// 4. Borrows today
	borrowsToday, _ := h.BorrowCol.CountDocuments(ctx, bson.M{
		"created_at": bson.M{"$gte": todayStart},
	})

	// 5. Distinct titles ever borrowed
	borrowedBooks, _ := h.BorrowCol.Distinct(ctx, "book", bson.M{})

	json.NewEncoder(w).Encode(map[string]interface{}{
		"total_books":     totalBooks,
		"available_books": availableBooks,
		"copies_in_stock": copiesInStock,
		"borrows_today":   borrowsToday,
		"borrowed_titles": len(borrowedBooks),
	})
}
