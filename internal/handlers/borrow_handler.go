package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abdul-muhaimin-toha/library-management/internal/service"
	"github.com/abdul-muhaimin-toha/library-management/internal/store"
	"github.com/abdul-muhaimin-toha/library-management/internal/utils"
)

type BorrowHandler struct {
	Service *service.BorrowService
	Borrows *store.BorrowStore
}

func NewBorrowHandler(svc *service.BorrowService, borrows *store.BorrowStore) *BorrowHandler {
	return &BorrowHandler{Service: svc, Borrows: borrows}
}

type BorrowRequest struct {
	Book     string `json:"book" validate:"required"`
	Quantity *int   `json:"quantity" validate:"required,min=1"`
	DueDate  string `json:"dueDate" validate:"required"`
}

// POST /borrow
func (h *BorrowHandler) BorrowBook(w http.ResponseWriter, r *http.Request) {
	var req BorrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.JSONError(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	bookID, err := primitive.ObjectIDFromHex(req.Book)
	if err != nil {
		utils.JSONError(w, "Book not found", http.StatusNotFound)
		return
	}
	dueDate, err := time.Parse(time.RFC3339, req.DueDate)
	if err != nil {
		utils.JSONError(w, "Invalid date format for dueDate", http.StatusBadRequest)
		return
	}

	record, err := h.Service.Borrow(r.Context(), bookID, *req.Quantity, dueDate)
	if err != nil {
		var stockErr *service.InsufficientStockError
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			utils.JSONError(w, err.Error(), http.StatusNotFound)
		case errors.As(err, &stockErr):
			utils.JSONError(w, stockErr.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrBookUnavailable):
			utils.JSONError(w, err.Error(), http.StatusBadRequest)
		default:
			utils.JSONError(w, "An error occurred while borrowing", http.StatusInternalServerError)
		}
		return
	}

	utils.JSONRespond(w, http.StatusOK, "Book borrowed successfully", record)
}

// GET /borrow
func (h *BorrowHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.Borrows.Summaries(r.Context())
	if err != nil {
		utils.JSONError(w, "An error occurred while retrieving summary", http.StatusInternalServerError)
		return
	}

	utils.JSONRespond(w, http.StatusOK, "Borrowed books summary retrieved successfully", summaries)
}
