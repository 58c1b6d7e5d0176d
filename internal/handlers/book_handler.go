package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abdul-muhaimin-toha/library-management/internal/constants"
	"github.com/abdul-muhaimin-toha/library-management/internal/models"
	"github.com/abdul-muhaimin-toha/library-management/internal/store"
	"github.com/abdul-muhaimin-toha/library-management/internal/utils"
)

var validate = validator.New()

type BookHandler struct {
	Store       *store.BookStore
	AuditLogger utils.Logger
}

func NewBookHandler(s *store.BookStore, logger utils.Logger) *BookHandler {
	return &BookHandler{Store: s, AuditLogger: logger}
}

type CreateBookRequest struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Genre       string `json:"genre" validate:"required,oneof=FICTION NON_FICTION SCIENCE HISTORY BIOGRAPHY FANTASY"`
	ISBN        string `json:"isbn" validate:"required"`
	Description string `json:"description"`
	Copies      *int   `json:"copies" validate:"required,gte=0"`
	Available   *bool  `json:"available"`
}

// POST /books
func (h *BookHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.JSONError(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	book := models.Book{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       models.Genre(req.Genre),
		ISBN:        req.ISBN,
		Description: req.Description,
		Copies:      *req.Copies,
		Available:   true,
	}
	if req.Available != nil {
		book.Available = *req.Available
	}

	created, err := h.Store.Create(r.Context(), book)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateISBN) || errors.Is(err, store.ErrInvalidGenre) || errors.Is(err, store.ErrNegativeCopies) {
			utils.JSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		utils.JSONError(w, "Insert failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.AuditLogger.Log(r.Context(), models.BookEntity, constants.Create, created)

	utils.JSONRespond(w, http.StatusCreated, "Book created successfully", created)
}

// GET /books?filter=<genre>&sortBy=<field>&sort=asc|desc&limit=<n>
func (h *BookHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := int64(10)
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			utils.JSONError(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	books, err := h.Store.List(r.Context(), store.ListOptions{
		Genre:    query.Get("filter"),
		SortBy:   query.Get("sortBy"),
		SortDesc: query.Get("sort") == "desc",
		Limit:    limit,
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalidGenre) {
			utils.JSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		utils.JSONError(w, "An error occurred while retrieving books", http.StatusInternalServerError)
		return
	}

	utils.JSONRespond(w, http.StatusOK, "Books retrieved successfully", books)
}

// GET /books/{id}
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Book not found", http.StatusNotFound)
		return
	}

	book, err := h.Store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.JSONError(w, "Book not found", http.StatusNotFound)
			return
		}
		utils.JSONError(w, "An error occurred while retrieving book", http.StatusInternalServerError)
		return
	}

	utils.JSONRespond(w, http.StatusOK, "Book retrieved successfully", book)
}

// PATCH /books/{id}
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Book not found", http.StatusNotFound)
		return
	}

	var updateData map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	for _, field := range []string{"id", "_id", "createdAt", "created_at", "updatedAt", "updated_at"} {
		delete(updateData, field)
	}
	if len(updateData) == 0 {
		utils.JSONError(w, "No update fields provided", http.StatusBadRequest)
		return
	}

	updated, err := h.Store.Update(r.Context(), id, bson.M(updateData))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			utils.JSONError(w, "Book not found", http.StatusNotFound)
		case errors.Is(err, store.ErrDuplicateISBN), errors.Is(err, store.ErrInvalidGenre), errors.Is(err, store.ErrNegativeCopies):
			utils.JSONError(w, err.Error(), http.StatusBadRequest)
		default:
			utils.JSONError(w, "Update failed: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	h.AuditLogger.Log(r.Context(), models.BookEntity, constants.Update, updated)

	utils.JSONRespond(w, http.StatusOK, "Book updated successfully", updated)
}

// DELETE /books/{id}
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.JSONError(w, "Book not found", http.StatusNotFound)
		return
	}

	if err := h.Store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.JSONError(w, "Book not found", http.StatusNotFound)
			return
		}
		utils.JSONError(w, "Delete failed", http.StatusInternalServerError)
		return
	}

	h.AuditLogger.Log(r.Context(), models.BookEntity, constants.Delete, id.Hex())

	utils.JSONRespond(w, http.StatusOK, "Book deleted successfully", nil)
}
