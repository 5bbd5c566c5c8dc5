package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/services"
)

type StoresController struct {
	service StoreService
}

func NewStoresController(service StoreService) *StoresController {
	return &StoresController{service: service}
}

// GET /api/stores
func (sc *StoresController) GetAll(c *gin.Context) {
	stores, err := sc.service.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "get stores")
		return
	}
	c.JSON(http.StatusOK, stores)
}

// GET /api/stores/:id
func (sc *StoresController) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	store, err := sc.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get store")
		return
	}
	c.JSON(http.StatusOK, store)
}

// GetBooks lists a store's books with stock quantities
// GET /api/stores/:id/books
func (sc *StoresController) GetBooks(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	books, err := sc.service.GetBooks(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get store books")
		return
	}
	c.JSON(http.StatusOK, books)
}

// POST /api/stores
func (sc *StoresController) Create(c *gin.Context) {
	var req services.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	store, err := sc.service.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "create store")
		return
	}
	respondCreated(c, store)
}

// AssignBook stocks a book in a store, updating quantity when already stocked
// POST /api/stores/assign-book
func (sc *StoresController) AssignBook(c *gin.Context) {
	var req services.AssignBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "storeId and bookId are required")
		return
	}

	store, err := sc.service.AssignBook(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "assign book")
		return
	}
	c.JSON(http.StatusOK, store)
}

// DELETE /api/stores/:id/books/:bookId
func (sc *StoresController) RemoveBook(c *gin.Context) {
	storeID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	bookID, ok := parseUUIDParam(c, "bookId")
	if !ok {
		return
	}

	store, err := sc.service.RemoveBook(c.Request.Context(), storeID, bookID)
	if err != nil {
		respondServiceError(c, err, "remove book")
		return
	}
	c.JSON(http.StatusOK, store)
}
