package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/services"
)

type BooksController struct {
	service BookService
}

func NewBooksController(service BookService) *BooksController {
	return &BooksController{service: service}
}

// GetBooks returns a filtered, sorted page of books
// GET /api/books?title=&authorName=&page=&pageSize=&sortBy=&desc=
func (bc *BooksController) GetBooks(c *gin.Context) {
	var filter services.BookFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondBadRequest(c, "invalid query parameters")
		return
	}

	page, err := bc.service.GetBooks(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "get books")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetByID returns book details with authors and stores
// GET /api/books/:id
func (bc *BooksController) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// Create adds a book
// POST /api/books
func (bc *BooksController) Create(c *gin.Context) {
	var req services.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "isbn and title are required")
		return
	}

	book, err := bc.service.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "create book")
		return
	}
	respondCreated(c, book)
}

// Update replaces a book's fields and optionally its links
// PUT /api/books/:id
func (bc *BooksController) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}

	book, err := bc.service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, "update book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// Delete removes a book and its links
// DELETE /api/books/:id
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete book")
		return
	}
	c.Status(http.StatusNoContent)
}

// AssignAuthor links an author to a book
// POST /api/books/assign-author
func (bc *BooksController) AssignAuthor(c *gin.Context) {
	var req services.AssignAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "bookId and authorId are required")
		return
	}

	book, err := bc.service.AssignAuthor(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "assign author")
		return
	}
	c.JSON(http.StatusOK, book)
}

// RemoveAuthor unlinks an author from a book
// DELETE /api/books/:id/authors/:authorId
func (bc *BooksController) RemoveAuthor(c *gin.Context) {
	bookID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	authorID, ok := parseUUIDParam(c, "authorId")
	if !ok {
		return
	}

	book, err := bc.service.RemoveAuthor(c.Request.Context(), bookID, authorID)
	if err != nil {
		respondServiceError(c, err, "remove author")
		return
	}
	c.JSON(http.StatusOK, book)
}
