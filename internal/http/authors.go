package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/services"
)

type AuthorsController struct {
	service AuthorService
}

func NewAuthorsController(service AuthorService) *AuthorsController {
	return &AuthorsController{service: service}
}

// GetAll returns every author ordered by name
// GET /api/authors
func (ac *AuthorsController) GetAll(c *gin.Context) {
	authors, err := ac.service.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "get authors")
		return
	}
	c.JSON(http.StatusOK, authors)
}

// GetByID returns one author
// GET /api/authors/:id
func (ac *AuthorsController) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get author")
		return
	}
	c.JSON(http.StatusOK, author)
}

// Create adds an author
// POST /api/authors
func (ac *AuthorsController) Create(c *gin.Context) {
	var req services.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "firstName and lastName are required")
		return
	}

	author, err := ac.service.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "create author")
		return
	}
	respondCreated(c, author)
}
