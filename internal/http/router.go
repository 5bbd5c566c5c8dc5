package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(CorrelationMiddleware(cfg.Logger))
	router.Use(RequestLogger())
	router.Use(MetricsMiddleware())
	router.Use(Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	if cfg.Authors != nil {
		authors := NewAuthorsController(cfg.Authors)
		api.GET("/authors", authors.GetAll)
		api.GET("/authors/:id", authors.GetByID)
		api.POST("/authors", authors.Create)
	}

	if cfg.Books != nil {
		books := NewBooksController(cfg.Books)
		api.GET("/books", books.GetBooks)
		api.POST("/books", books.Create)
		api.POST("/books/assign-author", books.AssignAuthor)
		api.GET("/books/:id", books.GetByID)
		api.PUT("/books/:id", books.Update)
		api.DELETE("/books/:id", books.Delete)
		api.DELETE("/books/:id/authors/:authorId", books.RemoveAuthor)
	}

	if cfg.Stores != nil {
		stores := NewStoresController(cfg.Stores)
		api.GET("/stores", stores.GetAll)
		api.POST("/stores", stores.Create)
		api.POST("/stores/assign-book", stores.AssignBook)
		api.GET("/stores/:id", stores.GetByID)
		api.GET("/stores/:id/books", stores.GetBooks)
		api.DELETE("/stores/:id/books/:bookId", stores.RemoveBook)
	}

	if cfg.Seed != nil {
		seed := NewSeedController(cfg.Seed)
		api.GET("/database/seed", seed.Seed)
	}

	if cfg.Audit != nil {
		audit := NewAuditController(cfg.Audit)
		api.GET("/audit-logs", audit.GetLogs)
	}

	return router
}
