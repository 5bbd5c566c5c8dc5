package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/services"
)

type SeedController struct {
	service SeedService
}

func NewSeedController(service SeedService) *SeedController {
	return &SeedController{service: service}
}

// Seed imports the configured seed file once. Every failure is a 500.
// GET /api/database/seed
func (sc *SeedController) Seed(c *gin.Context) {
	message, err := sc.service.Seed(c.Request.Context())
	if err != nil {
		var svcErr *services.Error
		if !errors.As(err, &svcErr) {
			respondInternalError(c, err, "seed database")
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: svcErr.Error(), Code: string(svcErr.Kind)})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}
