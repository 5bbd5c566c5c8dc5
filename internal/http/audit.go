package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

type AuditController struct {
	reader AuditReader
}

func NewAuditController(reader AuditReader) *AuditController {
	return &AuditController{reader: reader}
}

// GetLogs returns audit rows newest first
// GET /api/audit-logs?entity=&limit=&offset=
func (ac *AuditController) GetLogs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)))
	if err != nil || limit < 1 || limit > maxAuditLimit {
		respondBadRequest(c, "limit must be between 1 and "+strconv.Itoa(maxAuditLimit))
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		respondBadRequest(c, "offset must be zero or greater")
		return
	}

	logs, total, err := ac.reader.GetLogs(c.Request.Context(), c.Query("entity"), limit, offset)
	if err != nil {
		respondInternalError(c, err, "get audit logs")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:       logs,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
		HasMore:    int64(offset+len(logs)) < total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	})
}
