package auditlog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jkz07/transcare/middleware"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// GetMyActivity lists the caller's own audit trail.
// GET /auditlogs?action=&status=&from=&to=&page=&limit=
func (h *Handler) GetMyActivity(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok || !identity.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	userID := identity.UserID

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := Filter{
		UserID: &userID,
		Action: c.Query("action"),
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}

	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.FromDate = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			end := t.Add(24*time.Hour - time.Second)
			filter.ToDate = &end
		}
	}

	result, err := h.Service.GetAuditLogs(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch audit logs"})
		return
	}

	c.JSON(http.StatusOK, result)
}
