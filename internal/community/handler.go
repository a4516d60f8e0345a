package community

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jkz07/transcare/middleware"
)

type Handler struct{ service *Service }

func NewHandler(s *Service) *Handler { return &Handler{s} }

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrEventFull):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func identityFrom(c *gin.Context) (middleware.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok || !identity.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "não autenticado"})
		return middleware.Identity{}, false
	}
	return identity, true
}

// ListEvents handles GET /community/events?tab=upcoming|past&search=&limit=&offset=
func (h *Handler) ListEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var events []CommunityEvent
	var err error
	switch c.DefaultQuery("tab", "upcoming") {
	case "past":
		events, err = h.service.ListPast(limit, time.Now())
	case "upcoming":
		events, err = h.service.ListUpcoming(c.Query("search"), limit, offset, time.Now())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "tab deve ser upcoming ou past"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	if events == nil {
		events = []CommunityEvent{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetEvent handles GET /community/events/:id
func (h *Handler) GetEvent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var viewerID uint
	if identity, ok := middleware.IdentityFromContext(c); ok {
		viewerID = identity.UserID
	}

	event, err := h.service.GetEvent(uint(id), viewerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

// CreateEvent handles POST /community/events
func (h *Handler) CreateEvent(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.service.CreateEvent(c.Request.Context(), &req, identity.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// UpdateEvent handles PUT /community/events/:id
func (h *Handler) UpdateEvent(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.service.UpdateEvent(c.Request.Context(), uint(id), &req, identity.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

// DeleteEvent handles DELETE /community/events/:id
func (h *Handler) DeleteEvent(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	if err := h.service.DeleteEvent(c.Request.Context(), uint(id), identity.UserID, middleware.GetIPFromContext(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Evento removido"})
}

// Attend handles POST /community/events/:id/attendance
func (h *Handler) Attend(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	event, err := h.service.Attend(c.Request.Context(), uint(id), identity.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Presença confirmada", "event": event})
}

// Unattend handles DELETE /community/events/:id/attendance
func (h *Handler) Unattend(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	event, err := h.service.Unattend(c.Request.Context(), uint(id), identity.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Presença cancelada", "event": event})
}
