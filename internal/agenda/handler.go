package agenda

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jkz07/transcare/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func identityFrom(c *gin.Context) (middleware.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok || !identity.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return middleware.Identity{}, false
	}
	return identity, true
}

// respondError maps the recoverable taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	if ve, ok := AsValidationError(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid event", "fields": ve.Fields})
		return
	}
	switch {
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not own this event"})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
	case errors.Is(err, ErrRemoteUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event store unavailable, try again"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// ListEvents - GET /agenda/events
func (h *Handler) ListEvents(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	events, err := h.Service.ListMine(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}
	if events == nil {
		events = []Event{}
	}
	c.JSON(http.StatusOK, events)
}

// GetEvent - GET /agenda/events/:id
func (h *Handler) GetEvent(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	event, err := h.Service.Get(c.Request.Context(), uint(id), identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// CreateEvent - POST /agenda/events
func (h *Handler) CreateEvent(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var draft Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	event, listing, err := h.Service.Create(c.Request.Context(), draft, identity, ip)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": event, "events": listing})
}

// UpdateEvent - PUT /agenda/events/:id
func (h *Handler) UpdateEvent(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	var draft Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	event, listing, err := h.Service.Update(c.Request.Context(), uint(id), draft, identity, ip)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event, "events": listing})
}

// DeleteEvent - DELETE /agenda/events/:id
func (h *Handler) DeleteEvent(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	listing, err := h.Service.Delete(c.Request.Context(), uint(id), identity, ip)
	if err != nil {
		respondError(c, err)
		return
	}

	if listing == nil {
		listing = []Event{}
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted", "events": listing})
}

// Calendar - GET /agenda/calendar?month=YYYY-MM
func (h *Handler) Calendar(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	month := c.Query("month")
	if month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
			return
		}
	}

	index, err := h.Service.Calendar(c.Request.Context(), identity, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, index)
}

// Day - GET /agenda/day/:date
func (h *Handler) Day(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	date := c.Param("date")
	if !validDate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	events, err := h.Service.Day(c.Request.Context(), identity, date)
	if err != nil {
		respondError(c, err)
		return
	}
	if events == nil {
		events = []Event{}
	}
	c.JSON(http.StatusOK, events)
}

// Upcoming - GET /agenda/upcoming?limit=
func (h *Handler) Upcoming(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	events, err := h.Service.UpcomingEvents(c.Request.Context(), identity, time.Now(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if events == nil {
		events = []Event{}
	}
	c.JSON(http.StatusOK, events)
}

// Past - GET /agenda/past?limit=
func (h *Handler) Past(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	events, err := h.Service.PastEvents(c.Request.Context(), identity, time.Now(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if events == nil {
		events = []Event{}
	}
	c.JSON(http.StatusOK, events)
}
