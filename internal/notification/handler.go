package notification

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jkz07/transcare/middleware"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

// List handles GET /notifications?limit=
func (h *Handler) List(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok || !identity.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "não autenticado"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, unread, err := h.service.List(identity.UserID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao carregar notificações"})
		return
	}
	if items == nil {
		items = []InAppNotification{}
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": items,
		"unread":        unread,
	})
}

// MarkRead handles PATCH /notifications/:id/read
func (h *Handler) MarkRead(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok || !identity.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "não autenticado"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	if err := h.service.MarkRead(uint(id), identity.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notificação não encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao atualizar notificação"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notificação lida"})
}

// MarkAllRead handles PATCH /notifications/read-all
func (h *Handler) MarkAllRead(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok || !identity.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "não autenticado"})
		return
	}

	if err := h.service.MarkAllRead(identity.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao atualizar notificações"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Todas as notificações foram lidas"})
}
