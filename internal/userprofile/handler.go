package userprofile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jkz07/transcare/middleware"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

// GetMyProfile handles GET /profile.
func (h *Handler) GetMyProfile(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok || !identity.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "não autenticado"})
		return
	}

	profile, err := h.service.Get(identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "usuário não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao carregar o perfil"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateMyProfile handles PUT /profile.
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok || !identity.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "não autenticado"})
		return
	}

	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.service.Update(c.Request.Context(), identity.UserID, input, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Perfil atualizado",
		"profile": profile,
	})
}
