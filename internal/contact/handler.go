package contact

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ service *Service }

func NewHandler(s *Service) *Handler { return &Handler{s} }

// Submit handles POST /contact.
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.service.Submit(req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao enviar a mensagem"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Mensagem recebida. Responderemos em breve."})
}
