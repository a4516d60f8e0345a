package reports

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jkz07/transcare/internal/agenda"
	"github.com/jkz07/transcare/middleware"
)

type Handler struct {
	agendaSvc *agenda.Service
	exporter  Exporter
}

func NewHandler(agendaSvc *agenda.Service, exporter Exporter) *Handler {
	return &Handler{agendaSvc: agendaSvc, exporter: exporter}
}

// ExportAgenda handles GET /agenda/export?format=csv|xlsx|pdf and streams the
// caller's full agenda as a download.
func (h *Handler) ExportAgenda(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok || !identity.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "não autenticado"})
		return
	}

	format := c.DefaultQuery("format", FormatCSV)

	events, err := h.agendaSvc.ListMine(c.Request.Context(), identity)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "falha ao carregar a agenda"})
		return
	}

	data, filename, contentType, err := h.exporter.Export(format, events)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
