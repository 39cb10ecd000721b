package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Directions handles GET /api/directions/route.
func (h *Handler) Directions(c *gin.Context) {
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required"})
		return
	}

	route, err := h.directions.Route(c.Request.Context(), from, to)
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "Failed to fetch route", "from", from, "to", to, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch route"})
		return
	}

	c.JSON(http.StatusOK, route)
}
