package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"atlas/internal/logger"
	"atlas/internal/modules/history"
)

type HistoryHandler struct {
	history *history.Service
	log     logger.Logger
}

func NewHistoryHandler(hist *history.Service, log logger.Logger) *HistoryHandler {
	return &HistoryHandler{history: hist, log: log}
}

// Recent handles GET /api/history?limit=.
func (h *HistoryHandler) Recent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := h.history.Recent(c.Request.Context(), limit)
	switch {
	case errors.Is(err, history.ErrNotConfigured):
		writeError(c, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil:
		h.log.WithError(err).Error("history read failed", nil)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"entries": entries})
}
