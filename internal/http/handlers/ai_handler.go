// README: Raw model passthrough for ad-hoc prompts.
package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"atlas/internal/ai"
	"atlas/internal/logger"
)

const maxPromptBytes = 16 << 10

type AIHandler struct {
	gen ai.TextGenerator
	log logger.Logger
}

func NewAIHandler(gen ai.TextGenerator, log logger.Logger) *AIHandler {
	return &AIHandler{gen: gen, log: log}
}

// Ask handles POST /api/gemini/ask. The body is the prompt.
func (h *AIHandler) Ask(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPromptBytes+1))
	if err != nil {
		writeError(c, http.StatusBadRequest, "unreadable body")
		return
	}
	if len(body) > maxPromptBytes {
		writeError(c, http.StatusRequestEntityTooLarge, "prompt too large")
		return
	}
	prompt := string(body)
	if strings.TrimSpace(prompt) == "" {
		writeError(c, http.StatusBadRequest, "missing prompt")
		return
	}

	text, err := h.gen.Generate(c.Request.Context(), prompt)
	if err != nil {
		h.log.WithError(err).Warn("ask failed", nil)
		writeError(c, http.StatusBadGateway, "generation failed")
		return
	}
	writeText(c, text)
}
