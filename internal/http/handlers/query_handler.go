// README: Text-in/text-out query endpoints: keyword path, smart (model) path and voice commands.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"atlas/internal/modules/history"
	"atlas/internal/service"
)

// MsgVoiceEmpty answers a voice command with no transcribed text.
const MsgVoiceEmpty = "I didn't catch that, please try again."

type QueryHandler struct {
	keyword *service.QueryService
	smart   *service.Dispatcher
	history *history.Service
}

func NewQueryHandler(keyword *service.QueryService, smart *service.Dispatcher, hist *history.Service) *QueryHandler {
	return &QueryHandler{keyword: keyword, smart: smart, history: hist}
}

// Keyword handles GET/POST /api/query.
func (h *QueryHandler) Keyword(c *gin.Context) {
	text, err := queryText(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	reply := h.keyword.Answer(c.Request.Context(), text)
	h.history.Record(c.Request.Context(), history.ChannelKeyword, text, reply, 0)
	writeText(c, reply)
}

// Smart handles GET/POST /api/gemini/smart.
func (h *QueryHandler) Smart(c *gin.Context) {
	text, err := queryText(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	out := h.smart.Dispatch(c.Request.Context(), text)
	h.history.Record(c.Request.Context(), history.ChannelSmart, text, out.Reply, out.Intents)
	writeText(c, out.Reply)
}

// Voice handles POST /api/voice-command.
func (h *QueryHandler) Voice(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(c, http.StatusOK, replyResponse{Reply: MsgVoiceEmpty})
		return
	}

	out := h.smart.Dispatch(c.Request.Context(), req.Text)
	h.history.Record(c.Request.Context(), history.ChannelVoice, req.Text, out.Reply, out.Intents)
	writeJSON(c, http.StatusOK, replyResponse{Reply: out.Reply})
}
