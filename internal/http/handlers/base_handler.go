// README: Base handler utilities (JSON and text helpers, query text extraction).
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
}

type textRequest struct {
	Text string `json:"text"`
}

type replyResponse struct {
	Reply string `json:"reply"`
}

var errMissingText = errors.New("missing text")

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeText answers 200 with a text/plain body.
func writeText(c *gin.Context, body string) {
	c.String(http.StatusOK, body)
}

// queryText reads ?text= on GET and {"text": ...} otherwise. A present but
// blank text is returned as is; only an absent one is an error.
func queryText(c *gin.Context) (string, error) {
	if c.Request.Method == http.MethodGet {
		text, ok := c.GetQuery("text")
		if !ok {
			return "", errMissingText
		}
		return text, nil
	}
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return "", errors.New("invalid json")
	}
	return req.Text, nil
}

// requiredQuery returns a non-blank query parameter, or writes a 400.
func requiredQuery(c *gin.Context, names ...string) ([]string, bool) {
	vals := make([]string, len(names))
	for i, name := range names {
		v := c.Query(name)
		if strings.TrimSpace(v) == "" {
			writeError(c, http.StatusBadRequest, "missing "+name)
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}
