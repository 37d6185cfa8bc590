package intent

import "strings"

const (
	fence     = "```"
	jsonFence = "```json"
)

// Sanitize strips one leading code fence (bare or tagged json) and one
// trailing fence, trimming whitespace around each step. Nothing else in the
// text is altered.
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(s, jsonFence):
		s = strings.TrimSpace(s[len(jsonFence):])
	case strings.HasPrefix(s, fence):
		s = strings.TrimSpace(s[len(fence):])
	}

	if strings.HasSuffix(s, fence) {
		s = strings.TrimSpace(s[:len(s)-len(fence)])
	}
	return s
}
