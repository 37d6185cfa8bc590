package intent

import (
	"strings"
)

// BuildExtractionPrompt embeds query verbatim into the extraction contract:
// a JSON array of objects with the six record fields, the closed kind
// enumeration, and no prose or markdown around it.
func BuildExtractionPrompt(query string) string {
	kinds := make([]string, len(Kinds))
	for i, k := range Kinds {
		kinds[i] = string(k)
	}

	var b strings.Builder
	b.WriteString("You are a smart assistant. Analyze the user query exactly: \"")
	b.WriteString(query)
	b.WriteString("\".\n")
	b.WriteString("Extract ALL intents present, and return ONLY a JSON array of objects with these fields:\n")
	b.WriteString("{\n")
	b.WriteString("  \"intent\": \"" + strings.Join(kinds, "|") + "\",\n")
	b.WriteString("  \"place\": \"<location name or null>\",\n")
	b.WriteString("  \"fromPlace\": \"<origin or null>\",\n")
	b.WriteString("  \"toPlace\": \"<destination or null>\",\n")
	b.WriteString("  \"poiType\": \"<type of point of interest or null>\",\n")
	b.WriteString("  \"response\": \"<free-form answer text or null>\"\n")
	b.WriteString("}\n")
	b.WriteString("For example:\n")
	b.WriteString("[\n")
	b.WriteString("  {\"intent\":\"poi_search\", \"poiType\":\"coffee shop\", \"place\":\"Pune\", \"fromPlace\":null, \"toPlace\":null, \"response\":null},\n")
	b.WriteString("  {\"intent\":\"general\", \"response\":\"Coffee shops sell coffee beverages.\", \"place\":null, \"fromPlace\":null, \"toPlace\":null, \"poiType\":null}\n")
	b.WriteString("]\n")
	b.WriteString("Do not add any explanation or markdown formatting. Only raw JSON array.")
	return b.String()
}
