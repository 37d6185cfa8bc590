package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements TextGenerator on Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a Gemini client for the configured model.
func NewGeminiProvider(ctx context.Context, apiKey string, opts ModelOptions) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	model := client.GenerativeModel(opts.name())
	if opts.Temperature > 0 {
		model.SetTemperature(opts.Temperature)
	}

	return &GeminiProvider{client: client, model: model}, nil
}

// JSON returns a generator sharing this client whose model is asked for a
// JSON response body. Callers still have to treat the output as untrusted.
func (p *GeminiProvider) JSON() TextGenerator {
	m := *p.model
	m.GenerationConfig.ResponseMIMEType = "application/json"
	return &GeminiProvider{client: p.client, model: &m}
}

// Close releases the underlying client.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// Generate sends prompt and returns the concatenated text parts of the first candidate.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	return textFromResponse(resp)
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}
