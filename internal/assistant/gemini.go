package assistant

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const geminiModel = "gemini-2.5-flash"

// Sampling parameters are fixed; they are part of the assistant's voice,
// not user-tunable knobs.
var (
	temperature = genai.Ptr[float32](0.7)
	topP        = genai.Ptr[float32](0.95)
	topK        = genai.Ptr[float32](40)
)

// GeminiGenerator is the production Generator over the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
}

// NewGeminiGenerator returns (nil, nil) when no API key is configured;
// the bridge treats a nil Generator as offline without ever touching the
// network.
func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiGenerator{client: client}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, system string, turns []Turn) (string, error) {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		role := genai.Role(genai.RoleUser)
		if t.Role == RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Text, role))
	}

	resp, err := g.client.Models.GenerateContent(ctx, geminiModel, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       temperature,
		TopP:              topP,
		TopK:              topK,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
