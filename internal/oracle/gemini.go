package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const systemPrompt = `You are a scheduling assistant for a dental practice.
You receive blocked dates, the appointments booked on them, and the free slots
available on other days. Propose a new slot for every affected appointment,
choosing only from the listed free slots and keeping each patient's visit as
close as possible to its original date. Respond with a JSON array only, one
object per appointment: {"appointment_id", "new_date" (YYYY-MM-DD),
"new_time" (HH:MM), "confidence" (0..1), "rationale"}.`

// GeminiOracle implements Oracle against Google's Gemini API.
type GeminiOracle struct {
	client  *genai.Client
	modelID string
}

// NewGeminiOracle creates a Gemini-backed oracle.
func NewGeminiOracle(ctx context.Context, apiKey, modelID string) (*GeminiOracle, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("oracle: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("oracle: create gemini client: %w", err)
	}
	return &GeminiOracle{client: client, modelID: modelID}, nil
}

// Recommend serializes the context, queries the model and parses its answer.
func (o *GeminiOracle) Recommend(ctx context.Context, rc RescheduleContext) ([]Recommendation, error) {
	payload, err := json.MarshalIndent(rc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("oracle: marshal context: %w", err)
	}

	model := o.client.GenerativeModel(o.modelID)
	model.SetTemperature(0.2)
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))

	resp, err := model.GenerateContent(ctx, genai.Text(string(payload)))
	if err != nil {
		return nil, fmt.Errorf("oracle: gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return nil, errors.New("oracle: gemini returned no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, errors.New("oracle: gemini returned empty content")
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return ParseRecommendations(text.String())
}

// Close releases the underlying API client.
func (o *GeminiOracle) Close() error {
	if o.client != nil {
		return o.client.Close()
	}
	return nil
}

// ParseRecommendations decodes the model's answer, tolerating markdown code
// fences around the JSON array.
func ParseRecommendations(raw string) ([]Recommendation, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	var recommendations []Recommendation
	if err := json.Unmarshal([]byte(text), &recommendations); err != nil {
		return nil, fmt.Errorf("oracle: unparseable recommendation payload: %w", err)
	}
	return recommendations, nil
}
