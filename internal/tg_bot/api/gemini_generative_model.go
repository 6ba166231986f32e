package api

import (
	"context"
	"fmt"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/models"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
	"strings"
	"time"
)

// Fallback replies of generative models. Chat never returns an error, only one of these.
const (
	GenerativeUnavailableText = "I'm sorry, the AI service is not available right now."
	GenerativeEmptyText       = "I'm sorry, I couldn't generate a response."
	GenerativeFailedText      = "I'm sorry, something went wrong with the AI service."
)

// IsGenerativeFallback reports whether text is one of the fallback replies,
// that is whether the model failed to answer.
func IsGenerativeFallback(text string) bool {
	switch text {
	case GenerativeUnavailableText, GenerativeEmptyText, GenerativeFailedText:
		return true
	}
	return false
}

// generativeTimeout bounds one generation call.
const generativeTimeout = 30 * time.Second

const geminiTopP float32 = 0.95

// GeminiAPI talks to Google Gemini through the Gen AI SDK.
type GeminiAPI struct {
	client      *genai.Client // SDK client
	modelName   string        // model to generate with (e.g. gemini-2.0-flash)
	maxTokens   int           // maximum output tokens, unlimited when zero
	temperature float32       // sampling temperature, 0..1
}

// NewGeminiAPI creates a Gemini client.
// Arguments:
//   - apiKey: Gemini API key.
//   - modelName: model name.
//   - baseURL: API base URL override, empty for the public endpoint.
//   - maxTokens: maximum output tokens, 0 for the model default.
//   - temperature: sampling temperature, ignored outside 0..1.
//
// Returns a pointer to a GeminiAPI or an error if the SDK client cannot be created.
func NewGeminiAPI(apiKey, modelName, baseURL string, maxTokens int, temperature float32) (*GeminiAPI, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiAPI{
		client:      client,
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
	}, nil
}

// Chat sends the conversation to Gemini and returns the first candidate text.
// System turns become the system instruction, assistant turns the model role.
func (g *GeminiAPI) Chat(ctx context.Context, messages []models.Message) string {
	if g == nil || g.client == nil {
		return GenerativeUnavailableText
	}

	ctx, cancel := context.WithTimeout(ctx, generativeTimeout)
	defer cancel()

	config := &genai.GenerateContentConfig{}
	topP := geminiTopP
	config.TopP = &topP
	if g.maxTokens > 0 {
		config.MaxOutputTokens = int32(g.maxTokens)
	}
	if g.temperature >= 0 && g.temperature <= 1 {
		temperature := g.temperature
		config.Temperature = &temperature
	}

	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		part := &genai.Part{Text: msg.Content}
		switch msg.Role {
		case models.RoleSystem:
			if config.SystemInstruction == nil {
				config.SystemInstruction = &genai.Content{}
			}
			config.SystemInstruction.Parts = append(config.SystemInstruction.Parts, part)
			continue
		case models.RoleAssistant:
			contents = append(contents, &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{part}})
		default:
			contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: []*genai.Part{part}})
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		logrus.WithError(err).Error("Gemini API error")
		return GenerativeFailedText
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		logrus.Warn("Gemini API returned no usable candidates")
		return GenerativeEmptyText
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		logrus.Warn("Gemini API returned an empty candidate")
		return GenerativeEmptyText
	}
	return text
}
