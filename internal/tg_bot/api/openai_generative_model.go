package api

import (
	"context"
	"fmt"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/models"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"strings"
)

// Base URLs of the OpenAI compatible providers.
const (
	DeepSeekBaseURL   = "https://api.deepseek.com/v1"
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"
)

// OpenAICompatibleAPI talks to any provider exposing the OpenAI chat completions API.
type OpenAICompatibleAPI struct {
	client      *openai.Client // go-openai client pointed at the provider
	provider    string         // provider name for logs
	modelName   string         // model to generate with
	maxTokens   int            // maximum output tokens, provider default when zero
	temperature float32        // sampling temperature
}

// newOpenAICompatibleAPI creates a client for provider at baseURL.
func newOpenAICompatibleAPI(provider, apiKey, modelName, baseURL string, maxTokens int, temperature float32) (*OpenAICompatibleAPI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s API key is empty", provider)
	}
	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = baseURL

	return &OpenAICompatibleAPI{
		client:      openai.NewClientWithConfig(clientConfig),
		provider:    provider,
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
	}, nil
}

// NewDeepSeekAPI creates a DeepSeek client. An empty baseURL selects DeepSeekBaseURL.
func NewDeepSeekAPI(apiKey, modelName, baseURL string, maxTokens int, temperature float32) (*OpenAICompatibleAPI, error) {
	if baseURL == "" {
		baseURL = DeepSeekBaseURL
	}
	return newOpenAICompatibleAPI("deepseek", apiKey, modelName, baseURL, maxTokens, temperature)
}

// NewOpenRouterAPI creates an OpenRouter client. An empty baseURL selects OpenRouterBaseURL.
func NewOpenRouterAPI(apiKey, modelName, baseURL string, maxTokens int, temperature float32) (*OpenAICompatibleAPI, error) {
	if baseURL == "" {
		baseURL = OpenRouterBaseURL
	}
	return newOpenAICompatibleAPI("openrouter", apiKey, modelName, baseURL, maxTokens, temperature)
}

// Chat sends the conversation and returns the first choice text or a fallback reply.
func (o *OpenAICompatibleAPI) Chat(ctx context.Context, messages []models.Message) string {
	if o == nil || o.client == nil {
		return GenerativeUnavailableText
	}

	ctx, cancel := context.WithTimeout(ctx, generativeTimeout)
	defer cancel()

	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		role := openai.ChatMessageRoleUser
		switch msg.Role {
		case models.RoleSystem:
			role = openai.ChatMessageRoleSystem
		case models.RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.modelName,
		Messages:    chatMessages,
		MaxTokens:   o.maxTokens,
		Temperature: o.temperature,
	})
	if err != nil {
		logrus.WithError(err).Errorf("%s API error", o.provider)
		return GenerativeFailedText
	}
	if len(resp.Choices) == 0 {
		logrus.Warnf("%s API returned no choices", o.provider)
		return GenerativeEmptyText
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return GenerativeEmptyText
	}
	return text
}
