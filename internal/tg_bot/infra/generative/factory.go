// Package generative selects the generative model backing the /ai command.
package generative

import (
	"fmt"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/api"
	botServ "github.com/DenisKhanov/TgGroupBot/internal/tg_bot/service"
	"sort"
	"strings"
)

// generativeCreator defines a function to create GenerativeModel
type generativeCreator func(apiKey, modelName, baseURL string, maxTokens int, temperature float32) (botServ.GenerativeModel, error)

// generativeRegistry stores registered implementations
var generativeRegistry = map[string]generativeCreator{
	"gemini": func(apiKey, modelName, baseURL string, maxTokens int, temperature float32) (botServ.GenerativeModel, error) {
		return api.NewGeminiAPI(apiKey, modelName, baseURL, maxTokens, temperature)
	},
	"deepseek": func(apiKey, modelName, baseURL string, maxTokens int, temperature float32) (botServ.GenerativeModel, error) {
		return api.NewDeepSeekAPI(apiKey, modelName, baseURL, maxTokens, temperature)
	},
	"openrouter": func(apiKey, modelName, baseURL string, maxTokens int, temperature float32) (botServ.GenerativeModel, error) {
		return api.NewOpenRouterAPI(apiKey, modelName, baseURL, maxTokens, temperature)
	},
}

// Names returns the supported provider names.
func Names() []string {
	names := make([]string, 0, len(generativeRegistry))
	for name := range generativeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ModelFactory creates a GenerativeModel implementation based on an environment variable
func ModelFactory(generativeName, apiKey, modelName, baseURL string, maxTokens int, temperature float32) (botServ.GenerativeModel, error) {
	creator, exists := generativeRegistry[strings.ToLower(generativeName)]
	if !exists {
		return nil, fmt.Errorf("unsupported GENERATIVE_NAME: %s (expected one of %s)", generativeName, strings.Join(Names(), ", "))
	}
	return creator(apiKey, modelName, baseURL, maxTokens, temperature)
}
