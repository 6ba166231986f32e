package service

import (
	"context"
	"fmt"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/api"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/constant"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/models"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/textutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"strconv"
	"strings"
)

const (
	// maxDefinitions is the number of senses shown by /define.
	maxDefinitions = 3
	// defineLanguage is the dictionary language of /define.
	defineLanguage = "en"
)

func (b *TgBotServices) aiGroup() HandlerGroup {
	return HandlerGroup{
		Name:     "ai",
		Requires: []models.Capability{models.CapabilityGenerative},
		Commands: []Command{{Names: []string{"ai"}, Handler: b.ai}},
	}
}

func (b *TgBotServices) defineGroup() HandlerGroup {
	return HandlerGroup{
		Name:     "define",
		Requires: []models.Capability{models.CapabilityDictionary},
		Commands: []Command{{Names: []string{"define"}, Handler: b.define}},
	}
}

func (b *TgBotServices) translateGroup() HandlerGroup {
	return HandlerGroup{
		Name:     "translate",
		Requires: []models.Capability{models.CapabilityTranslation},
		Commands: []Command{{Names: []string{"translate"}, Handler: b.translate}},
	}
}

func (b *TgBotServices) weatherGroup() HandlerGroup {
	return HandlerGroup{
		Name:     "weather",
		Requires: []models.Capability{models.CapabilityWeather},
		Commands: []Command{{Names: []string{"weather"}, Handler: b.weather}},
	}
}

// ai sends the prompt as a single user message to the generative model.
func (b *TgBotServices) ai(ctx context.Context, msg *tgbotapi.Message) {
	prompt := commandText(msg)
	if prompt == "" {
		b.reply(msg, "Usage: /ai <your prompt>")
		return
	}
	answer := b.Services.Generative.Chat(ctx, []models.Message{
		{Role: models.RoleUser, Content: prompt},
	})
	if strings.TrimSpace(answer) == "" {
		b.metrics.UpstreamFailed(string(models.CapabilityGenerative))
		b.reply(msg, constant.MSG_AI_FAILED)
		return
	}
	// the fallback text is still shown to the user
	if api.IsGenerativeFallback(answer) {
		b.metrics.UpstreamFailed(string(models.CapabilityGenerative))
	}
	b.reply(msg, answer)
}

func (b *TgBotServices) define(ctx context.Context, msg *tgbotapi.Message) {
	word := strings.TrimSpace(commandText(msg))
	if word == "" {
		b.reply(msg, "Usage: /define <word>")
		return
	}
	entry := b.Services.Dictionary.Define(ctx, word, defineLanguage)
	if entry == nil || len(entry.Definitions) == 0 {
		if entry == nil {
			b.metrics.UpstreamFailed(string(models.CapabilityDictionary))
		}
		b.reply(msg, constant.MSG_NO_DEFINITION)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>%s</b> (%d definitions):", textutil.EscapeHTML(word), len(entry.Definitions))
	for i, def := range entry.Definitions {
		if i == maxDefinitions {
			break
		}
		fmt.Fprintf(&sb, "\n%s <i>%s</i>: %s", constant.EMOJI_BULLET,
			textutil.EscapeHTML(def.PartOfSpeech), textutil.EscapeHTML(def.Definition))
		if def.Example != "" {
			fmt.Fprintf(&sb, "\n  e.g., %s", textutil.EscapeHTML(def.Example))
		}
	}
	b.replyHTML(msg, sb.String())
}

// translate handles "/translate <lang> <text>" with the source language detected.
func (b *TgBotServices) translate(ctx context.Context, msg *tgbotapi.Message) {
	parts := textutil.SplitN(msg.Text, 2)
	if len(parts) < 3 {
		b.reply(msg, "Usage: /translate <lang> <text>")
		return
	}
	result := b.Services.Translate.Translate(ctx, parts[2], parts[1], api.AutoLanguage)
	if result == nil || result.Translated == "" {
		b.metrics.UpstreamFailed(string(models.CapabilityTranslation))
		b.reply(msg, constant.MSG_TRANSLATION_FAILED)
		return
	}
	b.reply(msg, result.Translated)
}

func (b *TgBotServices) weather(ctx context.Context, msg *tgbotapi.Message) {
	city := commandText(msg)
	if city == "" {
		b.reply(msg, "Usage: /weather <city>")
		return
	}
	w := b.Services.Weather.Get(ctx, city)
	if w == nil {
		b.metrics.UpstreamFailed(string(models.CapabilityWeather))
		b.reply(msg, constant.MSG_WEATHER_FAILED)
		return
	}
	b.reply(msg, fmt.Sprintf("Weather in %s, %s:\n%s\nTemperature: %s°C\nHumidity: %s%%\nWind speed: %s m/s",
		w.City, w.Country, textutil.Capitalize(w.Description),
		formatNumber(w.Temperature), formatNumber(w.Humidity), formatNumber(w.WindSpeed)))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
