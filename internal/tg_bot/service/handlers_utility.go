package service

import (
	"context"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/calc"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/constant"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/models"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/textutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"strings"
)

func (b *TgBotServices) utilityGroup() HandlerGroup {
	return HandlerGroup{
		Name: "utility",
		Commands: []Command{
			{Names: []string{"calc"}, Handler: b.calculate},
			{Names: []string{"time", "utc"}, Handler: b.currentTime},
			{Names: []string{"note"}, Handler: b.note},
			{Names: []string{"getnote"}, Handler: b.getNote},
			{Names: []string{"whois"}, Handler: b.whois},
		},
	}
}

// calculate evaluates arithmetic only, anything else is an invalid expression.
func (b *TgBotServices) calculate(_ context.Context, msg *tgbotapi.Message) {
	expr := commandText(msg)
	if expr == "" {
		b.reply(msg, "Usage: /calc <expression>")
		return
	}
	result, err := calc.Evaluate(expr)
	if err != nil {
		logrus.WithError(err).Debugf("Rejected expression %q", expr)
		b.reply(msg, constant.MSG_INVALID_EXPRESSION)
		return
	}
	b.reply(msg, "Result: "+result)
}

func (b *TgBotServices) currentTime(_ context.Context, msg *tgbotapi.Message) {
	b.reply(msg, "Current time: "+b.now().UTC().Format("2006-01-02 15:04:05")+" UTC")
}

// note saves a note of the sender under a case-insensitive title.
func (b *TgBotServices) note(_ context.Context, msg *tgbotapi.Message) {
	parts := textutil.SplitN(msg.Text, 2)
	if len(parts) < 3 || msg.From == nil {
		b.reply(msg, "Usage: /note <title> <content>")
		return
	}
	title := strings.ToLower(parts[1])
	text := strings.TrimSpace(parts[2])
	userID := msg.From.ID
	b.StateRepo.Update(msg.Chat.ID, func(state *models.ChatState) {
		if state.Notes[userID] == nil {
			state.Notes[userID] = make(map[string]string)
		}
		state.Notes[userID][title] = text
	})
	b.reply(msg, "Note '"+title+"' saved.")
}

func (b *TgBotServices) getNote(_ context.Context, msg *tgbotapi.Message) {
	title := strings.ToLower(strings.TrimSpace(commandText(msg)))
	if title == "" || msg.From == nil {
		b.reply(msg, "Usage: /getnote <title>")
		return
	}
	text, ok := b.StateRepo.Snapshot(msg.Chat.ID).Notes[msg.From.ID][title]
	if !ok {
		b.reply(msg, "Note not found.")
		return
	}
	b.reply(msg, text)
}

func (b *TgBotServices) whois(_ context.Context, msg *tgbotapi.Message) {
	target := subjectUser(msg)
	if target == nil {
		return
	}
	b.replyHTML(msg, describeUser(target))
}
