package service

import (
	"context"
	"fmt"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/constant"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/textutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"strings"
)

func (b *TgBotServices) basicGroup() HandlerGroup {
	return HandlerGroup{
		Name: "basic",
		Commands: []Command{
			{Names: []string{"start"}, Handler: b.start},
			{Names: []string{"help"}, Handler: b.help},
			{Names: []string{"ping"}, Handler: b.ping},
			{Names: []string{"rules"}, Handler: b.rules},
		},
	}
}

func (b *TgBotServices) start(_ context.Context, msg *tgbotapi.Message) {
	name := "there"
	if msg.From != nil {
		switch {
		case msg.From.FirstName != "":
			name = msg.From.FirstName
		case msg.From.UserName != "":
			name = msg.From.UserName
		}
	}
	b.replyHTML(msg, fmt.Sprintf("Hello, <b>%s</b>! I'm here to help manage this group. Use /help to see what I can do.",
		textutil.EscapeHTML(name)))
}

// help lists every registered command, so skipped groups do not show up.
func (b *TgBotServices) help(_ context.Context, msg *tgbotapi.Message) {
	names := b.Commands()
	for i, name := range names {
		names[i] = "/" + name
	}
	b.replyHTML(msg, "<b>Available commands:</b>\n"+strings.Join(names, ", "))
}

func (b *TgBotServices) ping(_ context.Context, msg *tgbotapi.Message) {
	b.reply(msg, constant.MSG_PONG)
}

func (b *TgBotServices) rules(_ context.Context, msg *tgbotapi.Message) {
	rules := b.StateRepo.Snapshot(msg.Chat.ID).Rules
	if rules == "" {
		rules = constant.MSG_NO_RULES
	}
	b.replyHTML(msg, rules)
}
