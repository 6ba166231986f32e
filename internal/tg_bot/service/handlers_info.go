package service

import (
	"context"
	"fmt"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/textutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"strings"
)

func (b *TgBotServices) infoGroup() HandlerGroup {
	return HandlerGroup{
		Name: "info",
		Commands: []Command{
			{Names: []string{"id"}, Handler: b.id},
			{Names: []string{"user"}, Handler: b.userInfo},
			{Names: []string{"lastactive"}, Handler: b.lastActive},
			{Names: []string{"report"}, Handler: b.report},
		},
	}
}

func fullName(user *tgbotapi.User) string {
	return strings.TrimSpace(user.FirstName + " " + user.LastName)
}

// describeUser renders the HTML card shown by /user and /whois.
func describeUser(user *tgbotapi.User) string {
	username := "none"
	if user.UserName != "" {
		username = "@" + user.UserName
	}
	return fmt.Sprintf("User: <b>%s</b>\nID: <code>%d</code>\nUsername: %s",
		textutil.EscapeHTML(fullName(user)), user.ID, textutil.EscapeHTML(username))
}

func (b *TgBotServices) id(_ context.Context, msg *tgbotapi.Message) {
	var userID int64
	if msg.From != nil {
		userID = msg.From.ID
	}
	b.replyHTML(msg, fmt.Sprintf("Chat ID: <code>%d</code>\nUser ID: <code>%d</code>", msg.Chat.ID, userID))
}

// userInfo describes the replied user, or the sender, with their warning count.
func (b *TgBotServices) userInfo(_ context.Context, msg *tgbotapi.Message) {
	target := subjectUser(msg)
	if target == nil {
		return
	}
	warnings := b.StateRepo.Snapshot(msg.Chat.ID).Warnings[target.ID]
	b.replyHTML(msg, fmt.Sprintf("%s\nWarnings: %d", describeUser(target), warnings))
}

func (b *TgBotServices) lastActive(_ context.Context, msg *tgbotapi.Message) {
	b.reply(msg, "I do not track activity yet.")
}

// report mentions every human administrator of the chat.
func (b *TgBotServices) report(_ context.Context, msg *tgbotapi.Message) {
	admins, err := b.Platform.GetChatAdministrators(tgbotapi.ChatAdministratorsConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: msg.Chat.ID},
	})
	if err != nil {
		logrus.WithError(err).Errorf("Failed to get administrators of chat %d", msg.Chat.ID)
		b.reply(msg, "Failed to report message.")
		return
	}

	var mentions []string
	for _, admin := range admins {
		user := admin.User
		if user == nil || user.IsBot {
			continue
		}
		if user.UserName != "" {
			mentions = append(mentions, "@"+user.UserName)
			continue
		}
		mentions = append(mentions, fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, user.ID, textutil.EscapeHTML(user.FirstName)))
	}
	text := "(no admins)"
	if len(mentions) > 0 {
		text = strings.Join(mentions, " ")
	}
	b.replyHTML(msg, "Reported to admins: "+text)
}
