package service

import (
	"context"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/constant"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/models"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/textutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

func (b *TgBotServices) groupManagementGroup() HandlerGroup {
	return HandlerGroup{
		Name: "group",
		Commands: []Command{
			{Names: []string{"pin"}, Handler: b.pin},
			{Names: []string{"unpin"}, Handler: b.unpin},
			{Names: []string{"purge"}, Handler: b.purge},
			{Names: []string{"setwelcome"}, Handler: b.setWelcome},
			{Names: []string{"welcome"}, Handler: b.welcome},
			{Names: []string{"setrules"}, Handler: b.setRules},
			{Names: []string{"tagall"}, Handler: b.tagAll},
		},
	}
}

// commandText returns everything after the command, or "" when it is missing.
func commandText(msg *tgbotapi.Message) string {
	parts := textutil.SplitN(msg.Text, 1)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func (b *TgBotServices) pin(_ context.Context, msg *tgbotapi.Message) {
	if !b.senderIsAdmin(msg) {
		b.reply(msg, "You must be an admin to pin messages.")
		return
	}
	if msg.ReplyToMessage == nil {
		b.reply(msg, "Reply to a message you want to pin.")
		return
	}
	_, err := b.Platform.Request(tgbotapi.PinChatMessageConfig{
		ChatID:              msg.Chat.ID,
		MessageID:           msg.ReplyToMessage.MessageID,
		DisableNotification: true,
	})
	if err != nil {
		logrus.WithError(err).Errorf("Failed to pin message %d in chat %d", msg.ReplyToMessage.MessageID, msg.Chat.ID)
		b.reply(msg, "Failed to pin message. Do I have sufficient rights?")
		return
	}
	b.reply(msg, "Message pinned.")
}

// unpin removes the pin of the replied message, or every pin of the chat.
func (b *TgBotServices) unpin(_ context.Context, msg *tgbotapi.Message) {
	if !b.senderIsAdmin(msg) {
		b.reply(msg, "You must be an admin to unpin messages.")
		return
	}
	var config tgbotapi.Chattable = tgbotapi.UnpinAllChatMessagesConfig{ChatID: msg.Chat.ID}
	if msg.ReplyToMessage != nil {
		config = tgbotapi.UnpinChatMessageConfig{ChatID: msg.Chat.ID, MessageID: msg.ReplyToMessage.MessageID}
	}
	if _, err := b.Platform.Request(config); err != nil {
		logrus.WithError(err).Errorf("Failed to unpin messages in chat %d", msg.Chat.ID)
		b.reply(msg, "Failed to unpin message.")
		return
	}
	b.reply(msg, "Message(s) unpinned.")
}

// purge deletes every message from the replied one up to the command itself.
// Messages that cannot be deleted are skipped.
func (b *TgBotServices) purge(_ context.Context, msg *tgbotapi.Message) {
	if !b.senderIsAdmin(msg) {
		b.reply(msg, "You must be an admin to purge messages.")
		return
	}
	if msg.ReplyToMessage == nil {
		b.reply(msg, "Reply to a message to purge from that message up to the current one.")
		return
	}
	for id := msg.ReplyToMessage.MessageID; id <= msg.MessageID; id++ {
		if _, err := b.Platform.Request(tgbotapi.NewDeleteMessage(msg.Chat.ID, id)); err != nil {
			logrus.WithError(err).Debugf("Failed to delete message %d in chat %d", id, msg.Chat.ID)
		}
	}
	if err := b.sendMessage(msg.Chat.ID, "Messages purged.", 0, ""); err != nil {
		b.reply(msg, "Failed to purge messages.")
	}
}

func (b *TgBotServices) setWelcome(_ context.Context, msg *tgbotapi.Message) {
	if !b.senderIsAdmin(msg) {
		b.reply(msg, constant.MSG_ADMIN_ONLY)
		return
	}
	text := commandText(msg)
	if text == "" {
		b.reply(msg, "Usage: /setwelcome Your welcome message here.")
		return
	}
	b.StateRepo.Update(msg.Chat.ID, func(state *models.ChatState) {
		state.WelcomeMessage = text
	})
	b.reply(msg, "Welcome message set.")
}

func (b *TgBotServices) welcome(_ context.Context, msg *tgbotapi.Message) {
	state := b.StateRepo.Snapshot(msg.Chat.ID)
	if state.WelcomeMessage == "" {
		b.reply(msg, "No welcome message has been set.")
		return
	}
	b.replyHTML(msg, textutil.EscapeHTML(state.WelcomeMessage))
}

// setRules stores the rules already escaped, /rules replies them as HTML.
func (b *TgBotServices) setRules(_ context.Context, msg *tgbotapi.Message) {
	if !b.senderIsAdmin(msg) {
		b.reply(msg, constant.MSG_ADMIN_ONLY)
		return
	}
	text := commandText(msg)
	if text == "" {
		b.reply(msg, "Usage: /setrules The rules of this group.")
		return
	}
	b.StateRepo.Update(msg.Chat.ID, func(state *models.ChatState) {
		state.Rules = textutil.EscapeHTML(text)
	})
	b.reply(msg, "Rules have been updated.")
}

func (b *TgBotServices) tagAll(_ context.Context, msg *tgbotapi.Message) {
	b.reply(msg, "Tagging all members is disabled to prevent spam.")
}
