package service

import (
	"context"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// The flags are recorded per chat but do not change how other commands behave.
func (b *TgBotServices) togglesGroup() HandlerGroup {
	return HandlerGroup{
		Name: "toggles",
		Commands: []Command{
			{Names: []string{"enablebot", "on", "enable"}, Handler: b.enableBot},
			{Names: []string{"disablebot", "off", "disable"}, Handler: b.disableBot},
			{Names: []string{"silent"}, Handler: b.toggleSilent},
			{Names: []string{"debug"}, Handler: b.toggleDebug},
		},
	}
}

func onOff(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func (b *TgBotServices) enableBot(_ context.Context, msg *tgbotapi.Message) {
	if !b.senderIsAdmin(msg) {
		b.reply(msg, "Only administrators can enable the bot.")
		return
	}
	b.StateRepo.Update(msg.Chat.ID, func(state *models.ChatState) {
		state.Enabled = true
	})
	b.reply(msg, "Bot is now enabled in this chat.")
}

func (b *TgBotServices) disableBot(_ context.Context, msg *tgbotapi.Message) {
	if !b.senderIsAdmin(msg) {
		b.reply(msg, "Only administrators can disable the bot.")
		return
	}
	b.StateRepo.Update(msg.Chat.ID, func(state *models.ChatState) {
		state.Enabled = false
	})
	b.reply(msg, "Bot is now disabled in this chat.")
}

func (b *TgBotServices) toggleSilent(_ context.Context, msg *tgbotapi.Message) {
	if !b.senderIsAdmin(msg) {
		b.reply(msg, "Only administrators can toggle silent mode.")
		return
	}
	var silent bool
	b.StateRepo.Update(msg.Chat.ID, func(state *models.ChatState) {
		state.Silent = !state.Silent
		silent = state.Silent
	})
	b.reply(msg, "Silent mode is now "+onOff(silent)+".")
}

func (b *TgBotServices) toggleDebug(_ context.Context, msg *tgbotapi.Message) {
	if !b.senderIsAdmin(msg) {
		b.reply(msg, "Only administrators can toggle debug mode.")
		return
	}
	var debug bool
	b.StateRepo.Update(msg.Chat.ID, func(state *models.ChatState) {
		state.Debug = !state.Debug
		debug = state.Debug
	})
	b.reply(msg, "Debug mode is now "+onOff(debug)+".")
}
