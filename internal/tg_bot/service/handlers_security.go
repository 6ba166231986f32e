package service

import (
	"context"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"strings"
)

// Locks are advisory, incoming messages are never checked against them.
func (b *TgBotServices) securityGroup() HandlerGroup {
	return HandlerGroup{
		Name: "security",
		Commands: []Command{
			{Names: []string{"lock"}, Handler: b.lock},
			{Names: []string{"unlock"}, Handler: b.unlock},
			{Names: []string{"locks", "showlocks"}, Handler: b.showLocks},
		},
	}
}

func (b *TgBotServices) lock(_ context.Context, msg *tgbotapi.Message) {
	if !b.senderIsAdmin(msg) {
		b.reply(msg, "Only administrators can lock content types.")
		return
	}
	types := commandArgs(msg)
	if len(types) == 0 {
		b.reply(msg, "Usage: /lock <type> [type...] (e.g., media links gifs)")
		return
	}
	var locked []string
	b.StateRepo.Update(msg.Chat.ID, func(state *models.ChatState) {
		for _, t := range types {
			state.Locks[strings.ToLower(t)] = struct{}{}
		}
		locked = state.SortedLocks()
	})
	b.reply(msg, "Locked types: "+strings.Join(locked, ", "))
}

func (b *TgBotServices) unlock(_ context.Context, msg *tgbotapi.Message) {
	if !b.senderIsAdmin(msg) {
		b.reply(msg, "Only administrators can unlock content types.")
		return
	}
	types := commandArgs(msg)
	if len(types) == 0 {
		b.reply(msg, "Usage: /unlock <type> [type...] (e.g., media links gifs)")
		return
	}
	var locked []string
	b.StateRepo.Update(msg.Chat.ID, func(state *models.ChatState) {
		for _, t := range types {
			delete(state.Locks, strings.ToLower(t))
		}
		locked = state.SortedLocks()
	})
	text := "none"
	if len(locked) > 0 {
		text = strings.Join(locked, ", ")
	}
	b.reply(msg, "Locked types: "+text)
}

func (b *TgBotServices) showLocks(_ context.Context, msg *tgbotapi.Message) {
	state := b.StateRepo.Snapshot(msg.Chat.ID)
	locked := state.SortedLocks()
	if len(locked) == 0 {
		b.reply(msg, "No content types are locked.")
		return
	}
	b.reply(msg, "Locked types: "+strings.Join(locked, ", "))
}
