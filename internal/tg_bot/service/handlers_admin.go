package service

import (
	"context"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *TgBotServices) adminGroup() HandlerGroup {
	return HandlerGroup{
		Name: "admin",
		Commands: []Command{
			{Names: []string{"promote"}, Handler: b.promote},
			{Names: []string{"demote"}, Handler: b.demote},
		},
	}
}

// promoteConfig grants the default moderator rights, or revokes every right when grant is false.
func promoteConfig(chatID, userID int64, grant bool) tgbotapi.PromoteChatMemberConfig {
	return tgbotapi.PromoteChatMemberConfig{
		ChatMemberConfig:    tgbotapi.ChatMemberConfig{ChatID: chatID, UserID: userID},
		CanManageChat:       grant,
		CanDeleteMessages:   grant,
		CanManageVoiceChats: grant,
		CanRestrictMembers:  grant,
		CanPromoteMembers:   false,
		CanChangeInfo:       grant,
		CanInviteUsers:      grant,
		CanPinMessages:      grant,
	}
}

func (b *TgBotServices) promote(_ context.Context, msg *tgbotapi.Message) {
	b.targetAction(msg, "promote", "User has been promoted to admin.", func(chatID, userID int64) error {
		_, err := b.Platform.Request(promoteConfig(chatID, userID, true))
		return err
	})
}

func (b *TgBotServices) demote(_ context.Context, msg *tgbotapi.Message) {
	b.targetAction(msg, "demote", "User has been demoted.", func(chatID, userID int64) error {
		_, err := b.Platform.Request(promoteConfig(chatID, userID, false))
		return err
	})
}
