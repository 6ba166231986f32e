package service

import (
	"context"
	"fmt"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/constant"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/models"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/textutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"sort"
	"strings"
	"time"
)

// muteForever is used when no mute duration is given.
const muteForever = 1000 * textutil.Week

// Telegram treats restrictions longer than a year as permanent, so they
// are not reported as a duration.
const maxReportedMute = 365 * 24 * time.Hour

func (b *TgBotServices) moderationGroup() HandlerGroup {
	return HandlerGroup{
		Name: "moderation",
		Commands: []Command{
			{Names: []string{"ban"}, Handler: b.ban},
			{Names: []string{"unban"}, Handler: b.unban},
			{Names: []string{"kick"}, Handler: b.kick},
			{Names: []string{"mute"}, Handler: b.mute},
			{Names: []string{"unmute"}, Handler: b.unmute},
			{Names: []string{"warn"}, Handler: b.warn},
			{Names: []string{"unwarn"}, Handler: b.unwarn},
			{Names: []string{"warns", "warnings"}, Handler: b.warnList},
		},
	}
}

// commandArgs returns the whitespace separated arguments of a command.
func commandArgs(msg *tgbotapi.Message) []string {
	return textutil.SplitN(msg.CommandArguments(), -1)
}

// adminTarget checks that the sender is an admin and resolves the target of
// the command, replying with the denial or usage text when either fails.
func (b *TgBotServices) adminTarget(msg *tgbotapi.Message, verb string) (int64, bool) {
	if !b.senderIsAdmin(msg) {
		b.reply(msg, constant.MSG_ADMIN_ONLY)
		return 0, false
	}
	targetID, ok := resolveTarget(msg, commandArgs(msg))
	if !ok {
		b.reply(msg, fmt.Sprintf(constant.MSG_TARGET_USAGE, verb))
		return 0, false
	}
	return targetID, true
}

// targetAction runs action on the target of an admin command and reports the outcome.
func (b *TgBotServices) targetAction(msg *tgbotapi.Message, verb, success string, action func(chatID, userID int64) error) {
	targetID, ok := b.adminTarget(msg, verb)
	if !ok {
		return
	}
	if err := action(msg.Chat.ID, targetID); err != nil {
		logrus.WithError(err).Errorf("Failed to %s user %d in chat %d", verb, targetID, msg.Chat.ID)
		b.reply(msg, fmt.Sprintf(constant.MSG_INSUFFICIENT_RIGHTS, verb))
		return
	}
	b.reply(msg, success)
}

func (b *TgBotServices) banMember(chatID, userID int64) error {
	_, err := b.Platform.Request(tgbotapi.BanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: chatID, UserID: userID},
	})
	return err
}

func (b *TgBotServices) unbanMember(chatID, userID int64) error {
	_, err := b.Platform.Request(tgbotapi.UnbanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: chatID, UserID: userID},
	})
	return err
}

// kickMember removes a user who may join again: a ban followed by an unban.
func (b *TgBotServices) kickMember(chatID, userID int64) error {
	if err := b.banMember(chatID, userID); err != nil {
		return err
	}
	return b.unbanMember(chatID, userID)
}

func (b *TgBotServices) restrictMember(chatID, userID int64, permissions *tgbotapi.ChatPermissions, until time.Time) error {
	config := tgbotapi.RestrictChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: chatID, UserID: userID},
		Permissions:      permissions,
	}
	if !until.IsZero() {
		config.UntilDate = until.Unix()
	}
	_, err := b.Platform.Request(config)
	return err
}

func (b *TgBotServices) ban(_ context.Context, msg *tgbotapi.Message) {
	b.targetAction(msg, "ban", "User has been banned.", b.banMember)
}

func (b *TgBotServices) unban(_ context.Context, msg *tgbotapi.Message) {
	b.targetAction(msg, "unban", "User has been unbanned.", b.unbanMember)
}

func (b *TgBotServices) kick(_ context.Context, msg *tgbotapi.Message) {
	b.targetAction(msg, "kick", "User has been kicked.", b.kickMember)
}

// mute restricts the target from sending anything. The duration is the
// first argument after the target, e.g. "/mute 123 2h30m" or "/mute 1d"
// in reply to a message.
func (b *TgBotServices) mute(_ context.Context, msg *tgbotapi.Message) {
	targetID, ok := b.adminTarget(msg, "mute")
	if !ok {
		return
	}

	args := commandArgs(msg)
	durationArg := 1
	if msg.ReplyToMessage != nil && msg.ReplyToMessage.From != nil {
		durationArg = 0
	}
	duration := muteForever
	if len(args) > durationArg {
		if d := textutil.ParseDuration(args[durationArg]); d > 0 && d < muteForever {
			duration = d
		}
	}

	err := b.restrictMember(msg.Chat.ID, targetID, &tgbotapi.ChatPermissions{}, b.now().Add(duration))
	if err != nil {
		logrus.WithError(err).Errorf("Failed to mute user %d in chat %d", targetID, msg.Chat.ID)
		b.reply(msg, fmt.Sprintf(constant.MSG_INSUFFICIENT_RIGHTS, "mute"))
		return
	}
	text := "User has been muted."
	if duration < maxReportedMute {
		text += fmt.Sprintf(" Mute duration: %s.", textutil.HumanizeDuration(duration))
	}
	b.reply(msg, text)
}

func (b *TgBotServices) unmute(_ context.Context, msg *tgbotapi.Message) {
	b.targetAction(msg, "unmute", "User has been unmuted.", func(chatID, userID int64) error {
		return b.restrictMember(chatID, userID, &tgbotapi.ChatPermissions{
			CanSendMessages:       true,
			CanSendMediaMessages:  true,
			CanSendOtherMessages:  true,
			CanAddWebPagePreviews: true,
		}, time.Time{})
	})
}

// warn adds a warning to the target. Reaching MAX_WARNINGS kicks the user
// and resets the count, both decided under the chat lock.
func (b *TgBotServices) warn(_ context.Context, msg *tgbotapi.Message) {
	targetID, ok := b.adminTarget(msg, "warn")
	if !ok {
		return
	}

	var count int
	b.StateRepo.Update(msg.Chat.ID, func(state *models.ChatState) {
		count = state.Warnings[targetID] + 1
		if count >= constant.MAX_WARNINGS {
			state.Warnings[targetID] = 0
			return
		}
		state.Warnings[targetID] = count
	})
	b.reply(msg, fmt.Sprintf("User has been warned (%d/%d).", count, constant.MAX_WARNINGS))
	if count < constant.MAX_WARNINGS {
		return
	}

	if err := b.kickMember(msg.Chat.ID, targetID); err != nil {
		logrus.WithError(err).Errorf("Failed to kick user %d after warnings in chat %d", targetID, msg.Chat.ID)
		b.reply(msg, fmt.Sprintf(constant.MSG_INSUFFICIENT_RIGHTS, "kick"))
		return
	}
	b.reply(msg, "User has been kicked due to excessive warnings.")
}

func (b *TgBotServices) unwarn(_ context.Context, msg *tgbotapi.Message) {
	targetID, ok := b.adminTarget(msg, "unwarn")
	if !ok {
		return
	}

	removed := false
	var count int
	b.StateRepo.Update(msg.Chat.ID, func(state *models.ChatState) {
		if state.Warnings[targetID] > 0 {
			state.Warnings[targetID]--
			count = state.Warnings[targetID]
			removed = true
		}
	})
	if !removed {
		b.reply(msg, "That user has no warnings.")
		return
	}
	b.reply(msg, fmt.Sprintf("Removed a warning. Total warnings: %d.", count))
}

func (b *TgBotServices) warnList(_ context.Context, msg *tgbotapi.Message) {
	state := b.StateRepo.Snapshot(msg.Chat.ID)
	if len(state.Warnings) == 0 {
		b.reply(msg, "No warnings have been issued in this chat.")
		return
	}

	ids := make([]int64, 0, len(state.Warnings))
	for id := range state.Warnings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var sb strings.Builder
	sb.WriteString("<b>Warnings:</b>")
	for _, id := range ids {
		fmt.Fprintf(&sb, "\nUser %d: %d warning(s)", id, state.Warnings[id])
	}
	b.replyHTML(msg, sb.String())
}
