package service

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"strconv"
	"strings"
)

// isAdmin reports whether userID is an administrator or the creator of
// chatID. Any lookup failure counts as not an admin.
func (b *TgBotServices) isAdmin(chatID, userID int64) bool {
	member, err := b.Platform.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{ChatID: chatID, UserID: userID},
	})
	if err != nil {
		logrus.WithError(err).Warnf("Failed to get member %d of chat %d", userID, chatID)
		return false
	}
	return member.IsAdministrator() || member.IsCreator()
}

// senderIsAdmin reports whether the author of msg administers its chat.
func (b *TgBotServices) senderIsAdmin(msg *tgbotapi.Message) bool {
	if msg.From == nil {
		return false
	}
	return b.isAdmin(msg.Chat.ID, msg.From.ID)
}

// resolveTarget returns the user a moderation command acts on: the author
// of the replied message, otherwise the first argument as a numeric id
// with an optional leading @.
func resolveTarget(msg *tgbotapi.Message, args []string) (int64, bool) {
	if msg.ReplyToMessage != nil && msg.ReplyToMessage.From != nil {
		return msg.ReplyToMessage.From.ID, true
	}
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(args[0], "@"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// subjectUser is the author of the replied message, or the sender.
func subjectUser(msg *tgbotapi.Message) *tgbotapi.User {
	if msg.ReplyToMessage != nil && msg.ReplyToMessage.From != nil {
		return msg.ReplyToMessage.From
	}
	return msg.From
}

// mention renders a user as @username, falling back to the first name.
func mention(user *tgbotapi.User) string {
	if user == nil {
		return "there"
	}
	if user.UserName != "" {
		return "@" + user.UserName
	}
	return user.FirstName
}
