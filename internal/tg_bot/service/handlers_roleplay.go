package service

import (
	"context"
	"fmt"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"strings"
)

// leaderboardSize is the number of users shown by /leaderboard.
const leaderboardSize = 10

// Nothing awards XP yet, these commands only read it.
func (b *TgBotServices) roleplayGroup() HandlerGroup {
	return HandlerGroup{
		Name: "roleplay",
		Commands: []Command{
			{Names: []string{"xp"}, Handler: b.xp},
			{Names: []string{"rank"}, Handler: b.rank},
			{Names: []string{"leaderboard"}, Handler: b.leaderboard},
		},
	}
}

func (b *TgBotServices) xp(_ context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	xp := b.StateRepo.Snapshot(msg.Chat.ID).XP[msg.From.ID]
	b.reply(msg, fmt.Sprintf("Your XP: %d", xp))
}

// rank reports the position of the sender in the XP ranking. Users without
// XP rank right after everybody who has some.
func (b *TgBotServices) rank(_ context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	state := b.StateRepo.Snapshot(msg.Chat.ID)
	ranking := state.XPRanking()
	position := len(ranking) + 1
	for i, entry := range ranking {
		if entry.UserID == msg.From.ID {
			position = i + 1
			break
		}
	}
	b.reply(msg, fmt.Sprintf("Your rank: %d\nYour XP: %d", position, state.XP[msg.From.ID]))
}

func (b *TgBotServices) leaderboard(_ context.Context, msg *tgbotapi.Message) {
	state := b.StateRepo.Snapshot(msg.Chat.ID)
	ranking := state.XPRanking()
	if len(ranking) == 0 {
		b.reply(msg, "No XP data yet.")
		return
	}
	if len(ranking) > leaderboardSize {
		ranking = ranking[:leaderboardSize]
	}
	var sb strings.Builder
	sb.WriteString("<b>Leaderboard</b>")
	for i, entry := range ranking {
		fmt.Fprintf(&sb, "\n%d. User %d: %d XP", i+1, entry.UserID, entry.XP)
	}
	b.replyHTML(msg, sb.String())
}
