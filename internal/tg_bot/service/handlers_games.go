package service

import (
	"context"
	"fmt"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/models"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/textutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"strconv"
	"strings"
)

func (b *TgBotServices) gamesGroup() HandlerGroup {
	return HandlerGroup{
		Name: "games",
		Commands: []Command{
			{Names: []string{"quiz"}, Handler: b.quiz},
			{Names: []string{"answer"}, Handler: b.answer},
			{Names: []string{"balance"}, Handler: b.balance},
			{Names: []string{"give"}, Handler: b.give},
			{Names: []string{"shop"}, Handler: b.shop},
		},
	}
}

// quiz asks a random question. A new quiz replaces the pending answer.
func (b *TgBotServices) quiz(_ context.Context, msg *tgbotapi.Message) {
	questions := b.Content.Quiz
	if len(questions) == 0 {
		b.reply(msg, "No quiz questions available.")
		return
	}
	q := questions[b.random.IntN(len(questions))]
	b.StateRepo.Update(msg.Chat.ID, func(state *models.ChatState) {
		state.QuizAnswer = q.Answer
	})
	b.reply(msg, fmt.Sprintf("Quiz: %s\nReply with /answer <your answer>", q.Question))
}

// answer checks the pending quiz answer. The quiz ends on the first answer, right or wrong.
func (b *TgBotServices) answer(_ context.Context, msg *tgbotapi.Message) {
	given := commandText(msg)
	if given == "" {
		b.reply(msg, "Usage: /answer <your answer>")
		return
	}
	var expected string
	b.StateRepo.Update(msg.Chat.ID, func(state *models.ChatState) {
		expected = state.QuizAnswer
		state.QuizAnswer = ""
	})
	if expected == "" {
		b.reply(msg, "No quiz in progress. Use /quiz to start one.")
		return
	}
	if strings.ToLower(strings.TrimSpace(given)) == expected {
		b.reply(msg, "Correct!")
		return
	}
	b.reply(msg, "Wrong. The correct answer was: "+expected)
}

func (b *TgBotServices) balance(_ context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	coins := b.StateRepo.Snapshot(msg.Chat.ID).Bank[msg.From.ID]
	b.reply(msg, fmt.Sprintf("Your balance: %d coins", coins))
}

// give moves coins from the sender to another user. The balance check and
// both writes happen under the chat lock, so a balance never goes negative.
func (b *TgBotServices) give(_ context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	args := commandArgs(msg)
	if len(args) < 2 {
		b.reply(msg, "Usage: /give <user_id> <amount>")
		return
	}
	targetID, errTarget := strconv.ParseInt(args[0], 10, 64)
	amount, errAmount := strconv.Atoi(args[1])
	if errTarget != nil || errAmount != nil || amount <= 0 {
		b.reply(msg, "Invalid usage. Amount must be a positive integer.")
		return
	}

	senderID := msg.From.ID
	funded := false
	b.StateRepo.Update(msg.Chat.ID, func(state *models.ChatState) {
		if state.Bank[senderID] < amount {
			return
		}
		state.Bank[senderID] -= amount
		state.Bank[targetID] += amount
		funded = true
	})
	if !funded {
		b.reply(msg, "Insufficient funds.")
		return
	}
	b.reply(msg, fmt.Sprintf("Transferred %d coins to %d.", amount, targetID))
}

func (b *TgBotServices) shop(_ context.Context, msg *tgbotapi.Message) {
	var sb strings.Builder
	sb.WriteString("<b>Shop Items</b>")
	for _, item := range b.Content.Shop {
		fmt.Fprintf(&sb, "\n%s: %d coins", textutil.EscapeHTML(textutil.Capitalize(item.Name)), item.Price)
	}
	b.replyHTML(msg, sb.String())
}
