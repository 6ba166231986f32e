package service

import (
	"context"
	"fmt"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/constant"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

func (b *TgBotServices) funGroup() HandlerGroup {
	return HandlerGroup{
		Name: "fun",
		Commands: []Command{
			{Names: []string{"dice"}, Handler: b.dice},
			{Names: []string{"coin"}, Handler: b.coin},
			{Names: []string{"compliment"}, Handler: b.randomText(func() []string { return b.Content.Compliments }, "compliments")},
			{Names: []string{"joke"}, Handler: b.randomText(func() []string { return b.Content.Jokes }, "jokes")},
			{Names: []string{"quote"}, Handler: b.randomText(func() []string { return b.Content.Quotes }, "quotes")},
			{Names: []string{"roast"}, Handler: b.randomText(func() []string { return b.Content.Roasts }, "roasts")},
			{Names: []string{"hug"}, Handler: b.action("%s, you got a warm hug! " + constant.EMOJI_HUGGING_FACE)},
			{Names: []string{"slap"}, Handler: b.action("%s, you've been slapped! " + constant.EMOJI_WAVING_HAND)},
			{Names: []string{"kiss"}, Handler: b.action("%s, here's a kiss! " + constant.EMOJI_FACE_KISS)},
			{Names: []string{"fight"}, Handler: b.fight},
		},
	}
}

func (b *TgBotServices) dice(_ context.Context, msg *tgbotapi.Message) {
	if _, err := b.Platform.Send(tgbotapi.NewDice(msg.Chat.ID)); err != nil {
		logrus.WithError(err).Errorf("Failed to send dice to chat %d", msg.Chat.ID)
		b.reply(msg, "Failed to roll a dice.")
	}
}

func (b *TgBotServices) coin(_ context.Context, msg *tgbotapi.Message) {
	b.reply(msg, "Coin flip: "+b.pick([]string{"Heads", "Tails"}))
}

// randomText replies with a random item of the list, label names the list when it is empty.
func (b *TgBotServices) randomText(items func() []string, label string) HandlerFunc {
	return func(_ context.Context, msg *tgbotapi.Message) {
		text := b.pick(items())
		if text == "" {
			b.reply(msg, fmt.Sprintf("No %s available.", label))
			return
		}
		b.reply(msg, text)
	}
}

// action replies with format applied to the name of the replied user or the sender.
func (b *TgBotServices) action(format string) HandlerFunc {
	return func(_ context.Context, msg *tgbotapi.Message) {
		b.reply(msg, fmt.Sprintf(format, mention(subjectUser(msg))))
	}
}

func (b *TgBotServices) fight(_ context.Context, msg *tgbotapi.Message) {
	outcome := b.pick([]string{"wins", "loses"})
	b.reply(msg, fmt.Sprintf("%s %s the fight! %s", mention(subjectUser(msg)), outcome, constant.EMOJI_BOXING_GLOVE))
}
