// Package service provides the core logic of the group management bot:
// command dispatching, permission checks, target resolution and the
// handler groups operating on per-chat state and external services.
package service

import (
	"context"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/constant"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/content"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/metrics"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/models"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/textutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"runtime/debug"
	"time"
)

// Platform is the part of the Telegram Bot API the bot relies on.
// *tgbotapi.BotAPI satisfies it.
type Platform interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
	GetChatAdministrators(config tgbotapi.ChatAdministratorsConfig) ([]tgbotapi.ChatMember, error)
}

// ChatStateRepository stores the state of every chat.
type ChatStateRepository interface {
	Update(chatID int64, fn func(state *models.ChatState)) // exclusive read-modify-write
	Snapshot(chatID int64) models.ChatState                // copy for read-only use
}

// GenerativeModel answers a conversation. It never fails, errors become a fallback text.
type GenerativeModel interface {
	Chat(ctx context.Context, messages []models.Message) string
}

// Weather returns current weather, nil on failure.
type Weather interface {
	Get(ctx context.Context, city string) *models.Weather
}

// Translate translates text, nil on failure.
type Translate interface {
	Translate(ctx context.Context, text, targetLang, sourceLang string) *models.Translation
}

// Dictionary looks up definitions, nil on failure.
type Dictionary interface {
	Define(ctx context.Context, word, language string) *models.DictionaryEntry
}

// Metrics records bot activity.
type Metrics interface {
	CommandHandled(command string)
	UpstreamFailed(service string)
	UpdateProcessed(outcome string)
}

// Chooser picks a random index in [0, n).
type Chooser interface {
	IntN(n int) int
}

// Services bundles the external service clients. Clients of missing
// capabilities may be nil, their handler groups are not registered.
type Services struct {
	Generative GenerativeModel
	Weather    Weather
	Translate  Translate
	Dictionary Dictionary
}

// TgBotServices is the main service struct of the bot, integrating all dependencies.
type TgBotServices struct {
	Platform   Platform            // Telegram Bot API
	StateRepo  ChatStateRepository // per-chat state
	Services   Services            // external services
	Content    *content.Content    // random texts, quiz and shop
	metrics    Metrics
	dispatcher *Dispatcher
	random     Chooser
	now        func() time.Time
}

// NewTgBot creates the bot and registers every handler group whose
// capabilities are available.
// Arguments:
//   - platform: Telegram Bot API.
//   - botName: username of the bot, commands addressed to other bots are ignored.
//   - stateRepo: per-chat state store.
//   - services: external service clients.
//   - texts: fun and game content.
//   - caps: integrations enabled at composition time.
//   - m: metrics recorder, may be nil.
//
// Returns the bot or an error when two handlers claim the same command.
func NewTgBot(platform Platform, botName string, stateRepo ChatStateRepository, services Services, texts *content.Content, caps models.CapabilitySet, m Metrics) (*TgBotServices, error) {
	if m == nil {
		m = (*metrics.Metrics)(nil)
	}
	if texts == nil {
		texts = &content.Content{}
	}
	b := &TgBotServices{
		Platform:   platform,
		StateRepo:  stateRepo,
		Services:   services,
		Content:    texts,
		metrics:    m,
		dispatcher: NewDispatcher(botName),
		random:     NewRandomPicker(),
		now:        time.Now,
	}
	if err := b.dispatcher.RegisterGroups(b.handlerGroups(), caps); err != nil {
		return nil, err
	}
	return b, nil
}

// Commands returns the sorted names of every registered command.
func (b *TgBotServices) Commands() []string {
	return b.dispatcher.Commands()
}

// HandleUpdate processes one incoming update. Any panic raised by a handler
// is logged together with the update and swallowed.
func (b *TgBotServices) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			fields := logrus.Fields{"update_id": update.UpdateID, "panic": r}
			if chat := update.FromChat(); chat != nil {
				fields["chat_id"] = chat.ID
			}
			logrus.WithFields(fields).Errorf("Unhandled error while processing update\n%s", debug.Stack())
			b.metrics.UpdateProcessed(metrics.OutcomePanic)
		}
	}()

	msg := update.Message
	if msg == nil || msg.Chat == nil || !msg.IsCommand() {
		b.metrics.UpdateProcessed(metrics.OutcomeIgnored)
		return
	}

	name, ok := b.dispatcher.Dispatch(ctx, msg)
	if !ok {
		b.metrics.UpdateProcessed(metrics.OutcomeUnknown)
		return
	}
	b.metrics.CommandHandled(name)
	b.metrics.UpdateProcessed(metrics.OutcomeHandled)
}

// sendMessage sends a message to the specified chat.
// Arguments:
//   - chatID: the ID of the chat to send the message to.
//   - text: the text content of the message.
//   - replyToID: the ID of the message to reply to (0 if no reply).
//   - parseMode: tgbotapi.ModeHTML or empty for plain text.
//
// Returns an error if the message fails to send.
func (b *TgBotServices) sendMessage(chatID int64, text string, replyToID int, parseMode string) error {
	msg := tgbotapi.NewMessage(chatID, textutil.Truncate(text, constant.MAX_MESSAGE_LENGTH))
	msg.ParseMode = parseMode
	if replyToID != 0 {
		msg.ReplyToMessageID = replyToID
		msg.AllowSendingWithoutReply = true
	}
	_, err := b.Platform.Send(msg)
	if err != nil {
		logrus.WithError(err).Errorf("Failed to send message to chat %d", chatID)
	}
	return err
}

// reply answers msg with plain text.
func (b *TgBotServices) reply(msg *tgbotapi.Message, text string) {
	_ = b.sendMessage(msg.Chat.ID, text, msg.MessageID, "")
}

// replyHTML answers msg with HTML formatted text.
func (b *TgBotServices) replyHTML(msg *tgbotapi.Message, text string) {
	_ = b.sendMessage(msg.Chat.ID, text, msg.MessageID, tgbotapi.ModeHTML)
}
