package service

import (
	"context"
	"errors"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/content"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/models"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/repository"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"strings"
	"sync"
	"testing"
	"time"
)

const (
	testChatID = int64(-100500)
	adminID    = int64(1)
	memberID   = int64(7)
	targetID   = int64(42)
)

var (
	errPlatform = errors.New("bad request: not enough rights")
	testNow     = time.Date(2024, 5, 17, 12, 30, 45, 0, time.UTC)
)

// fakePlatform records everything the bot sends to Telegram.
type fakePlatform struct {
	mu         sync.Mutex
	admins     map[int64]bool
	adminList  []tgbotapi.ChatMember
	sendErr    error
	requestErr error
	memberErr  error
	adminsErr  error
	sent       []tgbotapi.Chattable
	requests   []tgbotapi.Chattable
}

func (f *fakePlatform) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	if f.sendErr != nil {
		return tgbotapi.Message{}, f.sendErr
	}
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakePlatform) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	if f.requestErr != nil {
		return nil, f.requestErr
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakePlatform) GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error) {
	if f.memberErr != nil {
		return tgbotapi.ChatMember{}, f.memberErr
	}
	status := "member"
	if f.admins[config.UserID] {
		status = "administrator"
	}
	return tgbotapi.ChatMember{User: &tgbotapi.User{ID: config.UserID}, Status: status}, nil
}

func (f *fakePlatform) GetChatAdministrators(tgbotapi.ChatAdministratorsConfig) ([]tgbotapi.ChatMember, error) {
	if f.adminsErr != nil {
		return nil, f.adminsErr
	}
	return f.adminList, nil
}

// texts returns the text of every sent message.
func (f *fakePlatform) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var texts []string
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			texts = append(texts, m.Text)
		}
	}
	return texts
}

// lastText returns the text of the last sent message.
func (f *fakePlatform) lastText(t *testing.T) string {
	t.Helper()
	texts := f.texts()
	if len(texts) == 0 {
		t.Fatal("no message was sent")
	}
	return texts[len(texts)-1]
}

// fixedChooser always picks the same index.
type fixedChooser int

func (c fixedChooser) IntN(n int) int {
	return int(c) % n
}

type fakeGenerative struct {
	answer   string
	panics   bool
	messages []models.Message
}

func (g *fakeGenerative) Chat(_ context.Context, messages []models.Message) string {
	if g.panics {
		panic("model exploded")
	}
	g.messages = messages
	return g.answer
}

type fakeWeather struct{ result *models.Weather }

func (w fakeWeather) Get(context.Context, string) *models.Weather { return w.result }

type fakeTranslate struct {
	result                   *models.Translation
	text, target, sourceLang string
}

func (f *fakeTranslate) Translate(_ context.Context, text, targetLang, sourceLang string) *models.Translation {
	f.text, f.target, f.sourceLang = text, targetLang, sourceLang
	return f.result
}

type fakeDictionary struct{ result *models.DictionaryEntry }

func (d fakeDictionary) Define(context.Context, string, string) *models.DictionaryEntry { return d.result }

// recordingMetrics counts upstream failures per service.
type recordingMetrics struct {
	mu       sync.Mutex
	failures map[string]int
}

func (m *recordingMetrics) CommandHandled(string)  {}
func (m *recordingMetrics) UpdateProcessed(string) {}

func (m *recordingMetrics) UpstreamFailed(service string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures == nil {
		m.failures = map[string]int{}
	}
	m.failures[service]++
}

func (m *recordingMetrics) failed(service string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failures[service]
}

type testBot struct {
	*TgBotServices
	platform *fakePlatform
	store    *repository.ChatStates
}

func newTestBot(t *testing.T, services Services, caps models.CapabilitySet) *testBot {
	t.Helper()
	platform := &fakePlatform{admins: map[int64]bool{adminID: true}}
	store := repository.NewChatStates()
	texts, err := content.Load()
	if err != nil {
		t.Fatalf("content.Load() error = %v", err)
	}
	bot, err := NewTgBot(platform, "groupbot", store, services, texts, caps, nil)
	if err != nil {
		t.Fatalf("NewTgBot() error = %v", err)
	}
	bot.random = fixedChooser(0)
	bot.now = func() time.Time { return testNow }
	return &testBot{TgBotServices: bot, platform: platform, store: store}
}

// command builds a group message starting with a bot command.
func command(text string, fromID int64) *tgbotapi.Message {
	name, _, _ := strings.Cut(text, " ")
	return &tgbotapi.Message{
		MessageID: 100,
		From:      &tgbotapi.User{ID: fromID, FirstName: "Alice", LastName: "Smith", UserName: "alice"},
		Chat:      &tgbotapi.Chat{ID: testChatID, Type: "supergroup"},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}},
	}
}

// replyTo makes msg a reply to a message written by author.
func replyTo(msg *tgbotapi.Message, author *tgbotapi.User, messageID int) *tgbotapi.Message {
	msg.ReplyToMessage = &tgbotapi.Message{MessageID: messageID, From: author, Chat: msg.Chat}
	return msg
}

func (b *testBot) handle(msg *tgbotapi.Message) {
	b.HandleUpdate(context.Background(), tgbotapi.Update{UpdateID: 1, Message: msg})
}
