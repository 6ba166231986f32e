package service

import (
	"context"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"testing"
)

func TestHandleUpdateIgnoresNonCommands(t *testing.T) {
	b := newTestBot(t, Services{}, nil)

	plain := command("hello", memberID)
	plain.Entities = nil
	b.handle(plain)
	b.HandleUpdate(context.Background(), tgbotapi.Update{UpdateID: 2, EditedMessage: command("/ping", memberID)})
	b.handle(command("/nosuchcommand", memberID))
	b.handle(command("/ping@otherbot", memberID))

	if texts := b.platform.texts(); len(texts) != 0 {
		t.Fatalf("replies = %q, want none", texts)
	}

	b.handle(command("/ping@groupbot", memberID))
	if got := b.platform.lastText(t); got != "Pong!" {
		t.Fatalf("reply = %q", got)
	}
}

func TestHandleUpdateRecoversFromPanics(t *testing.T) {
	b := newTestBot(t, Services{Generative: &fakeGenerative{panics: true}}, models.NewCapabilitySet(models.CapabilityGenerative))

	b.handle(command("/ai hello", memberID))
	b.handle(command("/ping", memberID))

	if got := b.platform.lastText(t); got != "Pong!" {
		t.Fatalf("bot stopped working after a panic, reply = %q", got)
	}
}

func TestSendFailureIsNotFatal(t *testing.T) {
	b := newTestBot(t, Services{}, nil)
	b.platform.sendErr = errPlatform

	b.handle(command("/ping", memberID))

	if len(b.platform.sent) != 1 {
		t.Fatalf("sent = %d, want one attempt", len(b.platform.sent))
	}
}
