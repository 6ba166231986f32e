package service

import (
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/constant"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"testing"
)

func TestPin(t *testing.T) {
	b := newTestBot(t, Services{}, nil)

	b.handle(command("/pin", adminID))
	if got := b.platform.lastText(t); got != "Reply to a message you want to pin." {
		t.Fatalf("reply = %q", got)
	}

	b.handle(replyTo(command("/pin", adminID), &tgbotapi.User{ID: targetID}, 55))
	if got := b.platform.lastText(t); got != "Message pinned." {
		t.Fatalf("reply = %q", got)
	}
	pin := b.platform.requests[0].(tgbotapi.PinChatMessageConfig)
	if pin.MessageID != 55 || pin.ChatID != testChatID {
		t.Fatalf("pin = %+v", pin)
	}

	b.handle(replyTo(command("/pin", memberID), &tgbotapi.User{ID: targetID}, 55))
	if got := b.platform.lastText(t); got != "You must be an admin to pin messages." {
		t.Fatalf("reply = %q", got)
	}
}

func TestUnpinWithoutReplyUnpinsAll(t *testing.T) {
	b := newTestBot(t, Services{}, nil)

	b.handle(command("/unpin", adminID))
	if _, ok := b.platform.requests[0].(tgbotapi.UnpinAllChatMessagesConfig); !ok {
		t.Fatalf("request = %T, want UnpinAllChatMessagesConfig", b.platform.requests[0])
	}
	if got := b.platform.lastText(t); got != "Message(s) unpinned." {
		t.Fatalf("reply = %q", got)
	}

	b.handle(replyTo(command("/unpin", adminID), &tgbotapi.User{ID: targetID}, 55))
	if _, ok := b.platform.requests[1].(tgbotapi.UnpinChatMessageConfig); !ok {
		t.Fatalf("request = %T, want UnpinChatMessageConfig", b.platform.requests[1])
	}
}

func TestPurgeDeletesRangeAndIgnoresFailures(t *testing.T) {
	b := newTestBot(t, Services{}, nil)
	b.platform.requestErr = errPlatform

	b.handle(replyTo(command("/purge", adminID), &tgbotapi.User{ID: targetID}, 96))

	if len(b.platform.requests) != 5 {
		t.Fatalf("delete requests = %d, want 5 (96..100)", len(b.platform.requests))
	}
	for i, r := range b.platform.requests {
		del := r.(tgbotapi.DeleteMessageConfig)
		if del.MessageID != 96+i {
			t.Fatalf("request %d deletes message %d", i, del.MessageID)
		}
	}
	if got := b.platform.lastText(t); got != "Messages purged." {
		t.Fatalf("reply = %q", got)
	}
}

func TestPurgeNeedsReply(t *testing.T) {
	b := newTestBot(t, Services{}, nil)
	b.handle(command("/purge", adminID))
	if got := b.platform.lastText(t); got != "Reply to a message to purge from that message up to the current one." {
		t.Fatalf("reply = %q", got)
	}
}

func TestWelcomeMessage(t *testing.T) {
	b := newTestBot(t, Services{}, nil)

	b.handle(command("/welcome", memberID))
	if got := b.platform.lastText(t); got != "No welcome message has been set." {
		t.Fatalf("reply = %q", got)
	}

	b.handle(command("/setwelcome Hi <all>", memberID))
	if got := b.platform.lastText(t); got != constant.MSG_ADMIN_ONLY {
		t.Fatalf("reply = %q", got)
	}

	b.handle(command("/setwelcome", adminID))
	if got := b.platform.lastText(t); got != "Usage: /setwelcome Your welcome message here." {
		t.Fatalf("reply = %q", got)
	}

	b.handle(command("/setwelcome Hi <all>", adminID))
	b.handle(command("/welcome", memberID))
	if got := b.platform.lastText(t); got != "Hi &lt;all&gt;" {
		t.Fatalf("reply = %q", got)
	}
}

func TestRulesAreStoredEscaped(t *testing.T) {
	b := newTestBot(t, Services{}, nil)

	b.handle(command("/rules", memberID))
	if got := b.platform.lastText(t); got != constant.MSG_NO_RULES {
		t.Fatalf("reply = %q", got)
	}

	b.handle(command("/setrules No <spam> & be kind", adminID))
	if got := b.platform.lastText(t); got != "Rules have been updated." {
		t.Fatalf("reply = %q", got)
	}
	b.handle(command("/rules", memberID))
	if got := b.platform.lastText(t); got != "No &lt;spam&gt; &amp; be kind" {
		t.Fatalf("reply = %q", got)
	}
}

func TestTagAllIsDisabled(t *testing.T) {
	b := newTestBot(t, Services{}, nil)
	b.handle(command("/tagall", memberID))
	if got := b.platform.lastText(t); got != "Tagging all members is disabled to prevent spam." {
		t.Fatalf("reply = %q", got)
	}
}
