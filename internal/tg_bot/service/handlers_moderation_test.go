package service

import (
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/constant"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"reflect"
	"sync"
	"testing"
	"time"
)

func TestWarnKicksOnThirdWarning(t *testing.T) {
	b := newTestBot(t, Services{}, nil)

	for i := 0; i < 3; i++ {
		b.handle(command("/warn 42", adminID))
	}

	want := []string{
		"User has been warned (1/3).",
		"User has been warned (2/3).",
		"User has been warned (3/3).",
		"User has been kicked due to excessive warnings.",
	}
	if got := b.platform.texts(); !reflect.DeepEqual(got, want) {
		t.Fatalf("replies = %q, want %q", got, want)
	}
	if len(b.platform.requests) != 2 {
		t.Fatalf("requests = %d, want ban and unban", len(b.platform.requests))
	}
	if _, ok := b.platform.requests[0].(tgbotapi.BanChatMemberConfig); !ok {
		t.Errorf("first request = %T, want BanChatMemberConfig", b.platform.requests[0])
	}
	if _, ok := b.platform.requests[1].(tgbotapi.UnbanChatMemberConfig); !ok {
		t.Errorf("second request = %T, want UnbanChatMemberConfig", b.platform.requests[1])
	}
	if got := b.store.Snapshot(testChatID).Warnings[targetID]; got != 0 {
		t.Fatalf("warnings after kick = %d, want 0", got)
	}
}

func TestConcurrentWarnsKickEveryThirdWarning(t *testing.T) {
	const warns = 30
	b := newTestBot(t, Services{}, nil)

	var wg sync.WaitGroup
	for i := 0; i < warns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.handle(command("/warn 42", adminID))
		}()
	}
	wg.Wait()

	counts := map[string]int{}
	for _, text := range b.platform.texts() {
		counts[text]++
	}
	want := map[string]int{
		"User has been warned (1/3).":                     warns / 3,
		"User has been warned (2/3).":                     warns / 3,
		"User has been warned (3/3).":                     warns / 3,
		"User has been kicked due to excessive warnings.": warns / 3,
	}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("replies = %v, want %v", counts, want)
	}

	bans := 0
	for _, r := range b.platform.requests {
		if _, ok := r.(tgbotapi.BanChatMemberConfig); ok {
			bans++
		}
	}
	if bans != warns/3 {
		t.Fatalf("bans = %d, want %d", bans, warns/3)
	}
	if got := b.store.Snapshot(testChatID).Warnings[targetID]; got != 0 {
		t.Fatalf("warnings = %d, want 0", got)
	}
}

func TestWarnReportsFailedKick(t *testing.T) {
	b := newTestBot(t, Services{}, nil)
	b.store.Update(testChatID, func(s *models.ChatState) { s.Warnings[targetID] = 2 })
	b.platform.requestErr = errPlatform

	b.handle(command("/warn 42", adminID))

	if got := b.platform.lastText(t); got != "Failed to kick user. Do I have sufficient rights?" {
		t.Fatalf("reply = %q", got)
	}
	if got := b.store.Snapshot(testChatID).Warnings[targetID]; got != 0 {
		t.Fatalf("warnings = %d, want reset to 0", got)
	}
}

func TestUnwarnNeverGoesNegative(t *testing.T) {
	b := newTestBot(t, Services{}, nil)

	b.handle(command("/unwarn 42", adminID))
	if got := b.platform.lastText(t); got != "That user has no warnings." {
		t.Fatalf("reply = %q", got)
	}

	b.handle(command("/warn 42", adminID))
	b.handle(command("/unwarn 42", adminID))
	if got := b.platform.lastText(t); got != "Removed a warning. Total warnings: 0." {
		t.Fatalf("reply = %q", got)
	}
	b.handle(command("/unwarn 42", adminID))
	if got := b.store.Snapshot(testChatID).Warnings[targetID]; got != 0 {
		t.Fatalf("warnings = %d, want 0", got)
	}
}

func TestWarnList(t *testing.T) {
	b := newTestBot(t, Services{}, nil)
	b.handle(command("/warnings", memberID))
	if got := b.platform.lastText(t); got != "No warnings have been issued in this chat." {
		t.Fatalf("reply = %q", got)
	}

	b.store.Update(testChatID, func(s *models.ChatState) {
		s.Warnings[9] = 2
		s.Warnings[3] = 1
	})
	b.handle(command("/warns", memberID))
	if got, want := b.platform.lastText(t), "<b>Warnings:</b>\nUser 3: 1 warning(s)\nUser 9: 2 warning(s)"; got != want {
		t.Fatalf("reply = %q, want %q", got, want)
	}
}

func TestModerationRequiresAdmin(t *testing.T) {
	for _, text := range []string{"/ban 42", "/unban 42", "/kick 42", "/mute 42", "/unmute 42", "/warn 42", "/unwarn 42", "/promote 42", "/demote 42"} {
		t.Run(text, func(t *testing.T) {
			b := newTestBot(t, Services{}, nil)
			b.handle(command(text, memberID))
			if got := b.platform.lastText(t); got != constant.MSG_ADMIN_ONLY {
				t.Fatalf("reply = %q, want denial", got)
			}
			if len(b.platform.requests) != 0 {
				t.Fatalf("non-admin triggered %d platform requests", len(b.platform.requests))
			}
		})
	}
}

func TestAdminLookupFailureDenies(t *testing.T) {
	b := newTestBot(t, Services{}, nil)
	b.platform.memberErr = errPlatform

	b.handle(command("/ban 42", adminID))

	if got := b.platform.lastText(t); got != constant.MSG_ADMIN_ONLY {
		t.Fatalf("reply = %q, want denial", got)
	}
}

func TestBanTargets(t *testing.T) {
	tests := []struct {
		name   string
		msg    func() *tgbotapi.Message
		reply  string
		target int64
	}{
		{
			name:   "numeric id",
			msg:    func() *tgbotapi.Message { return command("/ban 42", adminID) },
			reply:  "User has been banned.",
			target: 42,
		},
		{
			name:   "id with at sign",
			msg:    func() *tgbotapi.Message { return command("/ban @42", adminID) },
			reply:  "User has been banned.",
			target: 42,
		},
		{
			name: "reply wins over argument",
			msg: func() *tgbotapi.Message {
				return replyTo(command("/ban 42", adminID), &tgbotapi.User{ID: 77}, 50)
			},
			reply:  "User has been banned.",
			target: 77,
		},
		{
			name:  "username is not resolved",
			msg:   func() *tgbotapi.Message { return command("/ban @someone", adminID) },
			reply: "Please specify a user to ban (reply or mention).",
		},
		{
			name:  "no target",
			msg:   func() *tgbotapi.Message { return command("/ban", adminID) },
			reply: "Please specify a user to ban (reply or mention).",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBot(t, Services{}, nil)
			b.handle(tt.msg())
			if got := b.platform.lastText(t); got != tt.reply {
				t.Fatalf("reply = %q, want %q", got, tt.reply)
			}
			if tt.target == 0 {
				if len(b.platform.requests) != 0 {
					t.Fatalf("unexpected requests %v", b.platform.requests)
				}
				return
			}
			ban, ok := b.platform.requests[0].(tgbotapi.BanChatMemberConfig)
			if !ok || ban.UserID != tt.target || ban.ChatID != testChatID {
				t.Fatalf("request = %+v, want ban of %d", b.platform.requests[0], tt.target)
			}
		})
	}
}

func TestBanFailureAsksForRights(t *testing.T) {
	b := newTestBot(t, Services{}, nil)
	b.platform.requestErr = errPlatform

	b.handle(command("/kick 42", adminID))

	if got := b.platform.lastText(t); got != "Failed to kick user. Do I have sufficient rights?" {
		t.Fatalf("reply = %q", got)
	}
}

func TestMuteDuration(t *testing.T) {
	tests := []struct {
		name  string
		msg   func() *tgbotapi.Message
		reply string
		until time.Time
	}{
		{
			name:  "with duration",
			msg:   func() *tgbotapi.Message { return command("/mute 42 2h30m", adminID) },
			reply: "User has been muted. Mute duration: 2 hours, 30 minutes.",
			until: testNow.Add(150 * time.Minute),
		},
		{
			name: "reply with duration",
			msg: func() *tgbotapi.Message {
				return replyTo(command("/mute 1d", adminID), &tgbotapi.User{ID: targetID}, 50)
			},
			reply: "User has been muted. Mute duration: 1 day.",
			until: testNow.Add(24 * time.Hour),
		},
		{
			name:  "forever",
			msg:   func() *tgbotapi.Message { return command("/mute 42", adminID) },
			reply: "User has been muted.",
			until: testNow.Add(muteForever),
		},
		{
			name:  "overlong duration",
			msg:   func() *tgbotapi.Message { return command("/mute 42 30501w", adminID) },
			reply: "User has been muted.",
			until: testNow.Add(muteForever),
		},
		{
			name:  "duration beyond int64",
			msg:   func() *tgbotapi.Message { return command("/mute 42 15251w", adminID) },
			reply: "User has been muted.",
			until: testNow.Add(muteForever),
		},
		{
			name:  "unparsable duration",
			msg:   func() *tgbotapi.Message { return command("/mute 42 soon", adminID) },
			reply: "User has been muted.",
			until: testNow.Add(muteForever),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBot(t, Services{}, nil)
			b.handle(tt.msg())
			if got := b.platform.lastText(t); got != tt.reply {
				t.Fatalf("reply = %q, want %q", got, tt.reply)
			}
			restrict, ok := b.platform.requests[0].(tgbotapi.RestrictChatMemberConfig)
			if !ok {
				t.Fatalf("request = %T, want RestrictChatMemberConfig", b.platform.requests[0])
			}
			if restrict.UserID != targetID || restrict.UntilDate != tt.until.Unix() {
				t.Fatalf("restrict = user %d until %d, want %d until %d", restrict.UserID, restrict.UntilDate, targetID, tt.until.Unix())
			}
			if restrict.Permissions.CanSendMessages {
				t.Fatal("muted user can still send messages")
			}
		})
	}
}

func TestUnmuteRestoresMessaging(t *testing.T) {
	b := newTestBot(t, Services{}, nil)
	b.handle(command("/unmute 42", adminID))

	if got := b.platform.lastText(t); got != "User has been unmuted." {
		t.Fatalf("reply = %q", got)
	}
	restrict := b.platform.requests[0].(tgbotapi.RestrictChatMemberConfig)
	p := restrict.Permissions
	if !p.CanSendMessages || !p.CanSendMediaMessages || !p.CanSendOtherMessages || !p.CanAddWebPagePreviews {
		t.Fatalf("permissions = %+v", p)
	}
}

func TestPromoteAndDemote(t *testing.T) {
	b := newTestBot(t, Services{}, nil)

	b.handle(command("/promote 42", adminID))
	if got := b.platform.lastText(t); got != "User has been promoted to admin." {
		t.Fatalf("reply = %q", got)
	}
	promote := b.platform.requests[0].(tgbotapi.PromoteChatMemberConfig)
	if !promote.CanDeleteMessages || !promote.CanRestrictMembers || promote.CanPromoteMembers {
		t.Fatalf("promote rights = %+v", promote)
	}

	b.handle(command("/demote 42", adminID))
	if got := b.platform.lastText(t); got != "User has been demoted." {
		t.Fatalf("reply = %q", got)
	}
	demote := b.platform.requests[1].(tgbotapi.PromoteChatMemberConfig)
	if demote.CanDeleteMessages || demote.CanManageChat || demote.CanPinMessages {
		t.Fatalf("demote rights = %+v", demote)
	}
}
