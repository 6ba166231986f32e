package service

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"testing"
)

func TestID(t *testing.T) {
	b := newTestBot(t, Services{}, nil)
	b.handle(command("/id", memberID))
	if got, want := b.platform.lastText(t), "Chat ID: <code>-100500</code>\nUser ID: <code>7</code>"; got != want {
		t.Fatalf("reply = %q, want %q", got, want)
	}
}

func TestUserInfoOfRepliedUser(t *testing.T) {
	b := newTestBot(t, Services{}, nil)
	b.handle(command("/warn 42", adminID))

	target := &tgbotapi.User{ID: targetID, FirstName: "Bob"}
	b.handle(replyTo(command("/user", memberID), target, 10))

	want := "User: <b>Bob</b>\nID: <code>42</code>\nUsername: none\nWarnings: 1"
	if got := b.platform.lastText(t); got != want {
		t.Fatalf("reply = %q, want %q", got, want)
	}
}

func TestWhoisOfSender(t *testing.T) {
	b := newTestBot(t, Services{}, nil)
	b.handle(command("/whois", memberID))

	want := "User: <b>Alice Smith</b>\nID: <code>7</code>\nUsername: @alice"
	if got := b.platform.lastText(t); got != want {
		t.Fatalf("reply = %q, want %q", got, want)
	}
}

func TestReportMentionsHumanAdmins(t *testing.T) {
	b := newTestBot(t, Services{}, nil)
	b.platform.adminList = []tgbotapi.ChatMember{
		{User: &tgbotapi.User{ID: 1, UserName: "boss"}, Status: "creator"},
		{User: &tgbotapi.User{ID: 2, FirstName: "<Ann>"}, Status: "administrator"},
		{User: &tgbotapi.User{ID: 3, UserName: "helperbot", IsBot: true}, Status: "administrator"},
	}

	b.handle(command("/report", memberID))

	want := `Reported to admins: @boss <a href="tg://user?id=2">&lt;Ann&gt;</a>`
	if got := b.platform.lastText(t); got != want {
		t.Fatalf("reply = %q, want %q", got, want)
	}
}

func TestReportFailures(t *testing.T) {
	b := newTestBot(t, Services{}, nil)
	b.handle(command("/report", memberID))
	if got := b.platform.lastText(t); got != "Reported to admins: (no admins)" {
		t.Fatalf("reply = %q", got)
	}

	b.platform.adminsErr = errPlatform
	b.handle(command("/report", memberID))
	if got := b.platform.lastText(t); got != "Failed to report message." {
		t.Fatalf("reply = %q", got)
	}
}
