// Package repository provides the in-memory chat state store of the group bot.
// Every chat gets its own lock, so read-modify-write sequences on one chat
// never interleave while different chats proceed in parallel.
package repository

import (
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/models"
	"github.com/sirupsen/logrus"
	"sync"
)

// chatEntry pairs a chat state with the mutex serializing access to it.
type chatEntry struct {
	mu    sync.Mutex
	state *models.ChatState
}

// ChatStates manages the state of every chat the bot has seen.
type ChatStates struct {
	mu    sync.Mutex // protects chats, not the entries themselves
	chats map[int64]*chatEntry
}

// NewChatStates creates an empty store.
func NewChatStates() *ChatStates {
	return &ChatStates{
		chats: make(map[int64]*chatEntry),
	}
}

// entry returns the entry of chatID, creating it on first use.
func (c *ChatStates) entry(chatID int64) *chatEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.chats[chatID]
	if !ok {
		e = &chatEntry{state: models.NewChatState(chatID)}
		c.chats[chatID] = e
		logrus.WithField("chat_id", chatID).Debug("Chat state created")
	}
	return e
}

// Update runs fn with exclusive access to the state of chatID.
// Arguments:
//   - chatID: Telegram chat ID.
//   - fn: mutation to apply. It must not block on network I/O and must not keep the pointer.
func (c *ChatStates) Update(chatID int64, fn func(state *models.ChatState)) {
	e := c.entry(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.state)
}

// Snapshot returns a copy of the state of chatID.
// A chat that was never written to yields an empty state and is not stored.
func (c *ChatStates) Snapshot(chatID int64) models.ChatState {
	c.mu.Lock()
	e, ok := c.chats[chatID]
	c.mu.Unlock()
	if !ok {
		return models.NewChatState(chatID).Clone()
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Len returns the number of chats with stored state.
func (c *ChatStates) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.chats)
}
