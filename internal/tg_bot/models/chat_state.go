package models

import "sort"

// ChatState is everything the bot remembers about one chat.
// It lives only in memory and is discarded on restart.
type ChatState struct {
	ChatID         int64                       // Telegram chat ID the state belongs to
	Warnings       map[int64]int               // user ID -> warning count, never negative
	Locks          map[string]struct{}         // advisory content-type locks, lowercase
	Bank           map[int64]int               // user ID -> coin balance, never negative
	Notes          map[int64]map[string]string // user ID -> lowercase title -> content
	XP             map[int64]int               // user ID -> experience points
	QuizAnswer     string                      // expected answer of the pending quiz, empty when none
	Rules          string                      // HTML-escaped group rules
	WelcomeMessage string                      // raw welcome text
	Enabled        bool
	Silent         bool
	Debug          bool
}

// NewChatState returns an empty state for chatID with every map allocated.
func NewChatState(chatID int64) *ChatState {
	return &ChatState{
		ChatID:   chatID,
		Warnings: make(map[int64]int),
		Locks:    make(map[string]struct{}),
		Bank:     make(map[int64]int),
		Notes:    make(map[int64]map[string]string),
		XP:       make(map[int64]int),
	}
}

// Clone returns a deep copy, so callers can read it without holding the chat lock.
func (s *ChatState) Clone() ChatState {
	c := *s
	c.Warnings = make(map[int64]int, len(s.Warnings))
	for k, v := range s.Warnings {
		c.Warnings[k] = v
	}
	c.Locks = make(map[string]struct{}, len(s.Locks))
	for k := range s.Locks {
		c.Locks[k] = struct{}{}
	}
	c.Bank = make(map[int64]int, len(s.Bank))
	for k, v := range s.Bank {
		c.Bank[k] = v
	}
	c.Notes = make(map[int64]map[string]string, len(s.Notes))
	for user, notes := range s.Notes {
		copied := make(map[string]string, len(notes))
		for title, content := range notes {
			copied[title] = content
		}
		c.Notes[user] = copied
	}
	c.XP = make(map[int64]int, len(s.XP))
	for k, v := range s.XP {
		c.XP[k] = v
	}
	return c
}

// SortedLocks returns the locked content types in alphabetical order.
func (s *ChatState) SortedLocks() []string {
	locks := make([]string, 0, len(s.Locks))
	for l := range s.Locks {
		locks = append(locks, l)
	}
	sort.Strings(locks)
	return locks
}

// XPEntry is one row of the XP ranking.
type XPEntry struct {
	UserID int64
	XP     int
}

// XPRanking returns users ordered by XP, highest first. Ties keep user ID order.
func (s *ChatState) XPRanking() []XPEntry {
	ranking := make([]XPEntry, 0, len(s.XP))
	for id, xp := range s.XP {
		ranking = append(ranking, XPEntry{UserID: id, XP: xp})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].XP != ranking[j].XP {
			return ranking[i].XP > ranking[j].XP
		}
		return ranking[i].UserID < ranking[j].UserID
	})
	return ranking
}
