package service

import (
	"context"
	"errors"
	"fmt"
	"github.com/DenisKhanov/TgGroupBot/internal/tg_bot/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"sort"
	"strings"
)

// ErrDuplicateCommand is returned when a command name is registered twice.
var ErrDuplicateCommand = errors.New("duplicate command")

// HandlerFunc handles one command message.
type HandlerFunc func(ctx context.Context, msg *tgbotapi.Message)

// Command binds one handler to one or more command names.
type Command struct {
	Names   []string
	Handler HandlerFunc
}

// HandlerGroup is a named set of commands registered together. A group
// with unmet Requires is skipped as a whole.
type HandlerGroup struct {
	Name     string
	Requires []models.Capability
	Commands []Command
}

// Dispatcher routes command messages to their handlers.
type Dispatcher struct {
	botName  string
	handlers map[string]HandlerFunc
}

// NewDispatcher creates an empty dispatcher for the bot with the given username.
func NewDispatcher(botName string) *Dispatcher {
	return &Dispatcher{
		botName:  strings.TrimPrefix(botName, "@"),
		handlers: make(map[string]HandlerFunc),
	}
}

// Register adds every command of group. Nothing is registered when one of
// the names is already taken.
func (d *Dispatcher) Register(group HandlerGroup) error {
	seen := make(map[string]struct{})
	for _, cmd := range group.Commands {
		for _, name := range cmd.Names {
			if _, ok := d.handlers[name]; ok {
				return fmt.Errorf("%w: /%s in group %s", ErrDuplicateCommand, name, group.Name)
			}
			if _, ok := seen[name]; ok {
				return fmt.Errorf("%w: /%s in group %s", ErrDuplicateCommand, name, group.Name)
			}
			seen[name] = struct{}{}
		}
	}
	for _, cmd := range group.Commands {
		for _, name := range cmd.Names {
			d.handlers[name] = cmd.Handler
		}
	}
	return nil
}

// RegisterGroups registers groups in order, skipping those whose
// capabilities are not in caps.
func (d *Dispatcher) RegisterGroups(groups []HandlerGroup, caps models.CapabilitySet) error {
	for _, group := range groups {
		if missing := caps.Missing(group.Requires); len(missing) > 0 {
			logrus.WithField("missing", missing).Warnf("Skipping handler group %s", group.Name)
			continue
		}
		if err := d.Register(group); err != nil {
			return err
		}
		logrus.Debugf("Registered handler group %s", group.Name)
	}
	return nil
}

// Commands returns the registered command names sorted alphabetically.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the handler of the command in msg. It returns the command
// name and false when the command is unknown or addressed to another bot.
// Command names are matched case-sensitively.
func (d *Dispatcher) Dispatch(ctx context.Context, msg *tgbotapi.Message) (string, bool) {
	name, ok := d.commandName(msg)
	if !ok {
		return name, false
	}
	handler, ok := d.handlers[name]
	if !ok {
		return name, false
	}
	handler(ctx, msg)
	return name, true
}

func (d *Dispatcher) commandName(msg *tgbotapi.Message) (string, bool) {
	if !msg.IsCommand() {
		return "", false
	}
	name, target, addressed := strings.Cut(msg.CommandWithAt(), "@")
	if addressed && d.botName != "" && !strings.EqualFold(target, d.botName) {
		return name, false
	}
	return name, true
}
