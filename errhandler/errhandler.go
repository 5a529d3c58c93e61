// Package errhandler centralizes handling of errors raised while executing
// commands. Every error a command invocation produces flows through one
// Dispatcher, which classifies it and picks a user-facing response or a
// silent recovery, terminal on the first match.
package errhandler

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/diamondburned/arikawa/v2/bot"
	"github.com/diamondburned/arikawa/v2/discord"
	"github.com/diamondburned/arikawa/v2/gateway"

	"github.com/bouncerbot/bouncer/cmderr"
)

const colorRed discord.Color = 0xE74C3C

// API sends messages back to the invoking channel.
type API interface {
	SendMessage(chID discord.ChannelID, content string, embed *discord.Embed) (*discord.Message, error)
}

// Dispatcher routes command errors. The Silence and GetTag hooks are the
// unknown-command recovery actions; either may be nil to disable it. Hooks
// that re-enter command machinery must wrap resulting errors with
// cmderr.Reinvoke so a second unknown-command error is dropped instead of
// reprocessed.
type Dispatcher struct {
	API    API
	Prefix string

	// VerificationChannel suppresses the tag fallback: unknown commands
	// tried there stay unanswered. Zero disables the rule.
	VerificationChannel discord.ChannelID

	// Silence attempts the channel-silence recovery for an unknown command
	// and reports whether it consumed the invocation.
	Silence func(m *gateway.MessageCreateEvent, invoked string) bool

	// GetTag attempts to answer an unknown command with a tag of that name.
	GetTag func(m *gateway.MessageCreateEvent, invoked string) error

	Log *slog.Logger
}

// HandleCommandError classifies err and performs exactly one recovery or
// report action. No branch retries; failures of the delegated actions are
// logged here, as this is the outer error boundary.
func (d *Dispatcher) HandleCommandError(m *gateway.MessageCreateEvent, err error) {
	if by := cmderr.HandledBy(err); by != "" {
		d.Log.Debug("command error already handled", "by", by, "err", err)
		return
	}

	var unknown *bot.ErrUnknownCommand
	if errors.As(err, &unknown) {
		d.handleUnknownCommand(m, err)
		return
	}

	var usage *bot.ErrInvalidUsage
	if errors.As(err, &usage) {
		d.handleUserInputError(m, usage)
		return
	}

	var bad *cmderr.BadArgument
	if errors.As(err, &bad) {
		d.handleUserInputError(m, bad)
		return
	}

	var check *cmderr.CheckError
	if errors.As(err, &check) {
		d.handleCheckFailure(m, check)
		return
	}

	var cd *cmderr.CooldownError
	if errors.As(err, &cd) {
		d.send(m, cd.Error())
		return
	}

	d.Log.Error("unhandled command error",
		"channel", m.ChannelID, "author", m.Author.Username, "err", err)
	d.send(m, "Sorry, an unexpected error occurred. Please let us know!")
}

func (d *Dispatcher) handleUnknownCommand(m *gateway.MessageCreateEvent, err error) {
	// An unknown command error coming out of our own fallback must never be
	// reprocessed.
	if cmderr.IsReinvoked(err) {
		return
	}

	invoked := d.invokedWith(m)

	if d.Silence != nil && d.Silence(m, invoked) {
		return
	}

	if d.VerificationChannel.IsValid() && m.ChannelID == d.VerificationChannel {
		return
	}

	if d.GetTag != nil {
		if err := d.GetTag(m, invoked); err != nil {
			d.Log.Error("tag fallback failed", "invoked", invoked, "err", err)
		}
	}
}

func (d *Dispatcher) handleUserInputError(m *gateway.MessageCreateEvent, err error) {
	embed := discord.Embed{
		Title:       "Invalid command usage",
		Description: err.Error() + "\n\nUse `" + d.Prefix + "help` for usage details.",
		Color:       colorRed,
	}

	if _, serr := d.API.SendMessage(m.ChannelID, "", &embed); serr != nil {
		d.Log.Error("failed to report user input error", "err", serr)
	}
}

func (d *Dispatcher) handleCheckFailure(m *gateway.MessageCreateEvent, check *cmderr.CheckError) {
	if check.Silent {
		d.Log.Debug("suppressed check failure",
			"channel", m.ChannelID, "author", m.Author.Username)
		return
	}

	msg := "You do not have permission to use this command here."
	if len(check.Missing) > 0 {
		msg = "You need one of the moderation roles to use this command."
	}
	d.send(m, msg)
}

func (d *Dispatcher) send(m *gateway.MessageCreateEvent, content string) {
	if _, err := d.API.SendMessage(m.ChannelID, content, nil); err != nil {
		d.Log.Error("failed to send error response", "err", err)
	}
}

// invokedWith extracts the command name the user attempted, the same way the
// router would: prefix stripped, first field, lowercased.
func (d *Dispatcher) invokedWith(m *gateway.MessageCreateEvent) string {
	content := strings.TrimPrefix(m.Content, d.Prefix)

	fields := strings.Fields(content)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
