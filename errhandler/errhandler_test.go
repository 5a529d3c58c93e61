package errhandler

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	abot "github.com/diamondburned/arikawa/v2/bot"
	"github.com/diamondburned/arikawa/v2/discord"
	"github.com/diamondburned/arikawa/v2/gateway"

	"github.com/bouncerbot/bouncer/cmderr"
)

type sent struct {
	content string
	embed   *discord.Embed
}

type fakeAPI struct {
	sends []sent
}

func (f *fakeAPI) SendMessage(
	chID discord.ChannelID, content string, embed *discord.Embed) (*discord.Message, error) {

	f.sends = append(f.sends, sent{content: content, embed: embed})
	return &discord.Message{}, nil
}

type harness struct {
	d            *Dispatcher
	api          *fakeAPI
	silenceCalls int
	tagCalls     int
}

func newHarness(silenceReturn bool) *harness {
	h := &harness{api: &fakeAPI{}}
	h.d = &Dispatcher{
		API:                 h.api,
		Prefix:              "!",
		VerificationChannel: 1234,
		Silence: func(m *gateway.MessageCreateEvent, invoked string) bool {
			h.silenceCalls++
			return silenceReturn
		},
		GetTag: func(m *gateway.MessageCreateEvent, invoked string) error {
			h.tagCalls++
			return nil
		},
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return h
}

func message(channel discord.ChannelID, content string) *gateway.MessageCreateEvent {
	return &gateway.MessageCreateEvent{
		Message: discord.Message{
			ID:        11,
			ChannelID: channel,
			Content:   content,
			Author:    discord.User{ID: 200, Username: "someone"},
		},
	}
}

func TestAlreadyHandled(t *testing.T) {
	h := newHarness(true)

	h.d.HandleCommandError(message(1, "!foo"),
		cmderr.Handled(errors.New("boom"), "foo"))

	if len(h.api.sends) != 0 {
		t.Error("handled error still produced a send")
	}
	if h.silenceCalls != 0 || h.tagCalls != 0 {
		t.Error("handled error still ran recovery hooks")
	}
}

func TestUnknownCommand(t *testing.T) {
	cases := []struct {
		name            string
		silenceReturn   bool
		channel         discord.ChannelID
		wantTagCalls    int
		wantSilenceRuns int
	}{
		{"silence handles it", true, 1, 0, 1},
		{"verification channel suppressed", false, 1234, 0, 1},
		{"falls back to tags", false, 1, 1, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(c.silenceReturn)

			h.d.HandleCommandError(message(c.channel, "!doesnotexist"),
				&abot.ErrUnknownCommand{})

			if h.silenceCalls != c.wantSilenceRuns {
				t.Error("unexpected silence attempts:", h.silenceCalls)
			}
			if h.tagCalls != c.wantTagCalls {
				t.Error("unexpected tag fallbacks:", h.tagCalls)
			}
			if len(h.api.sends) != 0 {
				t.Error("unknown command produced a direct send")
			}
		})
	}
}

func TestUnknownCommandReinvoked(t *testing.T) {
	h := newHarness(false)

	h.d.HandleCommandError(message(1, "!doesnotexist"),
		cmderr.Reinvoke(&abot.ErrUnknownCommand{}))

	if h.silenceCalls != 0 || h.tagCalls != 0 {
		t.Error("reinvoked unknown command was reprocessed")
	}
	if len(h.api.sends) != 0 {
		t.Error("reinvoked unknown command produced a send")
	}
}

func TestUserInputError(t *testing.T) {
	h := newHarness(false)

	h.d.HandleCommandError(message(1, "!allowlist add"),
		cmderr.BadArgumentf("unknown list type"))

	if len(h.api.sends) != 1 {
		t.Fatal("unexpected send count:", len(h.api.sends))
	}

	embed := h.api.sends[0].embed
	if embed == nil || !strings.Contains(embed.Description, "unknown list type") {
		t.Errorf("error text not shown: %+v", embed)
	}
	if h.silenceCalls != 0 || h.tagCalls != 0 {
		t.Error("input error ran unknown-command hooks")
	}
}

func TestCheckFailure(t *testing.T) {
	h := newHarness(false)

	h.d.HandleCommandError(message(1, "!allowlist get domain"),
		&cmderr.CheckError{Missing: []discord.RoleID{1}})

	if len(h.api.sends) != 1 {
		t.Fatal("unexpected send count:", len(h.api.sends))
	}
	if !strings.Contains(h.api.sends[0].content, "moderation roles") {
		t.Error("unexpected message:", h.api.sends[0].content)
	}
}

func TestCheckFailureSilent(t *testing.T) {
	h := newHarness(false)

	h.d.HandleCommandError(message(1, "!secret"),
		&cmderr.CheckError{Silent: true})

	if len(h.api.sends) != 0 {
		t.Error("silent check failure produced a send")
	}
}

func TestCooldown(t *testing.T) {
	h := newHarness(false)
	err := &cmderr.CooldownError{Command: "tags", RetryAfter: 9 * time.Second}

	h.d.HandleCommandError(message(1, "!tags faq"), err)

	if len(h.api.sends) != 1 {
		t.Fatal("unexpected send count:", len(h.api.sends))
	}
	if h.api.sends[0].content != err.Error() {
		t.Error("cooldown message is not the error text:", h.api.sends[0].content)
	}
}

func TestUnexpectedError(t *testing.T) {
	h := newHarness(false)

	h.d.HandleCommandError(message(1, "!ping"), errors.New("boom"))

	if len(h.api.sends) != 1 {
		t.Fatal("unexpected send count:", len(h.api.sends))
	}
	if !strings.Contains(h.api.sends[0].content, "unexpected error") {
		t.Error("unexpected message:", h.api.sends[0].content)
	}
}
