package tags

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	abot "github.com/diamondburned/arikawa/v2/bot"
	"github.com/diamondburned/arikawa/v2/discord"
	"github.com/diamondburned/arikawa/v2/gateway"

	"github.com/bouncerbot/bouncer/cmderr"
	"github.com/bouncerbot/bouncer/siteapi"
)

type fakeSource struct {
	tags map[string]*siteapi.Tag
	err  error
}

func (f *fakeSource) Tag(_ context.Context, name string) (*siteapi.Tag, error) {
	if f.err != nil {
		return nil, f.err
	}
	tag, ok := f.tags[name]
	if !ok {
		return nil, &siteapi.APIError{Status: http.StatusNotFound}
	}
	return tag, nil
}

func (f *fakeSource) Tags(context.Context) ([]siteapi.Tag, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]siteapi.Tag, 0, len(f.tags))
	for _, tag := range f.tags {
		out = append(out, *tag)
	}
	return out, nil
}

type fakeSender struct {
	sends []*discord.Embed
}

func (f *fakeSender) SendMessage(
	chID discord.ChannelID, content string, embed *discord.Embed) (*discord.Message, error) {

	f.sends = append(f.sends, embed)
	return &discord.Message{}, nil
}

func message() *gateway.MessageCreateEvent {
	return &gateway.MessageCreateEvent{
		Message: discord.Message{ChannelID: 100, Author: discord.User{ID: 200}},
	}
}

func newTags(src *fakeSource, snd *fakeSender) *Tags {
	return New(src, snd, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func faqTag() *siteapi.Tag {
	return &siteapi.Tag{
		Title: "faq",
		Embed: siteapi.TagEmbed{Title: "FAQ", Description: "Read the pins."},
	}
}

func TestGet(t *testing.T) {
	snd := &fakeSender{}
	cog := newTags(&fakeSource{tags: map[string]*siteapi.Tag{"faq": faqTag()}}, snd)

	if err := cog.Get(message(), "FAQ"); err != nil {
		t.Fatal("Get returned error:", err)
	}

	if len(snd.sends) != 1 || snd.sends[0].Description != "Read the pins." {
		t.Errorf("unexpected sends: %+v", snd.sends)
	}
}

func TestGetUnknown(t *testing.T) {
	snd := &fakeSender{}
	cog := newTags(&fakeSource{tags: map[string]*siteapi.Tag{}}, snd)

	err := cog.Get(message(), "nope")
	var bad *cmderr.BadArgument
	if !errors.As(err, &bad) {
		t.Fatal("unknown tag did not produce a BadArgument:", err)
	}
	if len(snd.sends) != 0 {
		t.Error("unknown tag still sent a message")
	}
}

func TestFallbackFound(t *testing.T) {
	snd := &fakeSender{}
	cog := newTags(&fakeSource{tags: map[string]*siteapi.Tag{"faq": faqTag()}}, snd)

	if err := cog.FallbackHandler()(message(), "faq"); err != nil {
		t.Fatal("fallback returned error:", err)
	}
	if len(snd.sends) != 1 {
		t.Error("tag not shown:", snd.sends)
	}
}

func TestFallbackMissingIsSilent(t *testing.T) {
	snd := &fakeSender{}
	cog := newTags(&fakeSource{tags: map[string]*siteapi.Tag{}}, snd)

	if err := cog.FallbackHandler()(message(), "doesnotexist"); err != nil {
		t.Fatal("missing tag should not error:", err)
	}
	if len(snd.sends) != 0 {
		t.Error("missing tag still sent a message")
	}
}

func TestFallbackSiteFailure(t *testing.T) {
	snd := &fakeSender{}
	cog := newTags(&fakeSource{err: &siteapi.APIError{Status: http.StatusBadGateway}}, snd)

	if err := cog.FallbackHandler()(message(), "faq"); err == nil {
		t.Fatal("site failure was swallowed")
	}
	if len(snd.sends) != 0 {
		t.Error("site failure still sent a message")
	}
}

func TestCommandSurface(t *testing.T) {
	sub, err := abot.NewSubcommand(newTags(&fakeSource{}, &fakeSender{}))
	if err != nil {
		t.Fatal("failed to parse cog:", err)
	}

	// Only Get may be user-invokable; the fallback hook must not register as
	// a command, or it would bypass Get's cooldown.
	if len(sub.Commands) != 1 || sub.Commands[0].MethodName != "Get" {
		names := make([]string, len(sub.Commands))
		for i, c := range sub.Commands {
			names[i] = c.MethodName
		}
		t.Error("unexpected command set:", names)
	}
}
