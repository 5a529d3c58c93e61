package cooldown

import (
	"errors"
	"testing"
	"time"

	"github.com/diamondburned/arikawa/v2/discord"
	"github.com/diamondburned/arikawa/v2/gateway"

	"github.com/bouncerbot/bouncer/cmderr"
)

func messageFrom(user discord.UserID) *gateway.MessageCreateEvent {
	return &gateway.MessageCreateEvent{
		Message: discord.Message{Author: discord.User{ID: user}},
	}
}

func TestPerUserAllowsBurst(t *testing.T) {
	mw := NewPerUser("tags", time.Minute, 2).Middleware()

	for i := 0; i < 2; i++ {
		if err := mw(messageFrom(1)); err != nil {
			t.Fatalf("invocation %d hit the cooldown: %v", i, err)
		}
	}

	err := mw(messageFrom(1))
	var cd *cmderr.CooldownError
	if !errors.As(err, &cd) {
		t.Fatal("over-budget invocation did not return a CooldownError:", err)
	}
	if cd.RetryAfter <= 0 {
		t.Error("cooldown carries no retry delay:", cd.RetryAfter)
	}
	if cd.Command != "tags" {
		t.Error("unexpected command name:", cd.Command)
	}
}

func TestPerUserIsolatesUsers(t *testing.T) {
	mw := NewPerUser("tags", time.Minute, 1).Middleware()

	if err := mw(messageFrom(1)); err != nil {
		t.Fatal("first user blocked:", err)
	}
	if err := mw(messageFrom(2)); err != nil {
		t.Fatal("second user blocked by the first user's cooldown:", err)
	}
	if err := mw(messageFrom(1)); err == nil {
		t.Fatal("first user not on cooldown")
	}
}
