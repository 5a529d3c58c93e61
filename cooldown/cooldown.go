// Package cooldown rate-limits command invocations per user.
package cooldown

import (
	"sync"
	"time"

	"github.com/diamondburned/arikawa/v2/discord"
	"github.com/diamondburned/arikawa/v2/gateway"
	"golang.org/x/time/rate"

	"github.com/bouncerbot/bouncer/cmderr"
)

// PerUser tracks one token bucket per invoking user. Buckets are created
// lazily and never expire; the per-entry footprint is a single limiter.
type PerUser struct {
	command string
	every   time.Duration
	burst   int

	mu    sync.Mutex
	users map[discord.UserID]*rate.Limiter
}

// NewPerUser builds a cooldown allowing burst invocations, refilling one
// every interval. The command name only appears in the user-facing message.
func NewPerUser(command string, every time.Duration, burst int) *PerUser {
	return &PerUser{
		command: command,
		every:   every,
		burst:   burst,
		users:   map[discord.UserID]*rate.Limiter{},
	}
}

// Middleware returns the message middleware enforcing the cooldown. Over
// budget invocations fail with a CooldownError carrying the retry delay.
func (c *PerUser) Middleware() func(*gateway.MessageCreateEvent) error {
	return func(m *gateway.MessageCreateEvent) error {
		r := c.limiter(m.Author.ID).Reserve()
		if delay := r.Delay(); delay > 0 {
			r.Cancel()
			return &cmderr.CooldownError{Command: c.command, RetryAfter: delay}
		}
		return nil
	}
}

func (c *PerUser) limiter(user discord.UserID) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.users[user]
	if !ok {
		l = rate.NewLimiter(rate.Every(c.every), c.burst)
		c.users[user] = l
	}
	return l
}
