// Package invite resolves Discord server invites to a stable guild identity.
package invite

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/diamondburned/arikawa/v2/discord"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bouncerbot/bouncer/cmderr"
)

// Guild is the resolved identity of the server behind an invite.
type Guild struct {
	ID   discord.GuildID
	Name string
}

// Fetcher fetches invite metadata; *state.State implements it.
type Fetcher interface {
	Invite(code string) (*discord.Invite, error)
}

var (
	codeRe = regexp.MustCompile(
		`(?i)^(?:(?:https?://)?(?:www\.)?(?:discord\.gg|discord(?:app)?\.com/invite)/)?([a-z0-9-]{2,32})/?$`)
	snowflakeRe = regexp.MustCompile(`^[0-9]{15,20}$`)
)

// IsSnowflake reports whether content is already a raw Discord ID, meaning
// no invite resolution is needed.
func IsSnowflake(content string) bool {
	return snowflakeRe.MatchString(content)
}

// Resolver turns invite URLs or bare codes into guild identities, memoizing
// successful lookups. Invite codes are stable per guild, so staleness only
// affects the display name.
type Resolver struct {
	fetcher Fetcher
	memo    *lru.Cache[string, Guild]
	log     *slog.Logger
}

func NewResolver(f Fetcher, log *slog.Logger) *Resolver {
	// Only errors on a non-positive size.
	memo, _ := lru.New[string, Guild](256)

	return &Resolver{
		fetcher: f,
		memo:    memo,
		log:     log,
	}
}

// Resolve validates content as a server invite and returns the guild behind
// it. Malformed or unresolvable invites fail with a BadArgument; nothing is
// mutated on failure.
func (r *Resolver) Resolve(content string) (Guild, error) {
	groups := codeRe.FindStringSubmatch(strings.TrimSpace(content))
	if groups == nil {
		return Guild{}, cmderr.BadArgumentf("%q does not look like a server invite.", content)
	}
	code := groups[1]

	if guild, ok := r.memo.Get(code); ok {
		return guild, nil
	}

	inv, err := r.fetcher.Invite(code)
	if err != nil {
		r.log.Debug("invite lookup failed", "code", code, "err", err)
		return Guild{}, cmderr.BadArgumentf(
			"Could not resolve the invite %q. It may be malformed or expired.", content)
	}

	if inv.Guild == nil {
		return Guild{}, cmderr.BadArgumentf(
			"The invite %q does not point to a server.", content)
	}

	guild := Guild{ID: inv.Guild.ID, Name: inv.Guild.Name}
	r.memo.Add(code, guild)
	return guild, nil
}
