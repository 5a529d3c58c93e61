// Package checks provides command middlewares that gate commands on the
// invoker's roles.
package checks

import (
	"github.com/diamondburned/arikawa/v2/discord"
	"github.com/diamondburned/arikawa/v2/gateway"
	"github.com/pkg/errors"

	"github.com/bouncerbot/bouncer/cmderr"
)

// MemberFetcher is the part of the state the role check needs when the
// gateway event doesn't carry member data.
type MemberFetcher interface {
	Member(guildID discord.GuildID, userID discord.UserID) (*discord.Member, error)
}

// WithRoles returns a message middleware that rejects invocations from
// members holding none of the given roles. Invocations outside a guild fail
// the check as well.
func WithRoles(f MemberFetcher, roles ...discord.RoleID) func(*gateway.MessageCreateEvent) error {
	return func(m *gateway.MessageCreateEvent) error {
		member, err := member(f, m)
		if err != nil {
			return err
		}
		if member == nil {
			return &cmderr.CheckError{}
		}

		if HasAnyRole(member, roles) {
			return nil
		}
		return &cmderr.CheckError{Missing: roles}
	}
}

// Passes reports whether m would clear a WithRoles check, for callers that
// want a boolean rather than a middleware error.
func Passes(f MemberFetcher, m *gateway.MessageCreateEvent, roles []discord.RoleID) bool {
	member, err := member(f, m)
	return err == nil && member != nil && HasAnyRole(member, roles)
}

// HasAnyRole reports whether the member holds at least one of the roles.
func HasAnyRole(member *discord.Member, roles []discord.RoleID) bool {
	for _, have := range member.RoleIDs {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

func member(f MemberFetcher, m *gateway.MessageCreateEvent) (*discord.Member, error) {
	if !m.GuildID.IsValid() {
		return nil, nil
	}
	if m.Member != nil {
		return m.Member, nil
	}
	if f == nil {
		return nil, nil
	}

	member, err := f.Member(m.GuildID, m.Author.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch member for role check")
	}
	return member, nil
}
