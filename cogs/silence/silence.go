// Package silence lets moderators stop a channel from accepting messages by
// editing the @everyone permission overwrite.
package silence

import (
	"log/slog"

	"github.com/diamondburned/arikawa/v2/api"
	"github.com/diamondburned/arikawa/v2/bot"
	"github.com/diamondburned/arikawa/v2/discord"
	"github.com/diamondburned/arikawa/v2/gateway"
	"github.com/pkg/errors"

	"github.com/bouncerbot/bouncer/checks"
	"github.com/bouncerbot/bouncer/cmderr"
)

// DiscordAPI is the slice of the Discord client the cog uses.
type DiscordAPI interface {
	EditChannelPermission(channelID discord.ChannelID, overwriteID discord.Snowflake, data api.EditChannelPermissionData) error
	DeleteChannelPermission(channelID discord.ChannelID, overwriteID discord.Snowflake) error
	SendMessage(chID discord.ChannelID, content string, embed *discord.Embed) (*discord.Message, error)
}

type Silence struct {
	Ctx *bot.Context

	api  DiscordAPI
	mods []discord.RoleID
	log  *slog.Logger
}

func New(api DiscordAPI, mods []discord.RoleID, log *slog.Logger) *Silence {
	return &Silence{
		api:  api,
		mods: mods,
		log:  log,
	}
}

func (s *Silence) Setup(sub *bot.Subcommand) {
	sub.Description = "Silence and unsilence the current channel."
	sub.ChangeCommandInfo("Shh", "shh", "Stop the channel from accepting messages.")
	sub.ChangeCommandInfo("Unshh", "unshh", "Let the channel accept messages again.")

	sub.AddMiddleware("*", checks.WithRoles(s.Ctx, s.mods...))
}

// Shh denies send-messages for @everyone on the invoking channel.
func (s *Silence) Shh(m *gateway.MessageCreateEvent) error {
	if !m.GuildID.IsValid() {
		return &cmderr.CheckError{}
	}

	// The @everyone role shares the guild's ID.
	everyone := discord.Snowflake(m.GuildID)

	err := s.api.EditChannelPermission(m.ChannelID, everyone, api.EditChannelPermissionData{
		Type: discord.OverwriteRole,
		Deny: discord.PermissionSendMessages,
	})
	if err != nil {
		return errors.Wrap(err, "failed to silence channel")
	}

	s.log.Info("channel silenced", "channel", m.ChannelID, "by", m.Author.Username)

	_, err = s.api.SendMessage(m.ChannelID, "🤫 This channel has been silenced.", nil)
	return err
}

// Unshh removes the overwrite Shh created.
func (s *Silence) Unshh(m *gateway.MessageCreateEvent) error {
	if !m.GuildID.IsValid() {
		return &cmderr.CheckError{}
	}

	everyone := discord.Snowflake(m.GuildID)

	if err := s.api.DeleteChannelPermission(m.ChannelID, everyone); err != nil {
		return errors.Wrap(err, "failed to unsilence channel")
	}

	s.log.Info("channel unsilenced", "channel", m.ChannelID, "by", m.Author.Username)

	_, err := s.api.SendMessage(m.ChannelID, "🔊 This channel can speak again.", nil)
	return err
}
