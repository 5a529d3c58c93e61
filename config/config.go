// Package config loads the bot configuration from the environment.
package config

import (
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/diamondburned/arikawa/v2/discord"
	"github.com/pkg/errors"
)

type Config struct {
	Token  string `env:"BOT_TOKEN,required"`
	Prefix string `env:"BOT_PREFIX" envDefault:"!"`

	SiteURL   string `env:"SITE_API_URL" envDefault:"http://localhost:8000/api"`
	SiteToken string `env:"SITE_API_TOKEN"`

	// VerificationChannel is where unknown commands are suppressed instead
	// of falling back to tags. Zero disables the rule.
	VerificationChannel uint64 `env:"CHANNEL_VERIFICATION"`

	ModeratorRoles []uint64 `env:"MODERATOR_ROLES" envSeparator:","`
	AdminRoles     []uint64 `env:"ADMIN_ROLES" envSeparator:","`

	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse environment")
	}
	return cfg, nil
}

func (c Config) VerificationChannelID() discord.ChannelID {
	return discord.ChannelID(c.VerificationChannel)
}

func (c Config) ModeratorRoleIDs() []discord.RoleID {
	return roleIDs(c.ModeratorRoles)
}

func (c Config) AdminRoleIDs() []discord.RoleID {
	return roleIDs(c.AdminRoles)
}

func roleIDs(ids []uint64) []discord.RoleID {
	roles := make([]discord.RoleID, len(ids))
	for i, id := range ids {
		roles[i] = discord.RoleID(id)
	}
	return roles
}
