// Package bot wires the command router, the cogs, and the error dispatcher
// into a runnable Discord bot.
package bot

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"regexp"
	"strings"

	abot "github.com/diamondburned/arikawa/v2/bot"
	"github.com/diamondburned/arikawa/v2/discord"
	"github.com/diamondburned/arikawa/v2/gateway"
	"github.com/diamondburned/arikawa/v2/state"
	"github.com/pkg/errors"

	"github.com/bouncerbot/bouncer/checks"
	"github.com/bouncerbot/bouncer/cogs/debug"
	"github.com/bouncerbot/bouncer/cogs/filterlists"
	"github.com/bouncerbot/bouncer/cogs/silence"
	"github.com/bouncerbot/bouncer/cogs/tags"
	"github.com/bouncerbot/bouncer/config"
	"github.com/bouncerbot/bouncer/errhandler"
	"github.com/bouncerbot/bouncer/filterlist"
	"github.com/bouncerbot/bouncer/invite"
	"github.com/bouncerbot/bouncer/siteapi"
)

// Commands is the root command group.
type Commands struct {
	Ctx *abot.Context
}

func (c *Commands) Help(m *gateway.MessageCreateEvent) (string, error) {
	return c.Ctx.Help(), nil
}

func (c *Commands) Ping(m *gateway.MessageCreateEvent) (string, error) {
	return "Pong!", nil
}

type Bot struct {
	cfg config.Config
	log *slog.Logger

	state      *state.State
	router     *abot.Context
	dispatcher *errhandler.Dispatcher

	Cache *filterlist.Cache
	Site  *siteapi.Client

	cancel func()
}

func New(cfg config.Config, log *slog.Logger) (*Bot, error) {
	token := cfg.Token
	if !strings.HasPrefix(token, "Bot ") {
		token = "Bot " + token
	}

	s, err := state.New(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create state")
	}

	router, err := abot.New(s, &Commands{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create command router")
	}

	router.Name = "bouncer"
	router.HasPrefix = abot.NewPrefix(cfg.Prefix)
	router.EditableCommands = true
	router.ErrorLogger = func(err error) {
		log.Error("command router error", "err", err)
	}

	cache := filterlist.NewCache()
	site := siteapi.NewClient(cfg.SiteURL, cfg.SiteToken)
	resolver := invite.NewResolver(s, log.With("component", "invite"))

	listOpts := filterlists.Options{
		API:      s,
		Site:     site,
		Cache:    cache,
		Invites:  resolver,
		ModRoles: cfg.ModeratorRoleIDs(),
		Log:      log.With("component", "filterlists"),
	}

	router.MustRegisterSubcommand(filterlists.New(true, listOpts),
		"allowlist", "whitelist", "allow", "al", "wl")
	router.MustRegisterSubcommand(filterlists.New(false, listOpts),
		"denylist", "blacklist", "deny", "bl", "dl")

	tagsCog := tags.New(site, s, log.With("component", "tags"))
	router.MustRegisterSubcommand(tagsCog, "tags")

	silenceCog := silence.New(s, cfg.ModeratorRoleIDs(), log.With("component", "silence"))
	router.MustRegisterSubcommand(silenceCog, "silence")

	router.MustRegisterSubcommand(debug.New(cache, site, cfg.AdminRoleIDs()))

	dispatcher := &errhandler.Dispatcher{
		API:                 s,
		Prefix:              cfg.Prefix,
		VerificationChannel: cfg.VerificationChannelID(),
		Silence:             silenceHook(s, silenceCog, cfg.ModeratorRoleIDs(), log),
		GetTag:              tagsCog.FallbackHandler(),
		Log:                 log.With("component", "errhandler"),
	}

	return &Bot{
		cfg:        cfg,
		log:        log,
		state:      s,
		router:     router,
		dispatcher: dispatcher,
		Cache:      cache,
		Site:       site,
	}, nil
}

// Start installs the dispatch loop, connects to the gateway, and rebuilds
// the filter list cache from the site API.
func (b *Bot) Start(ctx context.Context) error {
	b.router.AddIntents(b.router.DeriveIntents())
	b.router.AddIntents(gateway.IntentGuilds)

	b.cancel = b.state.AddHandler(func(v interface{}) {
		err := b.router.Call(v)
		if err == nil {
			return
		}

		// Message-born errors get the full dispatcher treatment; anything
		// else can only be logged.
		if m, ok := v.(*gateway.MessageCreateEvent); ok {
			b.dispatcher.HandleCommandError(m, err)
			return
		}

		b.log.Error("event handler error", "err", err)
	})

	if err := b.state.Open(); err != nil {
		b.cancel()
		return errors.Wrap(err, "failed to connect to Discord")
	}

	if err := b.SyncFilterLists(ctx); err != nil {
		// The bot still works with an empty cache; lists refill as
		// moderators mutate them.
		b.log.Warn("failed to sync filter lists", "err", err)
	}

	return nil
}

// SyncFilterLists rebuilds the local cache from the site API.
func (b *Bot) SyncFilterLists(ctx context.Context) error {
	entries, err := b.Site.FilterLists(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to fetch filter lists")
	}

	b.Cache.Replace(entries)
	b.log.Info("filter lists synced", "entries", len(entries))
	return nil
}

// Wait blocks until SIGINT.
func (b *Bot) Wait() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	<-sigs
}

func (b *Bot) Close() error {
	if b.cancel != nil {
		b.cancel()
	}
	return b.state.Close()
}

var silenceRe = regexp.MustCompile(`^(un)?shh+$`)

// silenceHook recognizes "shh"/"unshh" spellings of unknown commands from
// moderators and turns them into silence cog invocations.
func silenceHook(
	s *state.State, cog *silence.Silence,
	mods []discord.RoleID, log *slog.Logger,
) func(*gateway.MessageCreateEvent, string) bool {

	return func(m *gateway.MessageCreateEvent, invoked string) bool {
		groups := silenceRe.FindStringSubmatch(invoked)
		if groups == nil {
			return false
		}

		// Non-moderators don't get the shortcut; the attempt falls through
		// to the tag lookup like any other unknown command.
		if !checks.Passes(s, m, mods) {
			return false
		}

		var err error
		if groups[1] == "un" {
			err = cog.Unshh(m)
		} else {
			err = cog.Shh(m)
		}
		if err != nil {
			log.Error("silence recovery failed", "invoked", invoked, "err", err)
		}
		return true
	}
}
