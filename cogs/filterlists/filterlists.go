// Package filterlists implements the allowlist and denylist moderation
// commands: add, remove, and get over the filter lists the site API stores.
package filterlists

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/diamondburned/arikawa/v2/bot"
	"github.com/diamondburned/arikawa/v2/discord"
	"github.com/diamondburned/arikawa/v2/gateway"
	"github.com/pkg/errors"

	"github.com/bouncerbot/bouncer/checks"
	"github.com/bouncerbot/bouncer/cmderr"
	"github.com/bouncerbot/bouncer/filterlist"
	"github.com/bouncerbot/bouncer/invite"
	"github.com/bouncerbot/bouncer/pagination"
	"github.com/bouncerbot/bouncer/siteapi"
)

const colorBlue discord.Color = 0x3498DB

// DiscordAPI is the slice of the Discord client the cog uses.
type DiscordAPI interface {
	React(chID discord.ChannelID, msgID discord.MessageID, emoji discord.APIEmoji) error
	SendMessage(chID discord.ChannelID, content string, embed *discord.Embed) (*discord.Message, error)
}

// SiteClient is the slice of the site API client the cog uses.
type SiteClient interface {
	CreateFilterList(ctx context.Context, data siteapi.CreateFilterListData) (*filterlist.Entry, error)
	DeleteFilterList(ctx context.Context, id int) error
}

// Resolver validates server invites.
type Resolver interface {
	Resolve(content string) (invite.Guild, error)
}

// Options carries the cog's collaborators.
type Options struct {
	API      DiscordAPI
	Site     SiteClient
	Cache    *filterlist.Cache
	Invites  Resolver
	ModRoles []discord.RoleID
	Log      *slog.Logger
}

// List is one side of the filter lists. It is registered twice: once with
// allowed=true as "allowlist" and once with allowed=false as "denylist".
type List struct {
	Ctx *bot.Context

	allowed bool
	api     DiscordAPI
	site    SiteClient
	cache   *filterlist.Cache
	invites Resolver
	mods    []discord.RoleID
	log     *slog.Logger
}

func New(allowed bool, opts Options) *List {
	return &List{
		allowed: allowed,
		api:     opts.API,
		site:    opts.Site,
		cache:   opts.Cache,
		invites: opts.Invites,
		mods:    opts.ModRoles,
		log:     opts.Log,
	}
}

func (l *List) Setup(sub *bot.Subcommand) {
	sub.Description = "Manage the " + l.kind() + " of filtered content."

	sub.ChangeCommandInfo("Add", "add",
		"Add an item to the "+l.kind()+".")
	sub.ChangeCommandInfo("Remove", "remove",
		"Remove an item from the "+l.kind()+".")
	sub.ChangeCommandInfo("Get", "get",
		"Show the contents of the "+l.kind()+".")

	sub.AddMiddleware("*", checks.WithRoles(l.Ctx, l.mods...))
}

// Add validates content, creates the entry on the site, and mirrors it into
// the cache.
func (l *List) Add(m *gateway.MessageCreateEvent,
	kind filterlist.Type, content string, comment ...string) error {

	return l.add(m, kind, content, strings.Join(comment, " "))
}

func (l *List) add(m *gateway.MessageCreateEvent,
	kind filterlist.Type, content, comment string) error {

	// Server invites get normalized to the guild ID; everything else is
	// stored as given.
	if kind == filterlist.GuildInvite {
		guild, err := l.invites.Resolve(content)
		if err != nil {
			return err
		}

		content = guild.ID.String()
		if comment == "" {
			comment = guild.Name
		}
	}

	entry, err := l.site.CreateFilterList(context.Background(), siteapi.CreateFilterListData{
		Allowed: l.allowed,
		Type:    kind,
		Content: content,
		Comment: comment,
	})
	if err != nil {
		if siteapi.IsStatus(err, http.StatusBadRequest) {
			if rerr := l.api.React(m.ChannelID, m.ID, "❌"); rerr != nil {
				l.log.Warn("failed to add failure reaction", "err", rerr)
			}

			l.log.Debug("site rejected filter list entry",
				"list", l.kind(), "type", kind, "author", m.Author.Username)

			return cmderr.BadArgumentf(
				"Unable to add the item to the %s. The item probably already exists. "+
					"Keep in mind that an allowlist and a denylist for the same item "+
					"cannot co-exist, and we do not permit any duplicates.", l.kind())
		}
		return errors.Wrap(err, "failed to create filter list entry")
	}

	l.cache.Insert(*entry)
	return l.api.React(m.ChannelID, m.ID, "✅")
}

// Remove deletes the cached entry matching content, if any. An absent
// content is a silent no-op: no site call, no acknowledgment.
func (l *List) Remove(m *gateway.MessageCreateEvent,
	kind filterlist.Type, content string) error {

	if kind == filterlist.GuildInvite && !invite.IsSnowflake(content) {
		guild, err := l.invites.Resolve(content)
		if err != nil {
			return err
		}
		content = guild.ID.String()
	}

	entry, ok := l.cache.Find(kind, l.allowed, content)
	if !ok {
		return nil
	}

	if err := l.site.DeleteFilterList(context.Background(), entry.ID); err != nil {
		return errors.Wrap(err, "failed to delete filter list entry")
	}

	l.cache.Remove(kind, l.allowed, content)
	return l.api.React(m.ChannelID, m.ID, "✅")
}

// Get displays the cached entries of one list type, 15 lines per page.
func (l *List) Get(m *gateway.MessageCreateEvent, kind filterlist.Type) error {
	entries := l.cache.Entries(kind, l.allowed)

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Line()
	}
	// Display order only; the cache keeps insertion order.
	sort.Strings(lines)

	title := fmt.Sprintf("%s %s (%d total)", l.adjective(), kind.Plural(), len(entries))

	if len(lines) == 0 {
		embed := discord.Embed{
			Title:       title,
			Description: "Hmmm, seems like there's nothing here yet.",
			Color:       colorBlue,
		}
		_, err := l.api.SendMessage(m.ChannelID, "", &embed)
		return err
	}

	for _, embed := range pagination.Embeds(title, colorBlue, lines, pagination.DefaultPageSize) {
		embed := embed
		if _, err := l.api.SendMessage(m.ChannelID, "", &embed); err != nil {
			return errors.Wrap(err, "failed to send list page")
		}
	}
	return nil
}

func (l *List) kind() string {
	if l.allowed {
		return "allowlist"
	}
	return "denylist"
}

func (l *List) adjective() string {
	if l.allowed {
		return "Allowed"
	}
	return "Denied"
}
