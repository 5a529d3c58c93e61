// Package tags serves canned responses stored on the site API. The error
// dispatcher also uses it as the fallback for unknown commands, which is how
// "!faq" style shortcuts work.
package tags

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/diamondburned/arikawa/v2/bot"
	"github.com/diamondburned/arikawa/v2/discord"
	"github.com/diamondburned/arikawa/v2/gateway"
	"github.com/pkg/errors"

	"github.com/bouncerbot/bouncer/cmderr"
	"github.com/bouncerbot/bouncer/cooldown"
	"github.com/bouncerbot/bouncer/siteapi"
)

const colorGreen discord.Color = 0x2ECC71

// Source is the slice of the site API client the cog uses.
type Source interface {
	Tag(ctx context.Context, name string) (*siteapi.Tag, error)
	Tags(ctx context.Context) ([]siteapi.Tag, error)
}

// Sender sends messages back to the invoking channel.
type Sender interface {
	SendMessage(chID discord.ChannelID, content string, embed *discord.Embed) (*discord.Message, error)
}

type Tags struct {
	Ctx *bot.Context

	site Source
	api  Sender
	cd   *cooldown.PerUser
	log  *slog.Logger
}

func New(site Source, api Sender, log *slog.Logger) *Tags {
	return &Tags{
		site: site,
		api:  api,
		cd:   cooldown.NewPerUser("tags", 3*time.Second, 1),
		log:  log,
	}
}

func (t *Tags) Setup(sub *bot.Subcommand) {
	sub.Description = "Look up canned responses by name."
	sub.ChangeCommandInfo("Get", "get", "Show the tag with the given name.")
	sub.AddMiddleware("Get", t.cd.Middleware())

	// "!tags <name>" plumbs straight into Get.
	sub.SetPlumb("Get")
}

// Get shows one tag, or the list of tag names when called bare.
func (t *Tags) Get(m *gateway.MessageCreateEvent, name ...string) error {
	if len(name) == 0 {
		return t.list(m)
	}

	tag, err := t.lookup(strings.Join(name, " "))
	if err != nil {
		return err
	}
	if tag == nil {
		return cmderr.BadArgumentf("No tag named %q.", strings.Join(name, " "))
	}

	_, err = t.api.SendMessage(m.ChannelID, "", embed(tag))
	return err
}

// FallbackHandler returns the dispatcher's unknown-command hook: show the
// tag whose name matches the attempted command, or do nothing at all. Not a
// command-shaped method, so the router never registers it as invokable.
func (t *Tags) FallbackHandler() func(*gateway.MessageCreateEvent, string) error {
	return t.fallback
}

func (t *Tags) fallback(m *gateway.MessageCreateEvent, invoked string) error {
	tag, err := t.lookup(invoked)
	if err != nil || tag == nil {
		return err
	}

	_, err = t.api.SendMessage(m.ChannelID, "", embed(tag))
	return err
}

func (t *Tags) list(m *gateway.MessageCreateEvent) error {
	tags, err := t.site.Tags(context.Background())
	if err != nil {
		return errors.Wrap(err, "failed to fetch tags")
	}

	if len(tags) == 0 {
		_, err := t.api.SendMessage(m.ChannelID, "There are no tags yet.", nil)
		return err
	}

	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = "`" + tag.Title + "`"
	}
	sort.Strings(names)

	_, err = t.api.SendMessage(m.ChannelID, "", &discord.Embed{
		Title:       "Available tags",
		Description: strings.Join(names, ", "),
		Color:       colorGreen,
	})
	return err
}

// lookup returns (nil, nil) for a missing tag so callers can pick their own
// not-found behavior.
func (t *Tags) lookup(name string) (*siteapi.Tag, error) {
	tag, err := t.site.Tag(context.Background(), strings.ToLower(name))
	if err != nil {
		if siteapi.IsStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to fetch tag")
	}
	return tag, nil
}

func embed(tag *siteapi.Tag) *discord.Embed {
	return &discord.Embed{
		Title:       tag.Embed.Title,
		Description: tag.Embed.Description,
		Color:       colorGreen,
	}
}
