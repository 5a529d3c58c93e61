// Package debug exposes runtime introspection commands for administrators.
package debug

import (
	"fmt"
	"runtime"

	"github.com/davecgh/go-spew/spew"
	"github.com/diamondburned/arikawa/v2/bot"
	"github.com/diamondburned/arikawa/v2/discord"
	"github.com/diamondburned/arikawa/v2/gateway"

	"github.com/bouncerbot/bouncer/checks"
	"github.com/bouncerbot/bouncer/filterlist"
	"github.com/bouncerbot/bouncer/siteapi"
)

// Discord caps message content at 2000 characters; leave room for the
// codeblock fences.
const maxDump = 1900

type Debug struct {
	Ctx *bot.Context

	cache  *filterlist.Cache
	site   *siteapi.Client
	admins []discord.RoleID
}

func New(cache *filterlist.Cache, site *siteapi.Client, admins []discord.RoleID) *Debug {
	return &Debug{
		cache:  cache,
		site:   site,
		admins: admins,
	}
}

func (d *Debug) Setup(sub *bot.Subcommand) {
	sub.Command = "go"
	sub.Description = "Runtime debugging commands"

	sub.ChangeCommandInfo("Goroutines", "", "Print the current number of goroutines")
	sub.ChangeCommandInfo("GC", "gc", "Trigger a garbage collection")
	sub.ChangeCommandInfo("Cache", "cache", "Dump the filter list cache")
	sub.ChangeCommandInfo("Site", "site", "Show site API client counters")

	sub.AddMiddleware("*", checks.WithRoles(d.Ctx, d.admins...))
}

// !go goroutines
func (d *Debug) Goroutines(m *gateway.MessageCreateEvent) (string, error) {
	return fmt.Sprintf("goroutines: %d", runtime.NumGoroutine()), nil
}

// !go gc
func (d *Debug) GC(m *gateway.MessageCreateEvent) (string, error) {
	runtime.GC()
	return "Done.", nil
}

// !go cache
func (d *Debug) Cache(m *gateway.MessageCreateEvent) (string, error) {
	dump := spew.Sdump(d.cache.Dump())
	if len(dump) > maxDump {
		dump = dump[:maxDump] + "…"
	}
	return "```go\n" + dump + "```", nil
}

// !go site
func (d *Debug) Site(m *gateway.MessageCreateEvent) (string, error) {
	return fmt.Sprintf(
		"requests: %d, failures: %d, cached entries: %d",
		d.site.Requests.Load(), d.site.Failures.Load(), d.cache.Len(),
	), nil
}
