// Package filterlist models the allow/deny lists of filtered content that
// moderators manage through the site API, along with the in-process cache
// that mirrors the API's state.
package filterlist

import (
	"fmt"
	"strconv"
	"strings"
)

// Type enumerates the categories of filtered content the site API knows
// about. The zero value is invalid.
type Type string

const (
	GuildInvite Type = "GUILD_INVITE"
	DomainName  Type = "DOMAIN_NAME"
	FileFormat  Type = "FILE_FORMAT"
	FilterToken Type = "FILTER_TOKEN"
)

// Types lists every valid list type in display order.
func Types() []Type {
	return []Type{GuildInvite, DomainName, FileFormat, FilterToken}
}

var typeAliases = map[string]Type{
	"guild_invite": GuildInvite,
	"invite":       GuildInvite,
	"invites":      GuildInvite,
	"guild":        GuildInvite,
	"domain_name":  DomainName,
	"domain":       DomainName,
	"domains":      DomainName,
	"file_format":  FileFormat,
	"file":         FileFormat,
	"files":        FileFormat,
	"extension":    FileFormat,
	"filter_token": FilterToken,
	"token":        FilterToken,
	"tokens":       FilterToken,
}

// Parse implements bot.Parser, so a Type can be used directly as a command
// argument. Input is case-insensitive and accepts the aliases moderators
// actually type ("domain", "invite", "file", ...).
func (t *Type) Parse(arg string) error {
	name := strings.ToLower(strings.TrimSpace(arg))
	typ, ok := typeAliases[name]
	if !ok {
		names := make([]string, 0, len(Types()))
		for _, t := range Types() {
			names = append(names, strings.ToLower(string(t)))
		}
		return fmt.Errorf(
			"unknown list type %q, expected one of: %s",
			arg, strings.Join(names, ", "))
	}

	*t = typ
	return nil
}

// Plural returns the human-readable plural of the type, e.g. "Guild Invites".
func (t Type) Plural() string {
	words := strings.Split(strings.ToLower(string(t)), "_")
	for i, w := range words {
		words[i] = title(w)
	}
	return strings.Join(words, " ") + "s"
}

func title(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

// Entry is a single filter list item. The ID is assigned by the site API,
// and (Type, Allowed, Content) is unique server-side. Entries are never
// mutated in place; they are created and deleted whole.
type Entry struct {
	ID      int    `json:"id"`
	Allowed bool   `json:"allowed"`
	Type    Type   `json:"type"`
	Content string `json:"content"`
	Comment string `json:"comment,omitempty"`
}

// Line renders the entry as a single display line for list outputs.
func (e Entry) Line() string {
	line := "• `" + e.Content + "`"
	if e.Comment != "" {
		line += " - " + e.Comment
	}
	return line
}

// Key returns the cache key identifying one partition of entries, in the
// form "TYPE.allowed".
func Key(t Type, allowed bool) string {
	return string(t) + "." + strconv.FormatBool(allowed)
}
