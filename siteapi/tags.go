package siteapi

import (
	"context"
	"net/url"
)

// Tag is a canned response moderators maintain on the site. The embed body
// is what the bot displays.
type Tag struct {
	Title string   `json:"title"`
	Embed TagEmbed `json:"embed"`
}

type TagEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Tag fetches a single tag by name. A missing tag is an *APIError with
// status 404.
func (c *Client) Tag(ctx context.Context, name string) (*Tag, error) {
	var t Tag
	return &t, c.RequestCtxJSON(
		ctx, &t,
		"GET", c.Endpoint("bot/tags/"+url.PathEscape(name)),
	)
}

// Tags fetches every tag.
func (c *Client) Tags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	return tags, c.RequestCtxJSON(
		ctx, &tags,
		"GET", c.Endpoint("bot/tags"),
	)
}
