package siteapi

import (
	"context"
	"strconv"

	"github.com/bouncerbot/bouncer/filterlist"
)

// CreateFilterListData is the body of a filter list create call.
type CreateFilterListData struct {
	Allowed bool            `json:"allowed"`
	Type    filterlist.Type `json:"type"`
	Content string          `json:"content"`
	Comment string          `json:"comment,omitempty"`
}

// FilterListQuery narrows a bulk read to one partition.
type FilterListQuery struct {
	Type    string `schema:"type,omitempty"`
	Allowed *bool  `schema:"allowed,omitempty"`
}

// CreateFilterList adds an entry to a filter list. The site responds with
// status 400 when the (type, allowed, content) tuple already exists on
// either side; detect that with IsStatus(err, http.StatusBadRequest).
func (c *Client) CreateFilterList(
	ctx context.Context, data CreateFilterListData) (*filterlist.Entry, error) {

	var e filterlist.Entry
	return &e, c.RequestCtxJSON(
		ctx, &e,
		"POST", c.Endpoint("bot/filter-lists"),
		WithJSONBody(data),
	)
}

// DeleteFilterList removes an entry by its server-assigned ID.
func (c *Client) DeleteFilterList(ctx context.Context, id int) error {
	return c.FastRequest(
		ctx,
		"DELETE", c.Endpoint("bot/filter-lists/"+strconv.Itoa(id)),
	)
}

// FilterLists reads every entry of every list. Used to rebuild the local
// cache at startup.
func (c *Client) FilterLists(ctx context.Context) ([]filterlist.Entry, error) {
	var entries []filterlist.Entry
	return entries, c.RequestCtxJSON(
		ctx, &entries,
		"GET", c.Endpoint("bot/filter-lists"),
	)
}

// FilterListsWithQuery reads the entries matching the query.
func (c *Client) FilterListsWithQuery(
	ctx context.Context, q FilterListQuery) ([]filterlist.Entry, error) {

	var entries []filterlist.Entry
	return entries, c.RequestCtxJSON(
		ctx, &entries,
		"GET", c.Endpoint("bot/filter-lists"),
		WithSchema(c, q),
	)
}
