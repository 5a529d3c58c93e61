// Package siteapi is the HTTP client for the site API backing the bot: the
// service that stores filter lists and tags. It handles authorization,
// client-side rate limiting, and error decoding.
package siteapi

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/schema"
	"go.uber.org/atomic"
	"golang.org/x/time/rate"
)

var UserAgent = "bouncer (https://github.com/bouncerbot/bouncer)"

// SchemaEncoder encodes query-parameter structs by their "schema" tags.
type SchemaEncoder interface {
	Encode(src interface{}) (url.Values, error)
}

type DefaultSchema struct {
	once sync.Once
	*schema.Encoder
}

var _ SchemaEncoder = (*DefaultSchema)(nil)

func (d *DefaultSchema) Encode(src interface{}) (url.Values, error) {
	d.once.Do(func() {
		d.Encoder = schema.NewEncoder()
	})

	var v = url.Values{}
	return v, d.Encoder.Encode(src, v)
}

type Client struct {
	http.Client
	SchemaEncoder

	BaseURL string
	Token   string

	// Limiter paces outgoing requests; the site applies its own throttling
	// and responds badly to bursts.
	Limiter *rate.Limiter

	// Requests and Failures count every attempt and every non-2xx or
	// transport failure. Read by the debug commands.
	Requests atomic.Int64
	Failures atomic.Int64
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		Client: http.Client{
			Timeout: 10 * time.Second,
		},
		SchemaEncoder: &DefaultSchema{},
		BaseURL:       strings.TrimSuffix(baseURL, "/"),
		Token:         token,
		Limiter:       rate.NewLimiter(rate.Limit(25), 10),
	}
}

// Endpoint joins path onto the configured base URL.
func (c *Client) Endpoint(path string) string {
	return c.BaseURL + "/" + path
}

// RequestCtx performs a request and returns the response on any 2xx status.
// Non-2xx statuses become an *APIError with the decoded body; transport
// failures become a RequestError.
func (c *Client) RequestCtx(ctx context.Context,
	method, url string, opts ...RequestOption) (*http.Response, error) {

	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, RequestError{err}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, RequestError{err}
	}

	if c.Token != "" {
		req.Header.Set("Authorization", "Token "+c.Token)
	}
	req.Header.Set("User-Agent", UserAgent)

	for _, opt := range opts {
		if err := opt(req); err != nil {
			return nil, err
		}
	}

	c.Requests.Inc()

	r, err := c.Client.Do(req)
	if err != nil {
		c.Failures.Inc()
		return nil, RequestError{err}
	}

	if r.StatusCode < 200 || r.StatusCode > 299 {
		c.Failures.Inc()

		apiErr := &APIError{
			Status: r.StatusCode,
		}

		b, err := io.ReadAll(r.Body)
		r.Body.Close()
		if err != nil {
			return nil, apiErr
		}

		apiErr.Body = b
		unmarshalErrorBody(b, apiErr)
		return nil, apiErr
	}

	return r, nil
}

// RequestCtxJSON performs a request and decodes the JSON response into to.
func (c *Client) RequestCtxJSON(ctx context.Context,
	to interface{}, method, url string, opts ...RequestOption) error {

	r, err := c.RequestCtx(ctx, method, url,
		append([]RequestOption{JSONRequest}, opts...)...)
	if err != nil {
		return err
	}

	defer r.Body.Close()

	if err := decodeStream(r.Body, to); err != nil {
		return JSONError{err}
	}

	return nil
}

// FastRequest performs a request and discards the response body.
func (c *Client) FastRequest(ctx context.Context,
	method, url string, opts ...RequestOption) error {

	r, err := c.RequestCtx(ctx, method, url, opts...)
	if err != nil {
		return err
	}

	return r.Body.Close()
}

func (c *Client) Request(
	method, url string, opts ...RequestOption) (*http.Response, error) {

	return c.RequestCtx(context.Background(), method, url, opts...)
}

func (c *Client) RequestJSON(
	to interface{}, method, url string, opts ...RequestOption) error {

	return c.RequestCtxJSON(context.Background(), to, method, url, opts...)
}
