package siteapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

type RequestOption func(*http.Request) error

func JSONRequest(r *http.Request) error {
	r.Header.Set("Content-Type", "application/json")
	return nil
}

func WithBody(body io.ReadCloser) RequestOption {
	return func(r *http.Request) error {
		r.Body = body
		return nil
	}
}

func WithJSONBody(v interface{}) RequestOption {
	if v == nil {
		return func(*http.Request) error {
			return nil
		}
	}

	return func(r *http.Request) error {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(v); err != nil {
			return JSONError{err}
		}

		r.Header.Set("Content-Type", "application/json")
		r.Body = io.NopCloser(&buf)
		return nil
	}
}

func WithSchema(schema SchemaEncoder, v interface{}) RequestOption {
	return func(r *http.Request) error {
		params, err := schema.Encode(v)
		if err != nil {
			return err
		}

		var qs = r.URL.Query()
		for k, v := range params {
			qs[k] = append(qs[k], v...)
		}

		r.URL.RawQuery = qs.Encode()
		return nil
	}
}

func decodeStream(body io.Reader, to interface{}) error {
	if to == nil {
		return nil
	}
	return json.NewDecoder(body).Decode(to)
}
