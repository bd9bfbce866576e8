// Package rest implements the HTTP repositories over the scheduling backend.
// It is the only layer that sees wire shapes and raw transport failures; both
// are normalized here (canonical records, core error taxonomy) before anything
// reaches the rest of the app.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/ucvirtual/horario/core"
)

// TokenSource provides the bearer token for authenticated requests. Requests
// are parameterized by the active token; the client never mutates shared
// default headers.
type TokenSource interface {
	Token() (string, bool)
}

type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
}

func NewClient(conf *core.Config, tokens TokenSource) *Client {
	return &Client{
		base:   strings.TrimRight(conf.API.BaseURL, "/"),
		http:   &http.Client{Timeout: conf.API.Timeout},
		tokens: tokens,
	}
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "encoding %s %s body", method, path)
		}
		buf = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, buf)
	if err != nil {
		return errors.Wrapf(err, "building %s %s", method, path)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if tok, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(core.ErrNetworkUnavailable, "%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decoding %s %s response", method, path)
	}
	return nil
}

// errorBody covers the error payloads the backend versions answer with: a
// FastAPI-style detail (string or a list of located messages) or a flat
// field→message map.
type errorBody struct {
	Detail json.RawMessage   `json:"detail"`
	Errors map[string]string `json:"errors"`
	Error  string            `json:"error"`
}

type detailItem struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.Wrapf(core.ErrSessionExpired, "%s", strings.TrimSpace(genericMessage(raw)))
	case http.StatusNotFound:
		return core.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return validationError(raw)
	}
	return errors.Wrapf(core.ErrUnknown, "response %d: %s", resp.StatusCode, genericMessage(raw))
}

// validationError recovers field-level messages from a structured error body
// when present, otherwise collapses to one generic message.
func validationError(raw []byte) error {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return core.NewValidationError(errors.New(genericMessage(raw)))
	}

	if len(body.Errors) > 0 {
		flds := make([]core.FieldError, 0, len(body.Errors))
		for field, msg := range body.Errors {
			flds = append(flds, core.FieldError{Field: field, Error: msg})
		}
		return core.NewValidationError(errors.New("invalid input"), flds...)
	}

	if len(body.Detail) > 0 {
		var items []detailItem
		if err := json.Unmarshal(body.Detail, &items); err == nil {
			flds := make([]core.FieldError, 0, len(items))
			for _, item := range items {
				flds = append(flds, core.FieldError{Field: locField(item.Loc), Error: item.Msg})
			}
			return core.NewValidationError(errors.New("invalid input"), flds...)
		}
		var msg string
		if err := json.Unmarshal(body.Detail, &msg); err == nil {
			return core.NewValidationError(errors.New(msg))
		}
	}
	return core.NewValidationError(errors.New(genericMessage(raw)))
}

// locField extracts the field name from a FastAPI loc path like ["body","hora_fin"].
func locField(loc []json.RawMessage) string {
	for i := len(loc) - 1; i >= 0; i-- {
		var s string
		if err := json.Unmarshal(loc[i], &s); err == nil && s != "body" {
			return s
		}
	}
	return "non_field_errors"
}

func genericMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		var msg string
		if len(body.Detail) > 0 {
			if err := json.Unmarshal(body.Detail, &msg); err == nil && msg != "" {
				return msg
			}
		}
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" {
		return msg
	}
	return "request failed"
}

func itoa(id int) string { return fmt.Sprintf("%d", id) }
