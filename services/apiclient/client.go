// Package apiclient is the HTTP adapter every resource service goes through.
package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/Rodert/learn-hub/core"
)

const RequestIDHeader = "X-Request-ID"

type (
	Options struct {
		BaseURL string
		Timeout time.Duration
		// TokenSource returns the current session token, "" when logged out.
		TokenSource func() string
		Logger      core.Logger
		HTTPClient  *http.Client
	}

	Client struct {
		baseURL string
		token   func() string
		logger  core.Logger
		rest    *rest.Client
	}
)

var _ core.Doer = (*Client)(nil)

func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = core.NopLogger{}
	}
	token := opts.TokenSource
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		token:   token,
		logger:  logger,
		rest:    &rest.Client{HTTPClient: hc},
	}
}

// Do sends req and normalises the response.
// Transport failures come back as *core.TransportError, non-2xx statuses as *core.APIError.
func (c *Client) Do(ctx context.Context, req core.Request) (*core.Envelope, error) {
	rreq, reqID, err := c.build(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.rest.SendWithContext(ctx, rreq)
	if err != nil {
		c.logger.Debug("api request failed", req.Method, req.Path, reqID, err)
		return nil, &core.TransportError{Op: req.Method + " " + req.Path, Err: err}
	}
	c.logger.Debug("api request", req.Method, req.Path, resp.StatusCode, reqID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp.StatusCode, resp.Body)
	}

	env := new(core.Envelope)
	if strings.TrimSpace(resp.Body) == "" {
		return env, nil
	}
	if err := json.Unmarshal([]byte(resp.Body), env); err != nil {
		return nil, errors.Wrapf(err, "decoding %s %s response", req.Method, req.Path)
	}
	if env.Success != nil && !*env.Success {
		return nil, &core.APIError{Status: resp.StatusCode, Code: env.Code, Message: firstMessage(resp.Body)}
	}
	return env, nil
}

func (c *Client) build(req core.Request) (rest.Request, string, error) {
	reqID := uuid.New().String()
	rreq := rest.Request{
		Method:  rest.Method(strings.ToUpper(req.Method)),
		BaseURL: c.baseURL + "/" + strings.TrimLeft(req.Path, "/"),
		Headers: map[string]string{
			"Accept":        "application/json",
			RequestIDHeader: reqID,
		},
	}
	if token := c.token(); token != "" {
		rreq.Headers["Authorization"] = "Bearer " + token
	}
	if len(req.Query) > 0 {
		rreq.QueryParams = make(map[string]string, len(req.Query))
		for k := range req.Query {
			if v := req.Query.Get(k); v != "" {
				rreq.QueryParams[k] = v
			}
		}
	}
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return rreq, reqID, errors.Wrapf(err, "encoding %s %s body", req.Method, req.Path)
		}
		rreq.Body = b
		rreq.Headers["Content-Type"] = "application/json"
	}
	return rreq, reqID, nil
}

func decodeError(status int, body string) error {
	apiErr := &core.APIError{Status: status, Message: firstMessage(body)}

	var raw struct {
		Code   int               `json:"code"`
		Fields map[string]string `json:"fields"`
	}
	if json.Unmarshal([]byte(body), &raw) == nil {
		apiErr.Code = raw.Code
		apiErr.Fields = raw.Fields
	}
	return apiErr
}

// firstMessage picks the first non-empty of `error`, `message` & `errorMessage`.
func firstMessage(body string) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return ""
	}
	for _, key := range []string{"error", "message", "errorMessage"} {
		var s string
		if raw, ok := fields[key]; ok && json.Unmarshal(raw, &s) == nil && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
