package core

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

const DefaultPageSize = 10

type (
	// Request describes one call to the backend REST API. Path is relative to the base URL.
	Request struct {
		Method string
		Path   string
		Query  url.Values
		Body   interface{}
	}

	// Doer sends requests to the backend and returns the normalised response envelope.
	Doer interface {
		Do(ctx context.Context, req Request) (*Envelope, error)
	}

	// Envelope is the normalised response body.
	// `{code, message, data}` and `{success, data, total}` bodies are unwrapped, anything else is kept whole as Data.
	Envelope struct {
		Code    int
		Message string
		Success *bool
		Total   *int64
		Data    json.RawMessage
	}

	PageQuery[F any] struct {
		Page   int
		Limit  int
		Filter F
	}

	Page[T any] struct {
		Items []T   `json:"items"`
		Total int64 `json:"total"`
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
	}
)

func (e *Envelope) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		e.Data = append(json.RawMessage(nil), b...)
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	_, hasData := fields["data"]
	_, hasCode := fields["code"]
	_, hasSuccess := fields["success"]
	if !(hasData || hasCode || hasSuccess) {
		e.Data = append(json.RawMessage(nil), b...)
		return nil
	}

	var raw struct {
		Code    json.RawMessage `json:"code"`
		Message string          `json:"message"`
		Success *bool           `json:"success"`
		Total   *int64          `json:"total"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	// some handlers send the code as a string
	if len(raw.Code) > 0 {
		var code json.Number
		if err := json.Unmarshal(bytes.Trim(raw.Code, `"`), &code); err == nil {
			if n, err := strconv.Atoi(code.String()); err == nil {
				e.Code = n
			}
		}
	}
	e.Message = raw.Message
	e.Success = raw.Success
	e.Total = raw.Total
	e.Data = raw.Data
	return nil
}

// Empty reports whether the envelope carries no data.
func (e *Envelope) Empty() bool {
	if e == nil {
		return true
	}
	d := bytes.TrimSpace(e.Data)
	return len(d) == 0 || bytes.Equal(d, []byte("null"))
}

// Decode unmarshals the envelope data into out. Missing data leaves out untouched.
func (e *Envelope) Decode(out interface{}) error {
	if e.Empty() || out == nil {
		return nil
	}
	return errors.Wrap(json.Unmarshal(e.Data, out), "decoding response data")
}

// DecodeList unmarshals the envelope data into a slice, defaulting to an empty one.
func DecodeList[T any](env *Envelope) ([]T, error) {
	items := make([]T, 0)
	if env.Empty() {
		return items, nil
	}
	var wrapped struct {
		Items []T `json:"items"`
	}
	d := bytes.TrimSpace(env.Data)
	if d[0] == '{' {
		if err := json.Unmarshal(d, &wrapped); err != nil {
			return nil, errors.Wrap(err, "decoding response items")
		}
		if wrapped.Items != nil {
			items = wrapped.Items
		}
		return items, nil
	}
	if err := json.Unmarshal(d, &items); err != nil {
		return nil, errors.Wrap(err, "decoding response items")
	}
	if items == nil {
		items = make([]T, 0)
	}
	return items, nil
}

// DecodePage reads a paginated list from either `data: {items, total, page, limit}`
// or a bare `data: [...]` array with a top level `total`. Absent fields default to
// an empty page at the requested position.
func DecodePage[T any, F any](env *Envelope, q PageQuery[F]) (Page[T], error) {
	page := Page[T]{Items: make([]T, 0), Page: q.Page, Limit: q.Limit}
	if env == nil {
		return page, nil
	}
	if env.Total != nil {
		page.Total = *env.Total
	}
	if env.Empty() {
		return page, nil
	}

	d := bytes.TrimSpace(env.Data)
	if d[0] == '[' {
		if err := json.Unmarshal(d, &page.Items); err != nil {
			return page, errors.Wrap(err, "decoding page items")
		}
		if page.Items == nil {
			page.Items = make([]T, 0)
		}
		if env.Total == nil {
			page.Total = int64(len(page.Items))
		}
		return page, nil
	}

	var body struct {
		Items []T    `json:"items"`
		List  []T    `json:"list"`
		Total *int64 `json:"total"`
		Page  int    `json:"page"`
		Limit int    `json:"limit"`
	}
	if err := json.Unmarshal(d, &body); err != nil {
		return page, errors.Wrap(err, "decoding page")
	}
	switch {
	case body.Items != nil:
		page.Items = body.Items
	case body.List != nil:
		page.Items = body.List
	}
	if body.Total != nil {
		page.Total = *body.Total
	}
	if body.Page > 0 {
		page.Page = body.Page
	}
	if body.Limit > 0 {
		page.Limit = body.Limit
	}
	return page, nil
}

// TotalPages returns ceil(total/limit), 0 when there is nothing to show.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// PageParams returns the `page` & `limit` query values.
func PageParams(page, limit int) url.Values {
	v := make(url.Values)
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(limit))
	return v
}

// Fetch sends req and decodes the response data into a T.
func Fetch[T any](ctx context.Context, api Doer, req Request) (T, error) {
	var out T
	env, err := api.Do(ctx, req)
	if err != nil {
		return out, err
	}
	err = env.Decode(&out)
	return out, err
}

// Send sends req and ignores the response data.
func Send(ctx context.Context, api Doer, req Request) error {
	_, err := api.Do(ctx, req)
	return err
}
