package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Rodert/learn-hub/core"
)

func TestClient_Do_headers(t *testing.T) {
	var (
		gotAuth, gotReqID, gotQuery, gotCT string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get(RequestIDHeader)
		gotQuery = r.URL.RawQuery
		gotCT = r.Header.Get("Content-Type")
		_, _ = fmt.Fprint(w, `{"code":0,"message":"success","data":{"items":[],"total":0}}`)
	}))
	defer srv.Close()

	token := ""
	c := New(Options{BaseURL: srv.URL + "/api/", TokenSource: func() string { return token }})

	tests := []struct {
		name     string
		token    string
		req      core.Request
		wantAuth string
		wantCT   string
		wantQry  string
	}{
		{
			name:    "no token",
			req:     core.Request{Method: http.MethodGet, Path: "/materials", Query: url.Values{"page": {"2"}, "limit": {"10"}, "status": {"published"}}},
			wantQry: "limit=10&page=2&status=published",
		},
		{
			name:     "bearer token",
			token:    "t1",
			req:      core.Request{Method: http.MethodGet, Path: "/materials"},
			wantAuth: "Bearer t1",
		},
		{
			name:     "json body",
			token:    "t1",
			req:      core.Request{Method: http.MethodPost, Path: "/materials", Body: map[string]string{"title": "Go"}},
			wantAuth: "Bearer t1",
			wantCT:   "application/json",
		},
		{
			name:    "empty query values are dropped",
			req:     core.Request{Method: http.MethodGet, Path: "questions", Query: url.Values{"type": {""}, "page": {"1"}}},
			wantQry: "page=1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token = tt.token
			if _, err := c.Do(context.Background(), tt.req); err != nil {
				t.Fatalf("Do() unexpected error = %v", err)
			}
			if gotAuth != tt.wantAuth {
				t.Errorf("Authorization = %q, want %q", gotAuth, tt.wantAuth)
			}
			if gotReqID == "" {
				t.Errorf("%s header missing", RequestIDHeader)
			}
			if gotCT != tt.wantCT {
				t.Errorf("Content-Type = %q, want %q", gotCT, tt.wantCT)
			}
			if tt.wantQry != "" && gotQuery != tt.wantQry {
				t.Errorf("query = %q, want %q", gotQuery, tt.wantQry)
			}
		})
	}
}

func TestClient_Do_responses(t *testing.T) {
	type item struct {
		ID int `json:"id"`
	}

	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   bool
		wantMsg   string
		wantItems int
		wantTotal int64
	}{
		{name: "paged envelope", status: 200, body: `{"code":0,"message":"success","data":{"items":[{"id":1},{"id":2}],"total":12,"page":1,"limit":2}}`, wantItems: 2, wantTotal: 12},
		{name: "bare array with total", status: 200, body: `{"success":true,"data":[{"id":1}],"total":7}`, wantItems: 1, wantTotal: 7},
		{name: "missing items", status: 200, body: `{"code":0,"message":"success","data":{}}`},
		{name: "missing data", status: 200, body: `{"code":0,"message":"success"}`},
		{name: "empty body", status: 204, body: ``},
		{name: "error field", status: 400, body: `{"error":"username already exists"}`, wantErr: true, wantMsg: "username already exists"},
		{name: "message field", status: 500, body: `{"code":500,"message":"db down"}`, wantErr: true, wantMsg: "db down"},
		{name: "errorMessage field", status: 403, body: `{"success":false,"errorMessage":"forbidden"}`, wantErr: true, wantMsg: "forbidden"},
		{name: "no message", status: 502, body: `<html>bad gateway</html>`, wantErr: true, wantMsg: ""},
		{name: "explicit failure on 200", status: 200, body: `{"success":false,"errorMessage":"title taken"}`, wantErr: true, wantMsg: "title taken"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			c := New(Options{BaseURL: srv.URL})
			env, err := c.Do(context.Background(), core.Request{Method: http.MethodGet, Path: "/items"})
			if tt.wantErr {
				var apiErr *core.APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("Do() error = %v, want *core.APIError", err)
				}
				if apiErr.Status != tt.status {
					t.Errorf("APIError.Status = %d, want %d", apiErr.Status, tt.status)
				}
				if apiErr.Message != tt.wantMsg {
					t.Errorf("APIError.Message = %q, want %q", apiErr.Message, tt.wantMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Do() unexpected error = %v", err)
			}
			page, err := core.DecodePage[item](env, core.PageQuery[struct{}]{Page: 1, Limit: 10})
			if err != nil {
				t.Fatalf("DecodePage() unexpected error = %v", err)
			}
			if page.Items == nil {
				t.Fatal("DecodePage() Items is nil")
			}
			if len(page.Items) != tt.wantItems {
				t.Errorf("len(Items) = %d, want %d", len(page.Items), tt.wantItems)
			}
			if page.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", page.Total, tt.wantTotal)
			}
		})
	}
}

func TestClient_Do_transportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(Options{BaseURL: url})
	_, err := c.Do(context.Background(), core.Request{Method: http.MethodGet, Path: "/users"})

	var tErr *core.TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("Do() error = %v, want *core.TransportError", err)
	}
	if got := core.UserMessage(err, "failed to load users"); got != "failed to load users" {
		t.Errorf("UserMessage() = %q, want fallback", got)
	}
}

func TestClient_Do_cancelled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(Options{BaseURL: srv.URL})
	_, err := c.Do(ctx, core.Request{Method: http.MethodGet, Path: "/users"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want context.Canceled", err)
	}
}
