package core

import (
	"encoding/json"
	"testing"
)

type row struct {
	ID int `json:"id"`
}

func TestEnvelope_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantCode    int
		wantMsg     string
		wantSuccess *bool
		wantData    string
	}{
		{name: "code envelope", body: `{"code":0,"message":"success","data":{"id":1}}`, wantMsg: "success", wantData: `{"id":1}`},
		{name: "string code", body: `{"code":"40001","message":"bad","data":null}`, wantCode: 40001, wantMsg: "bad", wantData: "null"},
		{name: "success envelope", body: `{"success":true,"data":[1,2]}`, wantSuccess: boolPtr(true), wantData: "[1,2]"},
		{name: "plain object", body: `{"id":3}`, wantData: `{"id":3}`},
		{name: "bare array", body: `[{"id":1}]`, wantData: `[{"id":1}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var env Envelope
			if err := json.Unmarshal([]byte(tt.body), &env); err != nil {
				t.Fatalf("Unmarshal() unexpected error = %v", err)
			}
			if env.Code != tt.wantCode || env.Message != tt.wantMsg {
				t.Errorf("code, message = %d, %q, want %d, %q", env.Code, env.Message, tt.wantCode, tt.wantMsg)
			}
			if (env.Success == nil) != (tt.wantSuccess == nil) || (env.Success != nil && *env.Success != *tt.wantSuccess) {
				t.Errorf("Success = %v, want %v", env.Success, tt.wantSuccess)
			}
			if string(env.Data) != tt.wantData {
				t.Errorf("Data = %s, want %s", env.Data, tt.wantData)
			}
		})
	}
}

func TestDecodePage(t *testing.T) {
	q := PageQuery[struct{}]{Page: 2, Limit: 5}
	tests := []struct {
		name      string
		body      string
		wantItems int
		wantTotal int64
		wantPage  int
		wantLimit int
	}{
		{name: "items", body: `{"code":0,"data":{"items":[{"id":1},{"id":2}],"total":12,"page":3,"limit":2}}`, wantItems: 2, wantTotal: 12, wantPage: 3, wantLimit: 2},
		{name: "list key", body: `{"code":0,"data":{"list":[{"id":1}],"total":1}}`, wantItems: 1, wantTotal: 1, wantPage: 2, wantLimit: 5},
		{name: "bare array with total", body: `{"code":0,"data":[{"id":1}],"total":40}`, wantItems: 1, wantTotal: 40, wantPage: 2, wantLimit: 5},
		{name: "bare array without total", body: `{"success":true,"data":[{"id":1},{"id":2}]}`, wantItems: 2, wantTotal: 2, wantPage: 2, wantLimit: 5},
		{name: "missing items", body: `{"code":0,"data":{"total":0}}`, wantPage: 2, wantLimit: 5},
		{name: "null data", body: `{"code":0,"data":null}`, wantPage: 2, wantLimit: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := new(Envelope)
			if err := json.Unmarshal([]byte(tt.body), env); err != nil {
				t.Fatal(err)
			}
			page, err := DecodePage[row](env, q)
			if err != nil {
				t.Fatalf("DecodePage() unexpected error = %v", err)
			}
			if page.Items == nil {
				t.Error("Items is nil")
			}
			if len(page.Items) != tt.wantItems || page.Total != tt.wantTotal {
				t.Errorf("items, total = %d, %d, want %d, %d", len(page.Items), page.Total, tt.wantItems, tt.wantTotal)
			}
			if page.Page != tt.wantPage || page.Limit != tt.wantLimit {
				t.Errorf("page, limit = %d, %d, want %d, %d", page.Page, page.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestDecodeList(t *testing.T) {
	for _, body := range []string{`{"code":0,"data":[{"id":1}]}`, `{"code":0,"data":{"items":[{"id":1}]}}`} {
		env := new(Envelope)
		if err := json.Unmarshal([]byte(body), env); err != nil {
			t.Fatal(err)
		}
		items, err := DecodeList[row](env)
		if err != nil || len(items) != 1 || items[0].ID != 1 {
			t.Errorf("DecodeList(%s) = %v, %v", body, items, err)
		}
	}
	items, err := DecodeList[row](&Envelope{})
	if err != nil || items == nil || len(items) != 0 {
		t.Errorf("DecodeList(empty) = %#v, %v, want empty slice", items, err)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestPageParams(t *testing.T) {
	v := PageParams(0, 0)
	if v.Get("page") != "1" || v.Get("limit") != "10" {
		t.Errorf("PageParams(0, 0) = %v", v)
	}
}

func boolPtr(b bool) *bool {
	return &b
}
