package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeStrict(t *testing.T) {
	type dto struct {
		Teams []string `json:"teams"`
	}
	cases := []struct {
		body    string
		wantErr bool
	}{
		{`{"teams":["a"]}`, false},
		{`{"teams":["a"],"extra":1}`, true},
		{`{"teams":["a"]} {"teams":[]}`, true},
		{``, true},
		{`{`, true},
	}
	for _, tc := range cases {
		var d dto
		err := DecodeStrict(strings.NewReader(tc.body), &d)
		if (err != nil) != tc.wantErr {
			t.Fatalf("body=%q wantErr=%v err=%v", tc.body, tc.wantErr, err)
		}
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, http.StatusTeapot, "boom")
	if rr.Code != http.StatusTeapot {
		t.Fatalf("status=%d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type=%q", ct)
	}
	if !strings.Contains(rr.Body.String(), `"error":"boom"`) {
		t.Fatalf("body=%s", rr.Body.String())
	}
}
