package req

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type payload struct {
	League string `json:"league"`
}

func decodeBody(body string) (payload, error) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return Decode[payload](httptest.NewRecorder(), r)
}

func TestDecode(t *testing.T) {
	p, err := decodeBody(`{"league":"E0"}`)
	if err != nil || p.League != "E0" {
		t.Fatalf("payload=%+v err=%v", p, err)
	}

	for _, body := range []string{``, `{"league":`} {
		if _, err := decodeBody(body); err == nil {
			t.Fatalf("body %q: expected error", body)
		} else if Status(err) != http.StatusBadRequest {
			t.Fatalf("body %q: status=%d want=400", body, Status(err))
		}
	}
}

func TestDecode_IgnoresUnknownFields(t *testing.T) {
	p, err := decodeBody(`{"league":"E0","client":"ui","extra":{"a":1}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.League != "E0" {
		t.Fatalf("league=%q want=E0", p.League)
	}
}

func TestDecode_TooLarge(t *testing.T) {
	body := `{"league":"` + strings.Repeat("x", MaxBodySize) + `"}`

	_, err := decodeBody(body)
	if err == nil {
		t.Fatalf("expected error for oversized body")
	}
	if Status(err) != http.StatusRequestEntityTooLarge {
		t.Fatalf("status=%d want=413 (err=%v)", Status(err), err)
	}
}
