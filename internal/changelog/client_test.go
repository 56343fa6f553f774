package changelog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientFetchMapsCommits(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"sha":"0123456789abcdef","commit":{"message":"Fix report layout\n\nDetails here","author":{"name":"Dev","date":"2026-03-01T10:00:00Z"}}},
			{"sha":"fedcba9876543210","commit":{"message":"Initial commit","author":{"name":"Dev","date":"2026-02-01T10:00:00Z"}}}
		]`))
	}))
	defer server.Close()

	client := NewClient("owner/repo", "secret")
	client.baseURL = server.URL

	commits, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if gotPath != "/repos/owner/repo/commits" {
		t.Errorf("unexpected request path %q", gotPath)
	}
	if gotAuth != "token secret" {
		t.Errorf("unexpected authorization header %q", gotAuth)
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}
	if commits[0].Hash != "0123456" {
		t.Errorf("expected short hash, got %q", commits[0].Hash)
	}
	if commits[0].Message != "Fix report layout" {
		t.Errorf("expected first message line only, got %q", commits[0].Message)
	}
	if commits[0].Author != "Dev" {
		t.Errorf("unexpected author %q", commits[0].Author)
	}
}

func TestClientFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient("owner/repo", "")
	client.baseURL = server.URL

	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
