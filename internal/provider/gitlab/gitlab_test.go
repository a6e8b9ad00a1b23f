package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"repo-resolver/internal/config"
	"repo-resolver/internal/provider"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{GitLabBaseURL: baseURL}
}

func TestNew_SpecHandling(t *testing.T) {
	p, err := New("group/project.git/main", testConfig(config.DefaultGitLabBaseURL))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	if got := p.RepoURL(); got != "https://gitlab.com/group/project" {
		t.Errorf("RepoURL() = %q, want https://gitlab.com/group/project", got)
	}
	if got := p.BuildSlug(); got != "group-project" {
		t.Errorf("BuildSlug() = %q, want group-project", got)
	}
}

func TestNew_SelfHostedURL(t *testing.T) {
	p, err := New("group/project/main", testConfig("https://gitlab.example.com"))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	if got := p.RepoURL(); got != "https://gitlab.example.com/group/project" {
		t.Errorf("RepoURL() = %q, want self-hosted URL", got)
	}
}

func TestNew_MalformedSpec(t *testing.T) {
	_, err := New("group/project", testConfig(config.DefaultGitLabBaseURL))
	if err == nil {
		t.Fatal("expected error for two-segment spec, got nil")
	}
	if !strings.Contains(err.Error(), "group/project/master") {
		t.Errorf("error = %q, expected suggested spec ending in /master", err.Error())
	}
}

func TestResolveRef_Success(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if !strings.Contains(r.URL.Path, "/repository/commits/") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "deadbeefcafe", "short_id": "deadbeef"}`)
	}))
	defer server.Close()

	p, err := New("group/project/main", testConfig(server.URL))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	sha, found, err := p.ResolveRef(context.Background())
	if err != nil {
		t.Fatalf("ResolveRef() unexpected error: %v", err)
	}
	if !found || sha != "deadbeefcafe" {
		t.Errorf("ResolveRef() = (%q, %v), want (deadbeefcafe, true)", sha, found)
	}

	// Second call must come from the memoized value.
	if _, _, err := p.ResolveRef(context.Background()); err != nil {
		t.Fatalf("second ResolveRef() unexpected error: %v", err)
	}
	if requests != 1 {
		t.Errorf("server saw %d requests, want 1", requests)
	}
}

func TestResolveRef_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "404 Commit Not Found"}`)
	}))
	defer server.Close()

	p, err := New("group/project/no-such-ref", testConfig(server.URL))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	sha, found, err := p.ResolveRef(context.Background())
	if err != nil {
		t.Fatalf("ResolveRef() unexpected error: %v (404 is not an error)", err)
	}
	if found || sha != "" {
		t.Errorf("ResolveRef() = (%q, %v), want (\"\", false)", sha, found)
	}
}

func TestResolveRef_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"message": "bad request"}`)
	}))
	defer server.Close()

	p, err := New("group/project/main", testConfig(server.URL))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	_, _, err = p.ResolveRef(context.Background())

	var resErr *provider.ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("ResolveRef() error type = %T, want *provider.ResolutionError", err)
	}
	if resErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", resErr.StatusCode)
	}
}
