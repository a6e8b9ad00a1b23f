package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCheckQuota(t *testing.T) {
	reset := time.Now().Add(30 * time.Minute).Unix()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rate_limit" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"resources": {"core": {"limit": 5000, "remaining": 4987, "reset": %d}}}`, reset)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.GitHubAccessToken = "token"

	status, err := CheckQuota(context.Background(), cfg)
	if err != nil {
		t.Fatalf("CheckQuota() unexpected error: %v", err)
	}

	if status.Limit != 5000 {
		t.Errorf("Limit = %d, want 5000", status.Limit)
	}
	if status.Remaining != 4987 {
		t.Errorf("Remaining = %d, want 4987", status.Remaining)
	}
	if status.ResetAt.Unix() != reset {
		t.Errorf("ResetAt = %v, want unix %d", status.ResetAt, reset)
	}
}

func TestCheckQuota_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := CheckQuota(context.Background(), testConfig(server.URL)); err == nil {
		t.Fatal("CheckQuota() expected error, got nil")
	}
}
