package litterbot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["email"] != "user@example.com" || creds["password"] != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	})

	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok-123" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("GET /robots", authed(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Robot{{ID: "r1", Name: "Upstairs Robot", Serial: "LR4-001"}})
	}))

	mux.HandleFunc("GET /robots/r1/activity", authed(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") == "" {
			t.Error("activity request missing limit param")
		}
		json.NewEncoder(w).Encode([]Activity{
			{Action: "CCC"},
			{Action: "CD"},
		})
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_HappyPath(t *testing.T) {
	srv := testServer(t)
	c := New(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	ctx := context.Background()

	if err := c.Login(ctx, "user@example.com", "hunter2"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	robots, err := c.Robots(ctx)
	if err != nil {
		t.Fatalf("Robots: %v", err)
	}
	if len(robots) != 1 || robots[0].Name != "Upstairs Robot" {
		t.Fatalf("robots = %+v", robots)
	}

	activities, err := c.ActivityHistory(ctx, robots[0].ID, 100)
	if err != nil {
		t.Fatalf("ActivityHistory: %v", err)
	}
	if len(activities) != 2 {
		t.Fatalf("activities = %d, want 2", len(activities))
	}
}

func TestClient_BadCredentials(t *testing.T) {
	srv := testServer(t)
	c := New(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))

	err := c.Login(context.Background(), "user@example.com", "wrong")
	if err == nil {
		t.Fatal("expected login failure")
	}
}

func TestClient_NotLoggedIn(t *testing.T) {
	srv := testServer(t)
	c := New(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))

	if _, err := c.Robots(context.Background()); err == nil {
		t.Fatal("expected error before login")
	}
}
