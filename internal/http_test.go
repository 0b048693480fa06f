package internal

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/tidwall/gjson"
)

// mockRESTServer records request metadata and replays a canned response.
type mockRESTServer struct {
	t *testing.T

	statusCode int
	body       string

	mu               sync.Mutex
	lastMethod       string
	lastPath         string
	lastCacheControl string
	lastAuth         string
	lastBody         []byte
}

func (s *mockRESTServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.lastMethod = r.Method
	s.lastPath = r.URL.Path
	s.lastCacheControl = r.Header.Get("Cache-Control")
	s.lastAuth = r.Header.Get("Authorization")
	s.lastBody = body
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(s.statusCode)
	_, _ = w.Write([]byte(s.body))
}

func TestRestSuccessTransformsPayload(t *testing.T) {
	t.Parallel()

	mock := &mockRESTServer{
		t:          t,
		statusCode: http.StatusOK,
		body:       `{"article":{"slug":"gt3-brakes","mainImage":"brakes.jpg"}}`,
	}
	srv := httptest.NewServer(mock)
	defer srv.Close()

	client := newTestClient(t, srv, "token", 300)
	result := client.Rest(context.Background(), "POST", "/api/articles/gt3-brakes/favorite", nil)

	if result.Failed() {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	got := gjson.GetBytes(result.Data, "article.mainImage").String()
	if got != testCDN+"/brakes.jpg" {
		t.Errorf("mainImage = %q, want CDN-qualified URL", got)
	}

	mock.mu.Lock()
	defer mock.mu.Unlock()
	if mock.lastMethod != "POST" {
		t.Errorf("method = %q, want POST", mock.lastMethod)
	}
	if mock.lastPath != "/api/articles/gt3-brakes/favorite" {
		t.Errorf("path = %q", mock.lastPath)
	}
	if mock.lastAuth != "Bearer token" {
		t.Errorf("Authorization = %q, want bearer token", mock.lastAuth)
	}
}

// REST calls are assumed to be mutations; storage is always disabled, even
// for an anonymous client that would qualify for GraphQL caching.
func TestRestAlwaysDisablesStorage(t *testing.T) {
	t.Parallel()

	mock := &mockRESTServer{t: t, statusCode: http.StatusOK, body: `{}`}
	srv := httptest.NewServer(mock)
	defer srv.Close()

	client := newTestClient(t, srv, "", 300)
	client.Rest(context.Background(), "GET", "/api/user", nil)

	mock.mu.Lock()
	defer mock.mu.Unlock()
	if mock.lastCacheControl != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", mock.lastCacheControl)
	}
}

func TestRestNoContent(t *testing.T) {
	t.Parallel()

	mock := &mockRESTServer{t: t, statusCode: http.StatusNoContent}
	srv := httptest.NewServer(mock)
	defer srv.Close()

	client := newTestClient(t, srv, "token", 300)
	result := client.Rest(context.Background(), "DELETE", "/api/articles/gt3-brakes/favorite", nil)

	if result.Failed() {
		t.Errorf("204 treated as failure: %s", result.Error)
	}
	if result.Data != nil {
		t.Errorf("204 produced data: %s", result.Data)
	}
}

func TestRestHTTPErrorEmbedsStatus(t *testing.T) {
	t.Parallel()

	mock := &mockRESTServer{t: t, statusCode: http.StatusUnauthorized, body: `{}`}
	srv := httptest.NewServer(mock)
	defer srv.Close()

	client := newTestClient(t, srv, "", 300)
	result := client.Rest(context.Background(), "GET", "/api/user", nil)

	if !result.Failed() {
		t.Fatal("expected failure")
	}
	if !strings.Contains(result.Error, "HTTP 401") {
		t.Errorf("error %q does not contain %q", result.Error, "HTTP 401")
	}
	if result.Data != nil {
		t.Errorf("failure carried data: %s", result.Data)
	}
}

func TestRestEncodesBody(t *testing.T) {
	t.Parallel()

	mock := &mockRESTServer{t: t, statusCode: http.StatusOK, body: `{}`}
	srv := httptest.NewServer(mock)
	defer srv.Close()

	client := newTestClient(t, srv, "", 300)
	client.Rest(context.Background(), "POST", "/api/users/refresh-token", map[string]string{
		"refreshToken": "abc",
	})

	mock.mu.Lock()
	defer mock.mu.Unlock()
	var sent map[string]string
	if err := json.Unmarshal(mock.lastBody, &sent); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if sent["refreshToken"] != "abc" {
		t.Errorf("body = %+v", sent)
	}
}

func TestRestNetworkErrorDoesNotEscape(t *testing.T) {
	t.Parallel()

	client, err := NewClient(&http.Client{}, "http://127.0.0.1:1", testCDN, "", "test-agent", 300, nil, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	result := client.Rest(context.Background(), "GET", "/api/user", nil)
	if result == nil {
		t.Fatal("result is nil")
	}
	if !result.Failed() {
		t.Error("network failure not reported")
	}
}

func TestRestAnonymousOmitsAuthorization(t *testing.T) {
	t.Parallel()

	mock := &mockRESTServer{t: t, statusCode: http.StatusOK, body: `{}`}
	srv := httptest.NewServer(mock)
	defer srv.Close()

	client := newTestClient(t, srv, "", 300)
	client.Rest(context.Background(), "GET", "/api/user", nil)

	mock.mu.Lock()
	defer mock.mu.Unlock()
	if mock.lastAuth != "" {
		t.Errorf("Authorization = %q, want absent", mock.lastAuth)
	}
}
