package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
	Auth   string
}

type testServer struct {
	server   *httptest.Server
	requests []recordedRequest
}

func newTestServer(t *testing.T, responses map[string]string) *testServer {
	t.Helper()
	ts := &testServer{}

	ts.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body bytes.Buffer
		body.ReadFrom(r.Body)

		ts.requests = append(ts.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.RequestURI(),
			Body:   body.String(),
			Auth:   r.Header.Get("Authorization"),
		})

		key := r.Method + " " + r.URL.Path
		if resp, ok := responses[key]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(resp))
			return
		}

		w.WriteHeader(404)
		w.Write([]byte(`{"error":{"message":"not found","type":"not_found"}}`))
	}))

	t.Cleanup(ts.server.Close)
	return ts
}

func (ts *testServer) client() *apiClient {
	return &apiClient{
		baseURL:    ts.server.URL,
		token:      "test-token",
		httpClient: ts.server.Client(),
	}
}

var ctx = context.Background()

func TestChatRequest(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"POST /api/chat": `{"response":"I build web apps.","context":"james-portfolio-assistant"}`,
	})
	client := ts.client()

	resp, err := client.post(ctx, "/api/chat", map[string]any{"message": "what do you do?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result map[string]string
	if err := decodeJSON(resp, &result); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if result["response"] != "I build web apps." {
		t.Errorf("response = %q", result["response"])
	}

	if len(ts.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(ts.requests))
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(ts.requests[0].Body), &body); err != nil {
		t.Fatalf("body parse error: %v", err)
	}
	if body["message"] != "what do you do?" {
		t.Errorf("body.message = %v", body["message"])
	}
}

func TestAdminRequestsCarryToken(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"POST /api/admin/seed": `{"status":"seeded"}`,
	})
	client := ts.client()

	resp, err := client.post(ctx, "/api/admin/seed", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var result map[string]string
	if err := decodeJSON(resp, &result); err != nil {
		t.Fatalf("decode error: %v", err)
	}

	if ts.requests[0].Auth != "Bearer test-token" {
		t.Errorf("auth = %q, want Bearer test-token", ts.requests[0].Auth)
	}
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"POST /api/chat": `{"response":"ok"}`,
	})
	client := ts.client()
	client.token = ""

	resp, err := client.post(ctx, "/api/chat", map[string]any{"message": "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if ts.requests[0].Auth != "" {
		t.Errorf("auth = %q, want no header", ts.requests[0].Auth)
	}
}

func TestDecodeJSON_ErrorStatus(t *testing.T) {
	ts := newTestServer(t, nil) // everything 404s
	client := ts.client()

	resp, err := client.get(ctx, "/api/admin/interactions")
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}

	var v any
	err = decodeJSON(resp, &v)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error = %q, want it to mention the status", err.Error())
	}
}

func TestServerUnreachable(t *testing.T) {
	client := &apiClient{
		baseURL:    "http://127.0.0.1:1", // nothing listens here
		httpClient: &http.Client{Timeout: 500 * time.Millisecond},
	}

	_, err := client.get(ctx, "/health")
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
	if !strings.Contains(err.Error(), "is portfolio-assistant running") {
		t.Errorf("error = %q, want the running-server hint", err.Error())
	}
}

func TestIngestCommand_MissingArgs(t *testing.T) {
	defer rootCmd.SetArgs(nil)

	rootCmd.SetArgs([]string{"ingest"})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected error for missing args")
	}
	if !strings.Contains(err.Error(), "required") {
		t.Errorf("error = %q, want it to mention 'required'", err.Error())
	}
}
