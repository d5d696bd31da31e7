package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wastrilith2k/portfolio-assistant/internal/anthropic"
	"github.com/wastrilith2k/portfolio-assistant/internal/assistant"
	"github.com/wastrilith2k/portfolio-assistant/internal/composer"
	"github.com/wastrilith2k/portfolio-assistant/internal/portfolio"
	"github.com/wastrilith2k/portfolio-assistant/internal/storage"
)

// newTestHandler wires a full stack against a mock Anthropic upstream.
func newTestHandler(t *testing.T, upstream http.HandlerFunc) http.Handler {
	t.Helper()

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	manager := portfolio.NewManager(store)
	client := anthropic.NewClientWithBaseURL("test-key", "", srv.URL)
	a := assistant.New(client, manager, composer.New(0), store)

	return NewHandler(Deps{
		Assistant:  a,
		Portfolio:  manager,
		Store:      store,
		AdminToken: "admin-token",
	})
}

// anthropicReply mimics a successful messages API response.
func anthropicReply(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"content":[{"type":"text","text":%q}],"model":"test-model"}`, text)
	}
}

func TestChat_Success(t *testing.T) {
	h := newTestHandler(t, anthropicReply("I work mostly in React and Node.js."))

	body := `{"message":"What technologies do you use?"}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp ChatResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Response != "I work mostly in React and Node.js." {
		t.Errorf("response = %q", resp.Response)
	}
	if resp.Context != assistant.ContextTag {
		t.Errorf("context = %q, want %q", resp.Context, assistant.ContextTag)
	}
	if resp.Error != "" {
		t.Errorf("error = %q, want empty", resp.Error)
	}
}

func TestChat_MissingMessage(t *testing.T) {
	h := newTestHandler(t, anthropicReply("unused"))

	for _, body := range []string{`{}`, `{"message":"   "}`, `{invalid`} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
		h.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want %d", body, rr.Code, http.StatusBadRequest)
		}
		var resp ChatResponse
		json.NewDecoder(rr.Body).Decode(&resp)
		if resp.Error != "Message is required" {
			t.Errorf("body %q: error = %q", body, resp.Error)
		}
	}
}

func TestChat_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, anthropicReply("unused"))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
	var resp map[string]string
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp["error"] != "Method not allowed" {
		t.Errorf("error = %q", resp["error"])
	}
}

func TestChat_Preflight(t *testing.T) {
	h := newTestHandler(t, anthropicReply("unused"))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "POST") {
		t.Errorf("Allow-Methods = %q", got)
	}
}

func TestChat_CORSHeadersOnEveryResponse(t *testing.T) {
	h := newTestHandler(t, anthropicReply("ok"))

	for method, path := range map[string]string{
		http.MethodPost: "/api/chat",
		http.MethodGet:  "/health",
	} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(method, path, strings.NewReader(`{"message":"hi"}`))
		h.ServeHTTP(rr, req)
		if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("%s %s: Allow-Origin = %q", method, path, got)
		}
	}
}

func TestChat_UpstreamFailureReturnsFallback(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"type":"error","error":{"type":"api_error","message":"overloaded"}}`)
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hello"}`))
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}

	var resp ChatResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Error != "Failed to generate response" {
		t.Errorf("error = %q", resp.Error)
	}
	if !strings.Contains(resp.Response, "contact James directly at") {
		t.Errorf("fallback response = %q", resp.Response)
	}
	if resp.Context != "" {
		t.Errorf("context = %q, want empty on fallback", resp.Context)
	}
}

func TestChat_HistoryWindowApplied(t *testing.T) {
	var gotPrompt string
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) == 1 {
			gotPrompt = req.Messages[0].Content
		}
		anthropicReply("ok")(w, r)
	})

	var turns []string
	for i := 1; i <= 7; i++ {
		turns = append(turns, fmt.Sprintf(`{"role":"user","content":"turn %d"}`, i))
	}
	body := fmt.Sprintf(`{"message":"current","conversationHistory":[%s]}`, strings.Join(turns, ","))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if strings.Contains(gotPrompt, "turn 1") || strings.Contains(gotPrompt, "turn 2") {
		t.Error("prompt includes turns beyond the history window")
	}
	for i := 3; i <= 7; i++ {
		if !strings.Contains(gotPrompt, fmt.Sprintf("turn %d", i)) {
			t.Errorf("prompt missing turn %d", i)
		}
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, anthropicReply("unused"))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	var body map[string]string
	json.NewDecoder(rr.Body).Decode(&body)
	if body["status"] != "ok" {
		t.Errorf("body = %v, want status=ok", body)
	}
}

func TestPublicContent(t *testing.T) {
	h := newTestHandler(t, anthropicReply("unused"))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var p portfolio.Profile
	json.NewDecoder(rr.Body).Decode(&p)
	if p.Name != "James Nicholas" {
		t.Errorf("profile name = %q", p.Name)
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	h.ServeHTTP(rr, req)
	var projects []portfolio.Project
	json.NewDecoder(rr.Body).Decode(&projects)
	if len(projects) == 0 {
		t.Error("no default projects served")
	}
}

func TestChat_InteractionRecorded(t *testing.T) {
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(anthropicReply("answer"))
	t.Cleanup(srv.Close)

	manager := portfolio.NewManager(store)
	client := anthropic.NewClientWithBaseURL("test-key", "", srv.URL)
	a := assistant.New(client, manager, composer.New(0), store)
	h := NewHandler(Deps{Assistant: a, Portfolio: manager, Store: store, AdminToken: "tok"})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"record me"}`))
	h.ServeHTTP(rr, req)

	interactions, err := store.GetRecentInteractions(10)
	if err != nil {
		t.Fatalf("listing interactions: %v", err)
	}
	if len(interactions) != 1 || interactions[0].Question != "record me" {
		t.Errorf("interactions = %+v", interactions)
	}
}
