// Package api serves the site-facing chat endpoint, the public content
// endpoints, and the bearer-authenticated admin surface.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wastrilith2k/portfolio-assistant/internal/assistant"
	"github.com/wastrilith2k/portfolio-assistant/internal/conversation"
	"github.com/wastrilith2k/portfolio-assistant/internal/portfolio"
	"github.com/wastrilith2k/portfolio-assistant/internal/storage"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Deps holds everything the HTTP surface needs.
type Deps struct {
	Assistant  *assistant.Assistant
	Portfolio  *portfolio.Manager
	Store      *storage.Store // optional; enables the admin interactions view
	AdminToken string
	HTTPClient *http.Client // used by admin ingest to fetch URLs
}

// ChatRequest is the browser widget's request body. The client carries the
// full transcript; the server applies the history window before prompting.
type ChatRequest struct {
	Message             string              `json:"message"`
	ConversationHistory []conversation.Turn `json:"conversationHistory"`
}

// ChatResponse mirrors what the site widget renders. Context is the assistant
// tag on success and absent on fallback responses.
type ChatResponse struct {
	Response string `json:"response"`
	Context  string `json:"context,omitempty"`
	Error    string `json:"error,omitempty"`
}

// NewHandler builds the full router: chat, health, public content reads, and
// the admin subtree.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(corsHeaders)
	r.MethodNotAllowed(handleMethodNotAllowed)

	r.Get("/health", handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", handleChat(deps))
		r.Get("/profile", handlePublicProfile(deps))
		r.Get("/skills", handlePublicSkills(deps))
		r.Get("/projects", handlePublicProjects(deps))
		r.Mount("/admin", newAdminRouter(deps))
	})

	return r
}

// corsHeaders allows the static site, served from any origin, to call the
// API directly from the browser. Preflight requests short-circuit here.
func corsHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	json.NewEncoder(w).Encode(map[string]string{"error": "Method not allowed"})
}

func handleChat(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ChatResponse{Error: "Message is required"})
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			writeJSON(w, http.StatusBadRequest, ChatResponse{Error: "Message is required"})
			return
		}

		history := conversation.Window(req.ConversationHistory, conversation.HistoryWindow)
		result, err := deps.Assistant.Ask(r.Context(), req.Message, history)
		if err != nil {
			// result carries the contact-information fallback; the widget
			// shows it even on a 500.
			writeJSON(w, http.StatusInternalServerError, ChatResponse{
				Error:    "Failed to generate response",
				Response: result.Response,
			})
			return
		}

		writeJSON(w, http.StatusOK, ChatResponse{
			Response: result.Response,
			Context:  result.Context,
		})
	}
}

func handlePublicProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Portfolio.Profile())
	}
}

func handlePublicSkills(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Portfolio.Skills())
	}
}

func handlePublicProjects(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Portfolio.Projects())
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
