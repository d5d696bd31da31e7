package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wastrilith2k/portfolio-assistant/internal/ingest"
	"github.com/wastrilith2k/portfolio-assistant/internal/portfolio"
	"github.com/wastrilith2k/portfolio-assistant/internal/storage"
)

const maxURLFetchSize = 5 << 20 // 5MB

func newAdminRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(BearerAuth(deps.AdminToken))

	r.Get("/profile", handleAdminGetProfile(deps))
	r.Put("/profile", handleAdminPutProfile(deps))

	r.Get("/skills", handleAdminListSkills(deps))
	r.Post("/skills", handleAdminAddSkill(deps))
	r.Put("/skills/{id}", handleAdminUpdateSkill(deps))
	r.Delete("/skills/{id}", handleAdminDeleteSkill(deps))

	r.Get("/projects", handleAdminListProjects(deps))
	r.Post("/projects", handleAdminAddProject(deps))
	r.Put("/projects/{id}", handleAdminUpdateProject(deps))
	r.Delete("/projects/{id}", handleAdminDeleteProject(deps))

	r.Get("/chatbot-context", handleAdminGetContext(deps))
	r.Put("/chatbot-context", handleAdminPutContext(deps))
	r.Delete("/chatbot-context", handleAdminDeleteContext(deps))

	r.Post("/seed", handleAdminSeed(deps))
	r.Post("/ingest", handleAdminIngest(deps))
	r.Get("/interactions", handleAdminListInteractions(deps))

	return r
}

func handleAdminGetProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Portfolio.Profile())
	}
}

func handleAdminPutProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var p portfolio.Profile
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if err := deps.Portfolio.SetProfile(p); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save profile: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

func handleAdminListSkills(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Portfolio.Skills())
	}
}

func handleAdminAddSkill(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var s portfolio.Skill
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if s.Name == "" || s.Category == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "name and category are required")
			return
		}
		added, err := deps.Portfolio.AddSkill(s)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save skill: %v", err)
			return
		}
		writeJSON(w, http.StatusCreated, added)
	}
}

func handleAdminUpdateSkill(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var s portfolio.Skill
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		err := deps.Portfolio.UpdateSkill(chi.URLParam(r, "id"), s)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "skill not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to update skill: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

func handleAdminDeleteSkill(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Portfolio.DeleteSkill(chi.URLParam(r, "id")); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to delete skill: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func handleAdminListProjects(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Portfolio.Projects())
	}
}

func handleAdminAddProject(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var p portfolio.Project
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if p.Title == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "title is required")
			return
		}
		added, err := deps.Portfolio.AddProject(p)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save project: %v", err)
			return
		}
		writeJSON(w, http.StatusCreated, added)
	}
}

func handleAdminUpdateProject(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var p portfolio.Project
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		err := deps.Portfolio.UpdateProject(chi.URLParam(r, "id"), p)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "project not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to update project: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

func handleAdminDeleteProject(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Portfolio.DeleteProject(chi.URLParam(r, "id")); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to delete project: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func handleAdminGetContext(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"content": deps.Portfolio.Override()})
	}
}

func handleAdminPutContext(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Content == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "content is required")
			return
		}
		if err := deps.Portfolio.SetOverride(req.Content); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save chatbot context: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

func handleAdminDeleteContext(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Portfolio.ClearOverride(); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to clear chatbot context: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func handleAdminSeed(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Portfolio.Seed(); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "seed failed: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "seeded"})
	}
}

// IngestRequest imports outside material into the chatbot context override.
// Type "resume" reads a PDF from the server's filesystem; "url" fetches a
// page and strips it to visible text.
type IngestRequest struct {
	Type string `json:"type"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

func handleAdminIngest(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req IngestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		var (
			text string
			err  error
		)
		switch req.Type {
		case "resume":
			if req.Path == "" {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "path is required for resume ingest")
				return
			}
			text, err = ingest.ResumeText(req.Path)
			if err != nil {
				httpError(w, http.StatusUnprocessableEntity, "invalid_request_error", "resume extraction failed: %v", err)
				return
			}
		case "url":
			if req.URL == "" {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "url is required for url ingest")
				return
			}
			text, err = fetchPageText(r.Context(), deps.HTTPClient, req.URL)
			if err != nil {
				httpError(w, http.StatusBadGateway, "api_error", "url ingest failed: %v", err)
				return
			}
		default:
			httpError(w, http.StatusBadRequest, "invalid_request_error", "type must be resume or url")
			return
		}

		if err := deps.Portfolio.AppendOverride(text); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save ingested text: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ingested", "chars": len(text)})
	}
}

func fetchPageText(ctx context.Context, client *http.Client, url string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.New("url returned status " + strconv.Itoa(resp.StatusCode))
	}
	return ingest.HTMLText(io.LimitReader(resp.Body, maxURLFetchSize))
}

func handleAdminListInteractions(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Store == nil {
			writeJSON(w, http.StatusOK, []storage.Interaction{})
			return
		}
		limit := parseIntParam(r, "limit", 20, 100)
		interactions, err := deps.Store.GetRecentInteractions(limit)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list interactions: %v", err)
			return
		}
		if interactions == nil {
			interactions = []storage.Interaction{}
		}
		writeJSON(w, http.StatusOK, interactions)
	}
}

func parseIntParam(r *http.Request, key string, defaultVal, maxVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return defaultVal
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}
