package stub

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Handler serves the backend HTTP contract from the canned stub.
type Handler struct {
	router *chi.Mux
	logger *zap.Logger
}

// NewHandler builds the stub API router. CORS is wide open: the stub only
// exists for local development.
func NewHandler(logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	h := &Handler{router: r, logger: logger}
	r.Get("/health", h.handleHealth)
	r.Post("/classify", h.handleClassify)
	r.Post("/chat", h.handleChat)
	r.Post("/analyze", h.handleAnalyze)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

type ideaRequest struct {
	Idea string `json:"idea"`
}

// readIdea decodes the shared request payload. A decode failure or blank
// idea ends the request with 400.
func (h *Handler) readIdea(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req ideaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return "", false
	}
	if strings.TrimSpace(req.Idea) == "" {
		h.writeError(w, r, http.StatusBadRequest, "idea is required")
		return "", false
	}
	return req.Idea, true
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{"status": "ok"})
}

func (h *Handler) handleClassify(w http.ResponseWriter, r *http.Request) {
	idea, ok := h.readIdea(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, map[string]string{"type": Classify(idea).String()})
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	idea, ok := h.readIdea(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, map[string]string{"response": Reply(idea)})
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	idea, ok := h.readIdea(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, ReportFor(idea))
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeError reports a failed request. Successful requests stay quiet, the
// stub only logs what went wrong.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.logger.Error("stub request failed",
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("reason", msg))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": msg})
}
