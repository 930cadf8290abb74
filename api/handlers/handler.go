package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/jusunglee/metro-go/internal/models"
	"github.com/jusunglee/metro-go/pkg/metro"
)

// maxBodySize caps request bodies read by the handlers
const maxBodySize = 1 << 20

// Handler handles HTTP requests
type Handler struct {
	client   metro.Client
	logger   *slog.Logger
	validate *validator.Validate
}

// NewHandler creates a new HTTP handler
func NewHandler(client metro.Client, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		client:   client,
		logger:   logger,
		validate: validator.New(),
	}
}

// RegisterRoutes registers all routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.handleHello).Methods("GET")
	r.HandleFunc("/echo", h.handleEcho).Methods("POST")
	r.HandleFunc("/getStation", h.handleStations).Methods("GET")
	r.HandleFunc("/getLine", h.handleRoute).Methods("POST")
	r.HandleFunc("/lines", h.handleLines).Methods("GET")
	r.HandleFunc("/healthz", h.handleHealth).Methods("GET")
}

// Response wraps list responses
type Response struct {
	Data    interface{} `json:"data"`
	Updated string      `json:"updated,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports the loaded network
type HealthResponse struct {
	Status string      `json:"status"`
	Stats  metro.Stats `json:"network"`
}

func (h *Handler) handleHello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "Hello World!")
}

func (h *Handler) handleEcho(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		h.writeError(w, "Failed to read body", http.StatusBadRequest)
		return
	}
	h.writeJSON(w, string(body))
}

func (h *Handler) handleStations(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.client.LineStations())
}

// handleRoute answers a route query. An unknown station or a missing
// route is a normal outcome and is written as null.
func (h *Handler) handleRoute(w http.ResponseWriter, r *http.Request) {
	var req models.RouteRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, "Both start and end are required", http.StatusBadRequest)
		return
	}

	path, ok := h.client.FindPath(req.Start, req.End)
	if !ok {
		h.logger.Debug("No route", "start", req.Start, "end", req.End)
		h.writeJSON(w, nil)
		return
	}
	h.writeJSON(w, path)
}

func (h *Handler) handleLines(w http.ResponseWriter, r *http.Request) {
	response := Response{
		Data:    h.client.Lines(),
		Updated: h.client.Stats().LoadedAt.Format(time.RFC3339),
	}
	h.writeJSON(w, response)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, HealthResponse{Status: "ok", Stats: h.client.Stats()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
