package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/convert"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/models"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/shared"
)

// Converter is the conversion core as the HTTP layer sees it.
// [convert.Orchestrator] is the production implementation.
type Converter interface {
	Convert(ctx context.Context, req *models.ConvertRequest) (*convert.Outcome, error)
	Info(ctx context.Context, url string) (*models.VideoInfo, error)
}

// MessageStore persists contact-form submissions.
type MessageStore interface {
	Create(message *models.Message) error
}

// ConvertHandler serves POST /api/convert: runs one conversion and streams
// the resulting audio file back with an attachment filename.
type ConvertHandler struct {
	converter Converter
	logger    *log.Logger
}

func NewConvertHandler(converter Converter, logger *log.Logger) *ConvertHandler {
	return &ConvertHandler{converter: converter, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *ConvertHandler) Routes() []string {
	return []string{"/api/convert"}
}

func (h *ConvertHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("Method not allowed", ""))
		return
	}

	var body struct {
		URL     string `json:"url"`
		Quality string `json:"quality"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid request data", ""))
		return
	}

	req, err := models.ParseConvertRequest(body.URL, body.Quality)
	if err != nil {
		writeConvertError(w, h.logger, err)
		return
	}

	outcome, err := h.converter.Convert(r.Context(), req)
	if err != nil {
		writeConvertError(w, h.logger, err)
		return
	}

	h.stream(w, r, outcome)
}

// stream writes the converted file as an attachment. The temp file is
// removed after the grace period on success, immediately when the client
// aborts mid-transfer.
func (h *ConvertHandler) stream(w http.ResponseWriter, r *http.Request, outcome *convert.Outcome) {
	f, err := os.Open(outcome.FilePath)
	if err != nil {
		outcome.Discard()
		h.logger.Error("failed to open converted file", "path", outcome.FilePath, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("Internal server error", ""))
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		outcome.Discard()
		h.logger.Error("failed to stat converted file", "path", outcome.FilePath, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("Internal server error", ""))
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outcome.Filename))
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, f); err != nil {
		// Headers are already written; nothing more can be sent. Reclaim
		// the file right away.
		outcome.Discard()
		h.logger.Warn("download interrupted", "filename", outcome.Filename, "error", err)
		return
	}

	outcome.Cleanup()
}

// VideoInfoHandler serves POST /api/video-info: a metadata preview that
// never triggers a download.
type VideoInfoHandler struct {
	converter Converter
	logger    *log.Logger
}

func NewVideoInfoHandler(converter Converter, logger *log.Logger) *VideoInfoHandler {
	return &VideoInfoHandler{converter: converter, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *VideoInfoHandler) Routes() []string {
	return []string{"/api/video-info"}
}

func (h *VideoInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("Method not allowed", ""))
		return
	}

	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.URL == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("URL is required", ""))
		return
	}

	info, err := h.converter.Info(r.Context(), body.URL)
	if err != nil {
		if errors.Is(err, shared.ErrInternal) {
			h.logger.Error("video info lookup failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorBody("Failed to get video information", ""))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorBody("Could not get video information", ""))
		return
	}

	writeJSON(w, http.StatusOK, response{
		"success":  true,
		"title":    info.Title,
		"duration": info.Duration,
	})
}

// ContactHandler serves POST /api/contact: persists contact-form
// submissions.
type ContactHandler struct {
	store  MessageStore
	logger *log.Logger
}

func NewContactHandler(store MessageStore, logger *log.Logger) *ContactHandler {
	return &ContactHandler{store: store, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *ContactHandler) Routes() []string {
	return []string{"/api/contact"}
}

func (h *ContactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("Method not allowed", ""))
		return
	}

	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid form data", ""))
		return
	}

	message := models.NewMessage(0, body.Name, body.Email, body.Message)
	if err := h.store.Create(message); err != nil {
		if errors.Is(err, shared.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, errorBody("Invalid form data", err.Error()))
			return
		}
		h.logger.Error("failed to save contact message", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("Failed to save message", ""))
		return
	}

	writeJSON(w, http.StatusOK, response{
		"success": true,
		"message": "Message sent successfully!",
		"id":      message.ID(),
	})
}

// HealthHandler serves GET /api/health for liveness checks.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Routes returns the HTTP routes this handler serves.
func (h *HealthHandler) Routes() []string {
	return []string{"/api/health"}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("Method not allowed", ""))
		return
	}
	writeJSON(w, http.StatusOK, response{"success": true, "status": "ok"})
}
