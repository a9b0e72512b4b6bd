package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/shared"
)

// response is the JSON envelope every API reply uses.
type response map[string]any

func errorBody(message, details string) response {
	body := response{"success": false, "error": message}
	if details != "" {
		body["details"] = details
	}
	return body
}

func writeJSON(w http.ResponseWriter, status int, payload response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeConvertError maps a conversion failure onto the API's status codes and
// user-facing messages. Internal detail is logged, never returned.
func writeConvertError(w http.ResponseWriter, logger *log.Logger, err error) {
	switch {
	case errors.Is(err, shared.ErrInvalidURL), errors.Is(err, shared.ErrInvalidQuality), errors.Is(err, shared.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid request data", ""))
	case errors.Is(err, shared.ErrUnavailable):
		writeJSON(w, http.StatusBadRequest, errorBody(
			"Unable to access this video. It might be private, age-restricted, or unavailable in your region.", ""))
	case errors.Is(err, shared.ErrProbeTimeout):
		writeJSON(w, http.StatusRequestTimeout, errorBody(
			"Video info check timeout. The video might be too long or unavailable.", ""))
	case errors.Is(err, shared.ErrOverallTimeout):
		writeJSON(w, http.StatusRequestTimeout, errorBody(
			"Conversion timeout. Please try again with a shorter video or different URL.", ""))
	case errors.Is(err, shared.ErrBlocked):
		writeJSON(w, http.StatusTooManyRequests, errorBody(
			"YouTube is currently blocking download requests. This is a temporary issue affecting many YouTube downloaders. Please try again later or use a different video.",
			"YouTube has implemented stronger anti-bot measures recently."))
	case errors.Is(err, shared.ErrExhausted):
		writeJSON(w, http.StatusInternalServerError, errorBody(
			"All conversion methods failed. YouTube may be blocking requests temporarily. Please try again later.", ""))
	default:
		logger.Error("conversion failed with internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("Internal server error", ""))
	}
}
