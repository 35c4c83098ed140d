package handler

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/youngkeol/notion-blog/internal/domain"
	"github.com/youngkeol/notion-blog/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	switch status := statusOf(err); status {
	case http.StatusBadRequest, http.StatusNotFound:
		httputil.RespondError(w, status, err.Error())
	case http.StatusBadGateway:
		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) {
			httputil.RespondErrorWithExtras(w, status, "content source unavailable",
				map[string]any{"operation": upstream.Op})
			return
		}
		httputil.RespondError(w, status, "content source unavailable")
	default:
		httputil.RespondError(w, status, "internal server error")
	}
}

// checkLength rejects parameters longer than max runes
func checkLength(name, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return &domain.ValidationError{Message: fmt.Sprintf("%s exceeds %d characters", name, max)}
	}
	return nil
}

// statusOf reports the status handleError would send for err
func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
