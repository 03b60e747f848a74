package api

import (
	"errors"
	"net/http"

	service "github.com/okian/reelmatch/internal/app"
	"github.com/okian/reelmatch/internal/domain/filter"
	"github.com/okian/reelmatch/internal/domain/quiz"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// Error codes carried in error responses.
const (
	CodeBadRequest       = "bad_request"
	CodeInvalidFilter    = "invalid_filter"
	CodeLimitExceeded    = "limit_exceeded"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeUnavailable      = "unavailable"
	CodeInternal         = "internal_error"
)

// writeServiceError translates an error from the matching service.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, filter.ErrInvalidFilter):
		writeError(w, http.StatusBadRequest, CodeInvalidFilter, err)
	case errors.Is(err, service.ErrLimitExceeded), errors.Is(err, service.ErrGroupTooLarge):
		writeError(w, http.StatusBadRequest, CodeLimitExceeded, err)
	case errors.Is(err, quiz.ErrMissingUserID):
		writeError(w, http.StatusBadRequest, CodeBadRequest, err)
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, CodeUnavailable, err)
	default:
		writeError(w, http.StatusInternalServerError, CodeInternal, err)
	}
}
