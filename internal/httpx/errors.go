package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/logging"
)

const (
	msgNotFound     = "Not found"
	msgUnauthorized = "Unauthorized"
	msgConflict     = "Already exists"
	msgRateLimited  = "Too many requests"
	msgInternal     = "An unknown error occurred."
)

// StatusFor maps a service error onto an HTTP status code.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorConflict):
		return http.StatusConflict
	case errors.Is(err, common.ErrorRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// WriteError maps err onto a status code and a client-safe message.
// Validation errors expose their detail (it describes the caller's own input);
// everything else gets a fixed message. 5xx errors are logged.
func WriteError(ctx context.Context, w http.ResponseWriter, log logging.Logger, err error) {
	code := StatusFor(err)
	switch code {
	case http.StatusBadRequest:
		WriteMessage(w, code, validationMessage(err))
	case http.StatusNotFound:
		WriteMessage(w, code, msgNotFound)
	case http.StatusUnauthorized:
		WriteMessage(w, code, msgUnauthorized)
	case http.StatusConflict:
		WriteMessage(w, code, msgConflict)
	case http.StatusTooManyRequests:
		WriteMessage(w, code, msgRateLimited)
	default:
		log.Error(ctx, "request failed", "error", err.Error(), "request_id", RequestIDFrom(ctx))
		WriteMessage(w, http.StatusInternalServerError, msgInternal)
	}
}

func validationMessage(err error) string {
	msg := err.Error()
	prefix := common.ErrorValidation.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return "Invalid request: " + msg[i+len(prefix):]
	}
	return "Invalid request"
}
