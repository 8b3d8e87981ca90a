package api

import (
	"encoding/json"
	"net/http"

	"github.com/speedyy/marketplace/internal/domain"
	"github.com/speedyy/marketplace/internal/middleware"
)

// errorResponse is the JSON body for all error replies.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// respondJSON writes v as JSON with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondError maps a domain error onto an HTTP status and writes the
// caller-safe message. Internal causes are logged, never returned.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := errorCodeToHTTPStatus(code)

	logger := middleware.GetLogger(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err, "code", code, "status", status)
	} else {
		logger.Info("request rejected", "error", err, "code", code, "status", status)
	}

	var body errorResponse
	body.Error.Code = code
	body.Error.Message = domain.ErrorMessage(err)
	respondJSON(w, status, body)
}

// errorCodeToHTTPStatus maps domain error codes to HTTP status codes
func errorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EPAYMENT:
		return http.StatusPaymentRequired
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
