package server

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/treekit/lineage/pkg/errors"
	"github.com/treekit/lineage/pkg/observability"
	"github.com/treekit/lineage/pkg/store"
)

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Error     string         `json:"error"`
	Code      apperrors.Code `json:"code,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to an HTTP status and writes the JSON body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)

	writeJSON(w, statusFor(err), errorResponse{
		Error:     apperrors.UserMessage(err),
		Code:      apperrors.GetCode(err),
		RequestID: RequestID(r.Context()),
	})
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}

	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidMembers,
		apperrors.ErrCodeInvalidConfig,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidMode,
		apperrors.ErrCodeInvalidSnapshot,
		apperrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodeSnapshotNotFound,
		apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
