package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/viewdock/pkg/errors"
	"github.com/matzehuels/viewdock/pkg/observability"
)

// StatusFor maps an error to an HTTP status using its code.
func StatusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeIllegalSize:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidDirection,
		errors.ErrCodeInvalidScript, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeSessionNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// writeError writes err as a JSON error document. Internal details of
// uncoded errors are logged, not returned.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	detail := errorDetail{
		Code:      errors.GetCode(err),
		Message:   errors.UserMessage(err),
		RequestID: RequestIDFrom(r.Context()),
	}
	if status == http.StatusInternalServerError {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
		if detail.Code == "" {
			detail.Code = errors.ErrCodeInternal
			detail.Message = "internal error"
		}
	}
	writeJSON(w, status, errorBody{Error: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}
