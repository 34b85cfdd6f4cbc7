package httputil

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/pamten/resume-backend/pkg/errors"
)

// ErrorBody is the error payload the resume editor expects
type ErrorBody struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(data)
}

// Error sends an error response
func Error(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		JSON(w, appErr.StatusCode, ErrorBody{
			Error:   appErr.Message,
			Code:    appErr.Code,
			Details: appErr.Details,
		})
		return
	}

	// Default to internal server error
	JSON(w, http.StatusInternalServerError, ErrorBody{
		Error: "an unexpected error occurred",
		Code:  errors.CodeInternal,
	})
}

// Attachment sends a binary payload as a download
func Attachment(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// IsJSON reports whether the request declares a JSON body
func IsJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

// DecodeJSON decodes the request body into the provided value
func DecodeJSON(r *http.Request, v interface{}) error {
	if !IsJSON(r) {
		return errors.BadRequest("Request must be JSON")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.BadRequest(fmt.Sprintf("invalid JSON body: %v", err))
	}
	return nil
}
