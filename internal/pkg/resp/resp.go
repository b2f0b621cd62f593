/*
Package resp provides helper functions for constructing and sending HTTP JSON responses.

Success payloads are endpoint-specific (the game client consumes exact shapes such as
{url} and {ok}), so RespondJSON sends any payload as-is; errors are reported uniformly
as {error: message} with the HTTP status carried by the CustomError.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"emclicker/internal/pkg/errs"
	"emclicker/internal/pkg/logx"
)

// ErrorResponse is the uniform JSON error body returned by HTTP endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON sets the Content-Type and sends the JSON-encoded payload with the given status.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	body, err := json.Marshal(payload)
	if err != nil {
		logx.Error(err, "Error encoding JSON response", "http_status", httpStatus)
		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(body)
}

// RespondError sends an HTTP response containing the custom error message.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.New(errs.ErrUnknown)
	}

	RespondJSON(w, r, customErr.Status, ErrorResponse{Error: customErr.Message})
}
