/*
Package req provides helper functions for HTTP request parsing and data binding.

It encapsulates the logic for parsing JSON and multipart form data, and integrates
error handling to ensure data format correctness and size constraints.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"emclicker/internal/pkg/errs"
)

const (
	// MaxFormMemory defines the maximum amount of memory ParseMultipartForm
	// will use to store non-file fields; larger file parts spill to temp files.
	MaxFormMemory int64 = 32 << 20 // 32 MB

	// MaxRequestFileSize defines the maximum allowed size for the entire
	// request body, including files, enforced via http.MaxBytesReader.
	MaxRequestFileSize int64 = 8 << 20 // 8 MB
)

// BindJSON attempts to bind the JSON data from the HTTP request body to the destination struct dst.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.New(errs.ErrUnsupportedMediaType)
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.New(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.New(errs.ErrInvalidJSONFormat)
	}

	return nil
}

// SetupMultipart caps the request body size and parses multipart form data.
func SetupMultipart(w http.ResponseWriter, r *http.Request) *errs.CustomError {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestFileSize)

	if err := r.ParseMultipartForm(MaxFormMemory); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			return errs.New(errs.ErrRequestEntityTooLarge)
		}

		return errs.New(errs.ErrFormParseFailed)
	}

	return nil
}
