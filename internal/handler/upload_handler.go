/*
Package handler provides the HTTP handler for avatar uploads.

The multipart field "avatar" is stored under a server-generated unique name and
the resulting URL is returned to the client, which passes it along as an opaque
reference on registration.
*/
package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"emclicker/internal/pkg/errs"
	"emclicker/internal/pkg/logx"
	"emclicker/internal/pkg/randx"
	"emclicker/internal/pkg/req"
	"emclicker/internal/pkg/resp"
)

// allowedAvatarExts lists the image extensions accepted for avatar uploads,
// mapped to the content type the file is stored with.
var allowedAvatarExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// UploadResponse is the JSON body of a successful avatar upload.
type UploadResponse struct {
	URL string `json:"url"`
}

// HandleUploadAvatar stores the uploaded avatar through the blob store and
// returns its URL.
func HandleUploadAvatar(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if customErr := req.SetupMultipart(w, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		file, header, err := r.FormFile("avatar")
		if err != nil {
			resp.RespondError(w, r, errs.New(errs.ErrFormParseFailed))
			return
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		contentType, ok := allowedAvatarExts[ext]
		if !ok {
			resp.RespondError(w, r, errs.New(errs.ErrInvalidParams))
			return
		}

		key := randx.AvatarKey(header.Filename)

		url, err := deps.Blobs.Put(r.Context(), key, contentType, file)
		if err != nil {
			logx.Error(err, "Failed to store uploaded avatar", "key", key)
			resp.RespondError(w, r, errs.New(errs.ErrUploadFailed))
			return
		}

		logx.Info("Avatar stored", "key", key, "size", header.Size)
		resp.RespondJSON(w, r, http.StatusOK, UploadResponse{URL: url})
	}
}
