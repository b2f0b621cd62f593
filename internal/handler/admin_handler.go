/*
Package handler provides the HTTP handler for the operator admin-login check.

The check only confirms the shared admin secret; the resulting admin capability
lives in the client session and is asserted per chat message from there on.
*/
package handler

import (
	"crypto/subtle"
	"net/http"

	"emclicker/internal/pkg/logx"
	"emclicker/internal/pkg/req"
	"emclicker/internal/pkg/resp"
)

// AdminLoginInput is the JSON body of the admin-login request.
type AdminLoginInput struct {
	Pass string `json:"pass"`
}

// AdminLoginResponse is the JSON body of the admin-login response.
type AdminLoginResponse struct {
	OK bool `json:"ok"`
}

// HandleAdminLogin compares the supplied password against the operator-configured
// secret and answers {ok:true} (200) or {ok:false} (401).
func HandleAdminLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input AdminLoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if subtle.ConstantTimeCompare([]byte(input.Pass), []byte(deps.Config.AdminPass)) != 1 {
			logx.Warn("Admin login failed: wrong password.")
			resp.RespondJSON(w, r, http.StatusUnauthorized, AdminLoginResponse{OK: false})
			return
		}

		logx.Info("Admin login succeeded.")
		resp.RespondJSON(w, r, http.StatusOK, AdminLoginResponse{OK: true})
	}
}
