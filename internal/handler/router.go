/*
Package handler provides the HTTP handlers and routing setup for the clicker server.

This file defines the main Router, applying middleware like logging, CORS, and
IP-based rate limiting before delegating requests to specific handlers (upload,
admin login, WebSocket, static files).
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"emclicker/internal/app/storage"
	"emclicker/internal/pkg/limiter"
	"emclicker/internal/pkg/logx"
	"emclicker/internal/pkg/resp"
)

const (
	LoginRate    = 0.2
	LoginBurst   = 5
	UploadRate   = 0.5
	UploadBurst  = 3
	ConnectRate  = 1
	ConnectBurst = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global and
// per-route middleware.
func Router(deps *AppDeps) http.Handler {
	loginLimiter := limiter.NewIPRateLimiter(rate.Limit(LoginRate), LoginBurst)
	uploadLimiter := limiter.NewIPRateLimiter(rate.Limit(UploadRate), UploadBurst)
	connectLimiter := limiter.NewIPRateLimiter(rate.Limit(ConnectRate), ConnectBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondJSON(w, r, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "emclicker",
		})
	})

	r.Method(http.MethodPost, "/admin-login", loginLimiter.Middleware(HandleAdminLogin(deps)))
	r.Method(http.MethodPost, "/upload-avatar", uploadLimiter.Middleware(HandleUploadAvatar(deps)))

	r.Get("/ws", HandleWebSocket(wsUpgrader, connectLimiter, deps))

	// With local avatar storage the upload directory is served back directly;
	// the S3 backend returns absolute object URLs instead.
	if deps.Config.StorageBackend == "" || deps.Config.StorageBackend == storage.BackendLocal {
		uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.Config.UploadDir)))
		r.Handle("/uploads/*", uploads)
	}

	r.Handle("/*", http.FileServer(http.Dir(deps.Config.PublicDir)))

	return r
}
