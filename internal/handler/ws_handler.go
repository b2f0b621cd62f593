/*
Package handler provides the HTTP handler function for WebSocket connection upgrading.

This file contains HandleWebSocket, which rate limits the connect, upgrades the
HTTP connection, assigns the server-side connection ID, and starts the client
lifecycle against the hub.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"emclicker/internal/app/game"
	"emclicker/internal/pkg/errs"
	"emclicker/internal/pkg/limiter"
	"emclicker/internal/pkg/logx"
	"emclicker/internal/pkg/randx"
	"emclicker/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket connection requests.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r)

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.New(errs.ErrRateLimitExceeded))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		session := game.NewSession(randx.ConnectionID())
		client := game.NewClient(deps.Hub, conn, session)

		go client.WritePump()

		logx.Info("WebSocket connection established", "conn_id", session.ConnID)

		deps.Hub.RegisterClient(client)

		client.ReadPump()
	}
}
