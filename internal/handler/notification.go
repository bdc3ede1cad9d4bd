package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/golfimprover/golfimprover/internal/ctxkeys"
	"github.com/golfimprover/golfimprover/internal/repository"
	"github.com/golfimprover/golfimprover/internal/service"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait    = 10 * time.Second
	wsPingInterval = 30 * time.Second
)

type notificationHandler struct {
	notificationService *service.NotificationService
	upgrader            websocket.Upgrader
}

func NewNotificationHandler(notificationService *service.NotificationService) *notificationHandler {
	return &notificationHandler{
		notificationService: notificationService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *notificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	notifications, err := h.notificationService.Notifications(user.ID)
	if err != nil {
		slog.Error("failed to load notifications", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to load notifications")
		return
	}

	respondJSON(w, http.StatusOK, notifications)
}

func (h *notificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	notificationID := r.PathValue("id")

	err := h.notificationService.MarkRead(user.ID, notificationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			respondError(w, http.StatusNotFound, "Notification not found")
			return
		}
		slog.Error("failed to mark notification read", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to update notification")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Stream upgrades to a websocket and pushes notifications as they are created.
// The subscription is torn down when the client disconnects.
func (h *notificationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		slog.Warn("websocket upgrade failed", "error", err, "user_id", user.ID)
		return
	}

	ch, cancel := h.notificationService.Subscribe(user.ID)
	defer cancel()
	defer conn.Close()

	// Read pump: discard client frames, unblock on close
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err != nil {
				return
			}
			err = conn.WriteMessage(websocket.PingMessage, nil)
			if err != nil {
				return
			}
		case notification, ok := <-ch:
			if !ok {
				return
			}
			err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err != nil {
				return
			}
			err = conn.WriteJSON(notification)
			if err != nil {
				return
			}
		}
	}
}
