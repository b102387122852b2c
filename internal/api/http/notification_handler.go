package http

import (
	"encoding/json"
	"net/http"

	"rentwheels-backend/internal/apperr"
	"rentwheels-backend/internal/service"
)

type NotificationHandler struct {
	noteSvc service.NotificationService
}

func NewNotificationHandler(noteSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{noteSvc: noteSvc}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	unreadOnly := r.URL.Query().Get("unread_only") == "true"

	notifications, total, unread, err := h.noteSvc.List(r.Context(), callerID(r), unreadOnly, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "", map[string]any{
		"items":        notifications,
		"total":        total,
		"unread_count": unread,
		"page":         page,
		"page_size":    pageSize,
	})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.noteSvc.MarkAsRead(r.Context(), callerID(r), id); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.noteSvc.MarkAllAsRead(r.Context(), callerID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "all notifications marked as read", map[string]any{"updated": n})
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.noteSvc.Delete(r.Context(), callerID(r), id); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "notification deleted", nil)
}

func (h *NotificationHandler) ClearRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.noteSvc.ClearRead(r.Context(), callerID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "read notifications cleared", map[string]any{"deleted": n})
}

func (h *NotificationHandler) RegisterPushToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validation("invalid request body"))
		return
	}
	if err := h.noteSvc.RegisterPushToken(r.Context(), callerID(r), req.Token); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "push token registered", nil)
}

func (h *NotificationHandler) RemovePushToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validation("invalid request body"))
		return
	}
	if err := h.noteSvc.RemovePushToken(r.Context(), callerID(r), req.Token); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "push token removed", nil)
}
