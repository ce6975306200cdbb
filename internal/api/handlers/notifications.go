package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/response"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/apperrors"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/service"
)

// NotificationHandler handles HTTP requests for in-app notification endpoints.
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler with the provided service dependency.
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// Notifications handles GET requests to retrieve a user's notifications,
// newest first. Pass unread=true to return only unread notifications.
//
// Endpoint: GET /api/notification/user/{userId}
// Response: 200 OK with array of Notification
// Error: 500 Internal Server Error if retrieval fails
func (h *NotificationHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := h.notificationService.GetNotifications(userID, unreadOnly)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveNotifications.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, notifications)
}

// MarkRead handles PUT requests to mark a single notification as read.
//
// Endpoint: PUT /api/notification/{uuid}/read
// Response: 204 No Content
// Error: 400 Bad Request if notification ID is invalid (validated by middleware)
// Error: 404 Not Found if notification not found
// Error: 500 Internal Server Error if update fails
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	notificationID := chi.URLParam(r, "uuid")

	if err := h.notificationService.MarkRead(r.Context(), notificationID); err != nil {
		if errors.Is(err, apperrors.ErrNotificationNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrNotificationNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdateNotification.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// MarkAllRead handles PUT requests to mark all of a user's notifications as
// read.
//
// Endpoint: PUT /api/notification/user/{userId}/read
// Response: 200 OK with {"updated": n}
// Error: 500 Internal Server Error if update fails
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	updated, err := h.notificationService.MarkAllRead(r.Context(), userID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdateNotification.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}
