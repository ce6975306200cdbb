package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/request"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/response"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/apperrors"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/service"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/validation"
)

// ProfileHandler handles HTTP requests for profile endpoints.
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler with the provided service dependency.
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// CreateProfile handles POST requests to create a profile for an external
// identity.
//
// Endpoint: POST /api/profile
// Request Body: CreateProfileRequest (userId, email, role, name, ...)
// Response: 201 Created with Profile
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if a profile already exists for the user or email
// Error: 500 Internal Server Error if creation fails
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateProfileRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateProfile(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	profile, err := h.profileService.CreateProfile(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateProfile) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateProfile.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCreateProfile.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, profile)
}

// GetProfile handles GET requests to retrieve a profile by its ID.
//
// Endpoint: GET /api/profile/{uuid}
// Response: 200 OK with Profile
// Error: 400 Bad Request if profile ID is invalid (validated by middleware)
// Error: 404 Not Found if profile not found
// Error: 500 Internal Server Error if retrieval fails
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "uuid")

	profile, err := h.profileService.GetProfile(profileID)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrProfileNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveProfile.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, profile)
}

// GetProfileByUser handles GET requests to retrieve a profile by the
// external identity string.
//
// Endpoint: GET /api/profile/user/{userId}
// Response: 200 OK with Profile
// Error: 404 Not Found if no profile exists for the user
// Error: 500 Internal Server Error if retrieval fails
func (h *ProfileHandler) GetProfileByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	profile, err := h.profileService.GetProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrProfileNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveProfile.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT requests to update an existing profile.
//
// Endpoint: PUT /api/profile/{uuid}
// Request Body: UpdateProfileRequest (all fields optional)
// Response: 200 OK with updated Profile
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if profile not found
// Error: 500 Internal Server Error if update fails
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateProfileRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateProfile(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	profile, err := h.profileService.UpdateProfile(r.Context(), profileID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrProfileNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdateProfile.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, profile)
}
