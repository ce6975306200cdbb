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

// CategoryHandler handles HTTP requests for category endpoints.
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler with the provided service dependency.
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// Categories handles GET requests to retrieve categories, optionally
// filtered by the type query parameter.
//
// Endpoint: GET /api/category
// Response: 200 OK with array of Category
// Error: 500 Internal Server Error if retrieval fails
func (h *CategoryHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.GetCategories(r.URL.Query().Get("type"))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveCategories.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, categories)
}

// CreateCategory handles POST requests to create a new category.
//
// Endpoint: POST /api/category
// Request Body: CreateCategoryRequest (type, name)
// Response: 201 Created with Category
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if the type/name pair already exists
// Error: 500 Internal Server Error if creation fails
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateCategoryRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateCategory(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEntry) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateEntry.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveCategory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, category)
}

// UpdateCategory handles PUT requests to update an existing category.
//
// Endpoint: PUT /api/category/{uuid}
// Request Body: UpdateCategoryRequest (all fields optional)
// Response: 200 OK with updated Category
// Error: 400 Bad Request if category ID is invalid (validated by middleware)
// Error: 404 Not Found if category not found
// Error: 500 Internal Server Error if update fails
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateCategoryRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	category, err := h.categoryService.UpdateCategory(r.Context(), categoryID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrCategoryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCategoryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveCategory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, category)
}

// DeleteCategory handles DELETE requests to remove a category.
//
// Endpoint: DELETE /api/category/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if category ID is invalid (validated by middleware)
// Error: 404 Not Found if category not found
// Error: 500 Internal Server Error if deletion fails
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "uuid")

	if err := h.categoryService.DeleteCategory(r.Context(), categoryID); err != nil {
		if errors.Is(err, apperrors.ErrCategoryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCategoryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDeleteCategory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
