package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/brokerdesk/lead-portal/internal/api/dto"
	"github.com/brokerdesk/lead-portal/internal/api/middleware"
	"github.com/brokerdesk/lead-portal/internal/auth"
	"github.com/brokerdesk/lead-portal/internal/database/models"
	"github.com/brokerdesk/lead-portal/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type UserHandler struct {
	users  store.UserStore
	logger *slog.Logger
}

func NewUserHandler(users store.UserStore, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// List handles GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.logger.Error("listing users", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch users"})
		return
	}

	resp := make([]dto.UserDTO, len(users))
	for i := range users {
		resp[i] = dto.UserToDTO(&users[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
			return
		}
		h.logger.Error("fetching user", "error", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch user"})
		return
	}

	writeJSON(w, http.StatusOK, dto.UserToDTO(user))
}

// Create handles POST /api/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Email, password, and role are required", Details: errs})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("hashing password", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create user"})
		return
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Active:       true,
	}

	if err := h.users.Create(r.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: "User with this email already exists"})
			return
		}
		h.logger.Error("creating user", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create user"})
		return
	}

	writeJSON(w, http.StatusCreated, dto.UserToDTO(&user))
}

// Update handles PUT /api/users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	// Unknown keys are rejected rather than dropped, matching lead updates.
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req dto.UpdateUserRequest
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	updates := make(map[string]interface{})
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			h.logger.Error("hashing password", "error", err)
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update user"})
			return
		}
		updates["password_hash"] = hash
	}

	user, err := h.users.Update(r.Context(), id, updates)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
		case errors.Is(err, store.ErrDuplicateEmail):
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: "User with this email already exists"})
		default:
			h.logger.Error("updating user", "error", err, "id", id)
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update user"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.UserToDTO(user))
}

// Delete handles DELETE /api/users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	if id == middleware.GetUserID(r.Context()) {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Cannot delete your own account"})
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
			return
		}
		h.logger.Error("deleting user", "error", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete user"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "User deleted successfully"})
}
