package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ledgerline/taskboard-api/internal/api/shared"
	"github.com/ledgerline/taskboard-api/internal/domain"
	"github.com/ledgerline/taskboard-api/internal/service"
)

// UserResponse is the response shape for a directory entry.
type UserResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// UserListResponse is the response shape for the directory listing.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Count int            `json:"count"`
}

// UserHandler handles user-directory HTTP requests.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// ListUsers handles GET /api/users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	response := UserListResponse{Users: make([]UserResponse, 0, len(users)), Count: len(users)}
	for _, user := range users {
		response.Users = append(response.Users, userToResponse(user))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// ActivateUser handles PUT /api/users/{userID}/activate.
func (h *UserHandler) ActivateUser(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, domain.UserStatusActive)
}

// DeactivateUser handles PUT /api/users/{userID}/deactivate.
func (h *UserHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, domain.UserStatusInactive)
}

func (h *UserHandler) setStatus(w http.ResponseWriter, r *http.Request, status domain.UserStatus) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID <= 0 {
		respondError(w, r, domain.NewValidationError(map[string]string{
			"user_id": "user ID must be a positive integer",
		}))
		return
	}

	user, err := h.users.SetUserStatus(r.Context(), userID, status)
	if err != nil {
		respondError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Status: string(user.Status),
	}
}
