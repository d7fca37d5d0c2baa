package apiserver

import (
	"net/http"
	"strconv"
	"strings"

	"ironmind/internal/services"
)

// UserHandler 处理用户资料相关的请求。
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler 创建一个新的 UserHandler 实例。
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ThemeRequest 是 PATCH /users/me/theme 的请求体。
type ThemeRequest struct {
	Theme string `json:"theme"`
}

// GetMyProfileHandler 返回当前用户的资料。
func (h *UserHandler) GetMyProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	user, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to load profile")
		return
	}
	writeJSONResponse(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateMyProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var update services.ProfileUpdate
	if !decodeJSON(w, r, &update) {
		return
	}
	user, err := h.userService.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		writeServiceError(w, r, err, "Failed to update profile")
		return
	}
	writeJSONResponse(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateThemeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var req ThemeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.userService.UpdateTheme(r.Context(), userID, req.Theme); err != nil {
		writeServiceError(w, r, err, "Failed to update theme")
		return
	}
	writeJSONResponse(w, http.StatusOK, ThemeRequest{Theme: strings.ToLower(strings.TrimSpace(req.Theme))})
}

// SearchUsersHandler 处理 GET /users/search?q=&limit=。
func (h *UserHandler) SearchUsersHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSONError(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	users, err := h.userService.SearchUsers(r.Context(), userID, r.URL.Query().Get("q"), limit)
	if err != nil {
		writeServiceError(w, r, err, "Failed to search users")
		return
	}
	writeJSONResponse(w, http.StatusOK, users)
}
