package apiserver

import (
	"errors"
	"net/http"

	"ironmind/internal/middleware"
	"ironmind/internal/services"
)

// AuthHandler 封装了认证相关的 HTTP 处理器方法。
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler 创建一个新的 AuthHandler 实例。
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest 是用户登录请求的结构体。
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup 处理 POST /auth/signup。
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req services.SignupInput
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "Signup failed")
		return
	}
	writeJSONResponse(w, http.StatusCreated, res)
}

// Login 处理 POST /auth/login。
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeJSONError(w, err.Error(), http.StatusUnauthorized)
			return
		}
		writeServiceError(w, r, err, "Login failed")
		return
	}
	writeJSONResponse(w, http.StatusOK, res)
}

// EmailExists 处理 GET /auth/email-exists?email=。
func (h *AuthHandler) EmailExists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.authService.EmailExists(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeServiceError(w, r, err, "Email check failed")
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]bool{"exists": exists})
}

// Logout 将当前 Token 加入黑名单。
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		writeJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err := h.authService.Logout(r.Context(), claims); err != nil {
		writeServiceError(w, r, err, "Logout failed")
		return
	}
	writeJSONResponse(w, http.StatusOK, MessageResponse{Message: "Logged out"})
}
