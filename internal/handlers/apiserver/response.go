package apiserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"ironmind/internal/logger"
	"ironmind/internal/middleware"
	"ironmind/internal/services"
	"ironmind/internal/storage"
)

// ErrorResponse 是 API 错误响应的通用结构体。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse 用于只返回一条提示的成功响应。
type MessageResponse struct {
	Message string `json:"message"`
}

// writeJSONResponse 是一个辅助函数，用于发送 JSON 响应。
func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// 头部已经发出，只能记录
		logger.Error("无法编码 JSON 响应", zap.Error(err))
	}
}

// writeJSONError 是一个辅助函数，用于发送 JSON 格式的错误响应。
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSONResponse(w, statusCode, ErrorResponse{Error: message})
}

// writeServiceError 按错误类别映射状态码。未分类的错误记录日志并返回通用消息。
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrRequestBlocked):
		writeJSONError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, services.ErrInvalidInput):
		writeJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrNotFound):
		writeJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrConflict):
		writeJSONError(w, err.Error(), http.StatusConflict)
	default:
		logger.Error(fallback,
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeJSONError(w, fallback, http.StatusInternalServerError)
	}
}

// decodeJSON 解码请求体，失败时写入 400 并返回 false。
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// currentUserID 读取认证中间件写入的用户 ID，缺失时写入 401。
func currentUserID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

// pathID 解析路由变量中的正整数 ID。
func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	id, err := storage.ParseID(mux.Vars(r)[name])
	if err != nil {
		writeJSONError(w, "Invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
