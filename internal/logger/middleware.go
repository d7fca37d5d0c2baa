package logger

import (
	"fmt"
	"net/http"

	"github.com/felixge/httpsnoop"
	"go.uber.org/zap"
)

// RequestLogger 是 gorilla/mux 的访问日志中间件，按状态码选择日志级别。
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("ip", r.RemoteAddr),
			zap.Int("status", m.Code),
			zap.Duration("latency", m.Duration),
			zap.Int64("bytes", m.Written),
			zap.String("user_agent", r.UserAgent()),
		}
		switch {
		case m.Code >= 500:
			log.Error("HTTP请求错误", fields...)
		case m.Code >= 400:
			log.Warn("HTTP请求警告", fields...)
		default:
			log.Info("HTTP请求成功", fields...)
		}
	})
}

// GormWriter 把 gorm 的日志输出转到 zap。
type GormWriter struct{}

// Printf 实现 gorm logger.Writer。
func (GormWriter) Printf(format string, args ...interface{}) {
	log.WithOptions(zap.AddCallerSkip(2)).Info(fmt.Sprintf(format, args...), zap.String("component", "gorm"))
}
