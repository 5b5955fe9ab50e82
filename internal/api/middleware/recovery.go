package middleware

import (
	"net/http"
	"runtime/debug"

	"edgebook/pkg/utils"

	"go.uber.org/zap"
)

// Recovery возвращает middleware восстановления после паники в handlers.
//
// Перехватывает panic, логирует сообщение со stack trace и возвращает
// клиенту 500 без деталей. Сервер продолжает обслуживать запросы.
func Recovery(logger *utils.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						zap.Any("error", err),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.ByteString("stack", debug.Stack()),
					)

					// Детали паники клиенту не раскрываются
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
