package middleware

import (
	"net/http"
	"strings"
)

// CORS возвращает middleware настройки Cross-Origin Resource Sharing.
//
// allowedOrigin приходит из конфигурации (SECURITY ALLOWED_ORIGIN):
//   - "" или "*" - разрешены все origins (локальное развертывание)
//   - иначе - список разрешенных origins через запятую
//
// Credentials разрешаются только для конкретных origins, не для "*".
// Preflight запросы (OPTIONS) обрабатываются здесь же и кешируются
// браузером на 24 часа.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	allowAll := allowedOrigin == "" || allowedOrigin == "*"

	allowed := make(map[string]bool)
	if !allowAll {
		for _, origin := range strings.Split(allowedOrigin, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowed[origin] = true
			}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case allowAll:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case allowed[origin]:
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Vary", "Origin")
			}
			// Неразрешенный origin не получает заголовков, браузер заблокирует ответ

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-User-ID, X-Requested-With")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
