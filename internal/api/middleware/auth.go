package middleware

import (
	"net/http"
	"strings"

	"edgebook/pkg/crypto"
)

// TokenAuth возвращает middleware защиты служебных endpoints
// (например /metrics) по API токену.
//
// tokenHash - bcrypt хеш токена из конфигурации (API_TOKEN_HASH).
// Пустой хеш отключает проверку: служебные endpoints остаются
// открытыми при локальном развертывании.
//
// Токен передается в заголовке Authorization: Bearer <token>.
// Сравнение идет через bcrypt, сам токен на сервере не хранится.
func TokenAuth(tokenHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenHash == "" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="service endpoints"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if err := crypto.CheckToken(token, tokenHash); err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="service endpoints"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
