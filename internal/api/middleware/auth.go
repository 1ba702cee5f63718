package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
)

// HeaderUserID заголовок с ID пользователя, проставляется API gateway
const HeaderUserID = "X-User-ID"

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidUserID = "некорректный ID пользователя"
)

type userIDKey struct{}

// Auth требует заголовок X-User-ID с UUID и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID кладет ID пользователя в контекст
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserID достает ID пользователя из контекста
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return userID, ok
}
