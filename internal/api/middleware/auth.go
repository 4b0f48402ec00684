package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
)

// Auth читает заголовки доверенного шлюза и кладет пользователя в контекст.
// Роль system снаружи не принимается.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(r.Header.Get(HeaderUserID))
		if err != nil || userID == uuid.Nil {
			handlers.RespondUnauthorized(w, handlers.MsgMissingUser)
			return
		}

		role := domain.Role(r.Header.Get(HeaderUserRole))
		if !role.IsValid() || role == domain.RoleSystem {
			handlers.RespondUnauthorized(w, handlers.MsgMissingUser)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth как Auth, но запрос без заголовков пропускается анонимно.
// Некорректные заголовки по-прежнему отклоняются.
func OptionalAuth(next http.Handler) http.Handler {
	auth := Auth(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(HeaderUserID) == "" && r.Header.Get(HeaderUserRole) == "" {
			next.ServeHTTP(w, r)
			return
		}
		auth.ServeHTTP(w, r)
	})
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// GetUserRole извлекает роль пользователя из контекста
func GetUserRole(ctx context.Context) (domain.Role, bool) {
	role, ok := ctx.Value(userRoleKey).(domain.Role)
	return role, ok
}

// GetUser извлекает ID и роль пользователя из контекста
func GetUser(ctx context.Context) (uuid.UUID, domain.Role, bool) {
	id, ok := GetUserID(ctx)
	if !ok {
		return uuid.Nil, "", false
	}
	role, ok := GetUserRole(ctx)
	if !ok {
		return uuid.Nil, "", false
	}
	return id, role, true
}

// WithUser кладет пользователя в контекст (для тестов обработчиков)
func WithUser(ctx context.Context, id uuid.UUID, role domain.Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, id)
	return context.WithValue(ctx, userRoleKey, role)
}
