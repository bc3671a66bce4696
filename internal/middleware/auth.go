package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	adminKey  contextKey = "is_admin"
)

const authCookieName = "auth_token"

type authClaims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
	Admin  bool  `json:"admin"`
}

// SetLoginCookie подписывает JWT и ставит auth cookie.
func SetLoginCookie(w http.ResponseWriter, userID int64, admin bool, secret string) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
		UserID: userID,
		Admin:  admin,
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
	})
	return nil
}

// WithAuth извлекает пользователя из auth cookie. Анонимные и невалидные
// запросы пропускаются дальше без user_id — авторизацию решает хендлер.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(authCookieName)
			if err == nil && c.Value != "" {
				var cl authClaims
				token, err := jwt.ParseWithClaims(c.Value, &cl, func(t *jwt.Token) (interface{}, error) {
					return []byte(secret), nil
				})
				if err == nil && token.Valid {
					ctx := context.WithValue(r.Context(), userIDKey, cl.UserID)
					ctx = context.WithValue(ctx, adminKey, cl.Admin)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserIDFromContext возвращает id авторизованного пользователя.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// IsAdminFromContext сообщает, является ли пользователь администратором.
func IsAdminFromContext(ctx context.Context) bool {
	admin, ok := ctx.Value(adminKey).(bool)
	return ok && admin
}
