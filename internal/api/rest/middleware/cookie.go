// Package middleware provides various middleware functionality.
package middleware

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/danilovkiri/dk_go_searoute/internal/config"
	"github.com/danilovkiri/dk_go_searoute/internal/service/secretary"
)

// UserCookieKey is the name of the authentication cookie.
const UserCookieKey = "user"

// CookieHandler sets object structure.
type CookieHandler struct {
	sec secretary.Secretary
	cfg *config.Config
}

// NewCookieHandler initializes a new cookie handler.
func NewCookieHandler(sec secretary.Secretary, cfg *config.Config) (*CookieHandler, error) {
	return &CookieHandler{
		sec: sec,
		cfg: cfg,
	}, nil
}

// CookieHandle provides cookie handling functionality.
func (c *CookieHandler) CookieHandle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(UserCookieKey)
		if errors.Is(err, http.ErrNoCookie) {
			userID := uuid.New().String()
			token := c.sec.Encode(userID)
			newCookie := &http.Cookie{
				Name:  UserCookieKey,
				Value: token,
				Path:  "/",
			}
			http.SetCookie(w, newCookie)
			r.AddCookie(newCookie)
		} else {
			_, err := c.sec.Decode(cookie.Value)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
