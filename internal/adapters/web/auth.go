package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type authClaimsKey struct{}

// AuthClaims holds the authenticated coordinator's identity extracted from the JWT.
type AuthClaims struct {
	CoordinatorID string
	Email         string
}

// authFromContext returns the auth claims stored in ctx, or nil.
func authFromContext(ctx context.Context) *AuthClaims {
	v, _ := ctx.Value(authClaimsKey{}).(*AuthClaims)
	return v
}

// jwtClaims is the JWT payload struct used for signing and parsing.
type jwtClaims struct {
	CoordinatorID string `json:"coordinator_id"`
	Email         string `json:"email"`
	jwt.RegisteredClaims
}

const sessionCookie = "portal_session"

// RequireAuth is chi middleware that validates the session cookie and injects
// AuthClaims into the request context. Returns 401 if the token is absent or invalid.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			writeError(w, r, "authentication required", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(h.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			writeError(w, r, "invalid or expired session", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsKey{}, &AuthClaims{
			CoordinatorID: claims.CoordinatorID,
			Email:         claims.Email,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestMagicLink handles POST /api/auth/magic-link. The response is
// identical whether or not the email matches a coordinator, so the endpoint
// cannot be used to probe which addresses are registered.
func (h *Handler) requestMagicLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		writeError(w, r, "email is required", "INVALID_REQUEST", http.StatusBadRequest)
		return
	}

	if err := h.svc.RequestMagicLink(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	type response struct {
		Message string `json:"message"`
	}
	writeJSON(w, response{Message: "si el correo existe, recibiras un enlace de acceso"})
}

// consumeMagicLink handles GET /auth/consume?token=... — redeems the
// one-time token, sets the session cookie, and redirects into the portal.
func (h *Handler) consumeMagicLink(w http.ResponseWriter, r *http.Request) {
	tok := r.URL.Query().Get("token")
	if tok == "" {
		writeError(w, r, "token is required", "INVALID_REQUEST", http.StatusBadRequest)
		return
	}

	coord, err := h.svc.ConsumeMagicLink(r.Context(), tok)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	claims := &jwtClaims{
		CoordinatorID: coord.ID,
		Email:         coord.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		writeError(w, r, "token generation failed", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   12 * 3600,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// logout handles POST /api/auth/logout — clears the session cookie.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	w.WriteHeader(http.StatusNoContent)
}

// me handles GET /api/auth/me — returns the authenticated coordinator.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	if claims == nil {
		writeError(w, r, "not authenticated", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}

	coord, err := h.svc.Me(r.Context(), claims.CoordinatorID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	type meResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	writeJSON(w, meResponse{ID: coord.ID, Name: coord.Name, Email: coord.Email})
}
