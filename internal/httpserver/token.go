// internal/httpserver/token.go
//
// Session tokens.
// A token is an HS256 JWT whose "sid" claim names a solver session in the
// store. Clients send it as "Authorization: Bearer <token>" or through the
// solver_session cookie set by the reset endpoints.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const cookieName = "solver_session"

var (
	errNoToken      = errors.New("missing token")
	errInvalidToken = errors.New("invalid token")
)

type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// tokens signs and verifies session tokens and manages the cookie.
type tokens struct {
	secret []byte
	ttl    time.Duration
	secure bool // Secure + SameSite=None cookies
}

// sign creates a token for session sid.
func (t tokens) sign(sid string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(t.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	ss, err := tok.SignedString(t.secret)
	return ss, exp, err
}

// sessionID returns the sid of the request's token.
func (t tokens) sessionID(r *http.Request) (string, error) {
	raw := bearerOrCookie(r)
	if raw == "" {
		return "", errNoToken
	}
	var claims sessionClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid || claims.SID == "" {
		return "", errInvalidToken
	}
	return claims.SID, nil
}

// setCookie writes the session cookie.
func (t tokens) setCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: t.sameSite(),
		Expires:  exp,
	})
}

// clearCookie deletes the session cookie.
func (t tokens) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: t.sameSite(),
		MaxAge:   -1,
	})
}

func (t tokens) sameSite() http.SameSite {
	if t.secure {
		return http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	return http.SameSiteLaxMode
}

// bearerOrCookie extracts a token from the Authorization header or the session cookie.
func bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}
