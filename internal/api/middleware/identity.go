package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/redact"
)

// Identity resolves an optional caller identity from a bearer token. Every
// endpoint is open; the token only attributes created tasks to a principal.
// A missing, malformed, or expired token therefore never rejects the
// request, it just leaves it anonymous.
type Identity struct {
	secret []byte
}

// NewIdentity creates the middleware. An empty secret disables token
// parsing entirely and all requests stay anonymous.
func NewIdentity(secret string) *Identity {
	return &Identity{secret: []byte(secret)}
}

// Resolve parses the Authorization header, if present, and stores the
// principal ID in the request context.
func (m *Identity) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(m.secret) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromContextOrDefault(r.Context(), nil)

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			log.Debug("ignoring non-bearer authorization header")
			next.ServeHTTP(w, r)
			return
		}

		principalID, err := m.parseSubject(parts[1])
		if err != nil {
			log.Debug("ignoring unusable bearer token", "error", redact.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		ctx := shared.SetPrincipalID(r.Context(), principalID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// parseSubject validates the token signature and lifetime, then reads the
// principal ID from the subject claim.
func (m *Identity) parseSubject(token string) (int64, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return 0, err
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(subject, 10, 64)
}

// PrincipalID extracts the caller's principal ID from the request, or nil
// for anonymous requests. The pointer form feeds directly into task
// attribution.
func PrincipalID(r *http.Request) *int64 {
	id, ok := shared.GetPrincipalID(r.Context())
	if !ok {
		return nil
	}
	return &id
}
