package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/arcadia-tracker/arcadia/internal/platform/httpx"
	"github.com/arcadia-tracker/arcadia/internal/shared"
)

// Middleware resolves the bearer token into a request actor.
type Middleware struct {
	Tokens *TokenIssuer
	Logger *slog.Logger
}

// RequireActor rejects requests without a valid bearer token and stores the
// actor in the request context otherwise.
func (m Middleware) RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			httpx.RespondError(w, shared.ErrMissingActor)
			return
		}
		actor, err := m.Tokens.Parse(raw)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Debug("rejected bearer token", slog.String("path", r.URL.Path))
			}
			httpx.RespondError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithActor(r.Context(), actor)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
