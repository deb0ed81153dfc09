package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/sundayezeilo/linkstore/internal/httpx"
)

// Verifier turns a bearer token into a principal.
type Verifier interface {
	Verify(token string) (Principal, error)
}

// Middleware rejects requests without a valid bearer token and stores the
// authenticated principal in the request context.
func Middleware(v Verifier, logger *slog.Logger) httpx.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := bearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", "Bearer")
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
				return
			}

			p, err := v.Verify(token)
			if err != nil {
				logger.WarnContext(ctx, "token rejected",
					"request_id", httpx.GetRequestID(ctx),
					"error", err.Error(),
				)
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContext(ctx, p)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
