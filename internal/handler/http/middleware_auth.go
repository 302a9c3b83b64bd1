package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-attendance-sync/internal/app"
	"github.com/MKhiriev/go-attendance-sync/internal/logger"
	"github.com/MKhiriev/go-attendance-sync/internal/utils"
)

// auth is an HTTP middleware that enforces admin JWT authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// against the configured key and issuer and, on success, stores the operator
// (the token subject) in the request context under [utils.OperatorCtxKey].
//
// Requests without a header, with a malformed header, or with an invalid or
// expired token are rejected with HTTP 401 Unauthorized.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		token, err := utils.ValidateAndParseJWTToken(tokenString, h.adminTokenKey, h.adminTokenIssuer)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing admin token")
			http.Error(w, app.MsgUnauthorized, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), utils.OperatorCtxKey, token.Operator)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
