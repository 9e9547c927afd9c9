package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/group-vault/internal/logger"
	"github.com/MKhiriev/group-vault/internal/utils"
	"github.com/MKhiriev/group-vault/models"
)

// requireAdmin lets a request through only with a valid admin token.
// Missing or invalid tokens get 401, tokens without the admin scope 403.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := h.authenticate(r)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withSubject(r.Context(), token)))
	})
}

// optionalAuth lets anonymous requests through. A request that does carry
// a token is held to the same checks as requireAdmin, so clients can use
// any read to verify a credential.
func (h *Handler) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}
		h.requireAdmin(next).ServeHTTP(w, r)
	})
}

func (h *Handler) authenticate(r *http.Request) (models.Token, error) {
	log := logger.FromRequest(r)

	header := r.Header.Get("Authorization")
	if header == "" {
		return models.Token{}, ErrEmptyAuthorizationHeader
	}

	raw, err := utils.ParseBearerToken(header)
	if err != nil {
		return models.Token{}, ErrInvalidAuthorizationHeader
	}

	token, err := utils.ValidateAndParseJWTToken(raw, h.app.TokenSignKey, h.app.TokenIssuer)
	if err != nil {
		log.Debug().Err(err).
			Str("func", "*Handler.authenticate").
			Msg("token rejected")
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.IsAdmin() {
		return models.Token{}, ErrNotAdmin
	}
	return token, nil
}

func withSubject(ctx context.Context, token models.Token) context.Context {
	return context.WithValue(ctx, utils.SubjectCtxKey, token.Subject)
}
