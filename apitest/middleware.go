package apitest

import (
	"context"
	"net/http"
	"strings"
)

type requestContextKey string

type decodedJWT struct {
	Claims   *TokenClaims
	ErrorMsg string
}

func (s *Server) protectedRouteMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decoded := s.decodeAndVerifyAuthHeader(r.Header.Get("Authorization"))
		if decoded.ErrorMsg != "" {
			writeError(w, decoded.ErrorMsg, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), requestContextKey("userID"), decoded.Claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) decodeAndVerifyAuthHeader(authHeaderValue string) decodedJWT {
	authHeaderList := strings.Split(authHeaderValue, "Bearer ")
	if len(authHeaderList) < 2 {
		return decodedJWT{ErrorMsg: "no token provided"}
	}

	tokenClaims, err := DecodeJWT(authHeaderList[1], s.keyPair)
	if err != nil {
		return decodedJWT{ErrorMsg: "invalid token provided"}
	}

	// validate that the user account still exists & the token wasn't
	// invalidated by a username/password change
	s.mu.Lock()
	user, ok := s.users[tokenClaims.Subject]
	s.mu.Unlock()

	if !ok || user.TokenVersion != tokenClaims.TokenVersion {
		return decodedJWT{ErrorMsg: "invalid token provided"}
	}

	return decodedJWT{Claims: tokenClaims}
}
