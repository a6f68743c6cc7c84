package httpapi

import (
	"net/http"
	"strings"

	"github.com/louisbranch/fundraising.space/internal/funding/auth"
	apperrors "github.com/louisbranch/fundraising.space/internal/platform/errors"
)

// callerFromRequest extracts and verifies the bearer token, returning the
// account identity it names.
func (s *Server) callerFromRequest(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", apperrors.New(apperrors.CodeAccessTokenInvalid, "authorization header is required")
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", apperrors.New(apperrors.CodeAccessTokenInvalid, "authorization must use the Bearer scheme")
	}
	cfg := s.verifier
	if cfg.Now == nil {
		cfg.Now = s.now
	}
	claims, err := auth.VerifyAccessToken(token, cfg)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
