package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"worklog/internal/domain/worklog"
	"worklog/internal/infrastructure/auth"
	sharedConfig "worklog/internal/shared/config"
	"worklog/internal/shared/logger"
)

// ContextKeyUsername is the gin context key the resolved identity is
// stored under.
const ContextKeyUsername = "username"

// IdentityMiddleware resolves the caller's username. Identity is owned by
// the surrounding tracker: a bearer token it issued wins, the trusted
// proxy header is accepted when configured, and everyone else is the
// anonymous user. Requests are never rejected here; anonymity is a valid
// identity the policy layer knows how to refuse.
type IdentityMiddleware struct {
	verifier *auth.TokenVerifier
	cfg      *sharedConfig.AuthConfig
	logger   logger.Interface
}

func NewIdentityMiddleware(verifier *auth.TokenVerifier, cfg *sharedConfig.AuthConfig, logger logger.Interface) *IdentityMiddleware {
	return &IdentityMiddleware{
		verifier: verifier,
		cfg:      cfg,
		logger:   logger,
	}
}

func (m *IdentityMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyUsername, m.resolve(c))
		c.Next()
	}
}

func (m *IdentityMiddleware) resolve(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			username, err := m.verifier.Verify(parts[1])
			if err == nil {
				return username
			}
			m.logger.Warnw("failed to verify bearer token", "error", err)
		}
	}

	if m.cfg.AllowHeaderFallback && m.cfg.TrustedUserHeader != "" {
		if username := c.GetHeader(m.cfg.TrustedUserHeader); username != "" {
			return username
		}
	}

	return worklog.AnonymousUser
}

// GetUsername returns the identity resolved for the request.
func GetUsername(c *gin.Context) string {
	if username, ok := c.Get(ContextKeyUsername); ok {
		if s, ok := username.(string); ok && s != "" {
			return s
		}
	}
	return worklog.AnonymousUser
}
