package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/auth"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/logger"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Gin context keys set by JWTAuth
const (
	ActorKey      = "actor"
	JWTClaimsKey  = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTAuthConfig holds configuration for the JWT middleware
type JWTAuthConfig struct {
	Authenticator *auth.Authenticator
	// SkipPaths are exact paths served without a token
	SkipPaths []string
	Logger    *zap.Logger
}

// DefaultJWTAuthConfig returns a config that leaves the ops endpoints open
func DefaultJWTAuthConfig(authenticator *auth.Authenticator) JWTAuthConfig {
	return JWTAuthConfig{
		Authenticator: authenticator,
		SkipPaths:     []string{"/health", "/metrics"},
	}
}

// JWTAuth resolves the bearer token into a shared.Actor and stores it in
// the gin context and the request context
func JWTAuth(cfg JWTAuthConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Invalid authorization header format")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
		if token == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing token")
			return
		}

		actor, claims, err := cfg.Authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			handleAuthError(c, log, err)
			return
		}

		c.Set(ActorKey, actor)
		c.Set(JWTClaimsKey, claims)

		ctx, reqLogger := logger.WithActor(c.Request.Context(), logger.FromContext(c.Request.Context()), actorFields(actor))
		c.Request = c.Request.WithContext(ctx)
		if _, ok := c.Get(logger.GinLoggerKey); ok {
			c.Set(logger.GinLoggerKey, reqLogger)
		}

		c.Next()
	}
}

func handleAuthError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		abortUnauthorized(c, dto.ErrCodeTokenExpired, "Token has expired")
	case errors.Is(err, auth.ErrTokenRevoked):
		abortUnauthorized(c, dto.ErrCodeTokenRevoked, "Token has been revoked")
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidClaims),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingUserID),
		errors.Is(err, auth.ErrInvalidRole),
		errors.Is(err, auth.ErrMissingVendorID):
		abortUnauthorized(c, dto.ErrCodeUnauthorized, "Invalid token")
	default:
		log.Error("Authentication failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "Unable to verify credentials", GetRequestID(c)))
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

func actorFields(actor shared.Actor) logger.ActorFields {
	fields := logger.ActorFields{Role: string(actor.Role), UserID: actor.UserID.String()}
	if actor.Role == shared.RoleVendor {
		fields.VendorID = actor.VendorID.String()
	}
	return fields
}

// ActorFromContext returns the actor stored by JWTAuth
func ActorFromContext(c *gin.Context) (shared.Actor, bool) {
	v, ok := c.Get(ActorKey)
	if !ok {
		return shared.Actor{}, false
	}
	actor, ok := v.(shared.Actor)
	return actor, ok
}

// ClaimsFromContext returns the validated token claims stored by JWTAuth
func ClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(JWTClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok && claims != nil
}

// RequireRole aborts with PERMISSION_DENIED unless the actor has one of roles
func RequireRole(roles ...shared.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if err := actor.RequireRole(c.FullPath(), roles...); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodePermissionDenied, "Not allowed to perform this action", GetRequestID(c)))
			return
		}
		c.Next()
	}
}
