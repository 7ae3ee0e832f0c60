package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingUserID    = errors.New("missing user_id in claims")
	ErrInvalidRole      = errors.New("invalid role in claims")
	ErrMissingVendorID  = errors.New("vendor token without vendor_id")
	ErrTokenRevoked     = errors.New("token has been revoked")
)

// Claims are the marketplace actor claims
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	VendorID string `json:"vendor_id,omitempty"`
}

// Token is a signed access token
type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"` // Bearer
}

// JWTService issues and validates actor tokens
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
	now        func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	expiration := cfg.AccessTokenExpiration
	if expiration <= 0 {
		expiration = time.Hour
	}
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: expiration,
		issuer:     cfg.Issuer,
		now:        time.Now,
	}
}

// Issue signs a token for the actor
func (s *JWTService) Issue(actor shared.Actor) (*Token, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   actor.UserID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: actor.UserID.String(),
		Role:   string(actor.Role),
	}
	if actor.Role == shared.RoleVendor {
		claims.VendorID = actor.VendorID.String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &Token{
		AccessToken: signed,
		ExpiresAt:   now.Add(s.expiration),
		TokenType:   "Bearer",
	}, nil
}

// Validate parses a token and checks signature, lifetime and issuer
func (s *JWTService) Validate(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}

	return claims, nil
}

// Actor converts the claims into the actor the services expect
func (c *Claims) Actor() (shared.Actor, error) {
	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return shared.Actor{}, ErrInvalidClaims
	}

	role := shared.Role(c.Role)
	switch role {
	case shared.RoleCustomer:
		return shared.Customer(userID), nil
	case shared.RoleAdmin:
		return shared.Admin(userID), nil
	case shared.RoleVendor:
		if c.VendorID == "" {
			return shared.Actor{}, ErrMissingVendorID
		}
		vendorID, err := uuid.Parse(c.VendorID)
		if err != nil {
			return shared.Actor{}, ErrInvalidClaims
		}
		return shared.VendorActor(userID, vendorID), nil
	}
	return shared.Actor{}, ErrInvalidRole
}

// Subjects lists the revocation subjects the token belongs to
func (c *Claims) Subjects() []string {
	subjects := []string{UserSubject(c.UserID)}
	if c.VendorID != "" {
		subjects = append(subjects, VendorSubject(c.VendorID))
	}
	return subjects
}

// GetIssuedAtTime returns the token's issued-at time as time.Time
func (c *Claims) GetIssuedAtTime() time.Time {
	if c.IssuedAt != nil {
		return c.IssuedAt.Time
	}
	return time.Time{}
}

// GetRemainingTTL returns the remaining time until the token expires
func (c *Claims) GetRemainingTTL(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	remaining := c.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Expiration returns the token lifetime
func (s *JWTService) Expiration() time.Duration {
	return s.expiration
}
