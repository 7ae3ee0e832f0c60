package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// Authenticator turns a bearer token into an actor, honouring revocations
type Authenticator struct {
	tokens    *JWTService
	blacklist TokenBlacklist
}

// NewAuthenticator creates an authenticator; blacklist may be nil
func NewAuthenticator(tokens *JWTService, blacklist TokenBlacklist) *Authenticator {
	return &Authenticator{tokens: tokens, blacklist: blacklist}
}

// Authenticate validates the token and resolves its actor
func (a *Authenticator) Authenticate(ctx context.Context, tokenString string) (shared.Actor, *Claims, error) {
	claims, err := a.tokens.Validate(strings.TrimSpace(tokenString))
	if err != nil {
		return shared.Actor{}, nil, err
	}

	if a.blacklist != nil {
		if err := a.checkRevoked(ctx, claims); err != nil {
			return shared.Actor{}, nil, err
		}
	}

	actor, err := claims.Actor()
	if err != nil {
		return shared.Actor{}, nil, err
	}
	return actor, claims, nil
}

func (a *Authenticator) checkRevoked(ctx context.Context, claims *Claims) error {
	if claims.ID != "" {
		revoked, err := a.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			return fmt.Errorf("check token revocation: %w", err)
		}
		if revoked {
			return ErrTokenRevoked
		}
	}

	issuedAt := claims.GetIssuedAtTime()
	for _, subject := range claims.Subjects() {
		revoked, err := a.blacklist.IsSubjectRevoked(ctx, subject, issuedAt)
		if err != nil {
			return fmt.Errorf("check token revocation: %w", err)
		}
		if revoked {
			return ErrTokenRevoked
		}
	}
	return nil
}

// Revoke blacklists a single token for the rest of its lifetime
func (a *Authenticator) Revoke(ctx context.Context, claims *Claims) error {
	if a.blacklist == nil {
		return nil
	}
	ttl := claims.GetRemainingTTL(a.tokens.now())
	if ttl == 0 || claims.ID == "" {
		return nil
	}
	return a.blacklist.AddToBlacklist(ctx, claims.ID, ttl)
}

// Tokens exposes the underlying token service
func (a *Authenticator) Tokens() *JWTService {
	return a.tokens
}
