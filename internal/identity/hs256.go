package identity

import (
	"context"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// HS256Resolver verifies tokens signed with the provider's shared JWT
// secret. Issuer and audience checks are applied when configured.
type HS256Resolver struct {
	secret   []byte
	issuer   string
	audience string
	leeway   time.Duration
}

// NewHS256Resolver builds a resolver for the given shared secret.
// issuer/audience may be empty to skip those claim checks.
func NewHS256Resolver(secret, issuer, audience string) (*HS256Resolver, error) {
	if secret == "" {
		return nil, fmt.Errorf("identity: empty HS256 secret")
	}
	return &HS256Resolver{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		leeway:   30 * time.Second,
	}, nil
}

func (r *HS256Resolver) Resolve(ctx context.Context, token string) (*Identity, error) {
	keyfunc := func(t *jwtv5.Token) (any, error) { return r.secret, nil }

	opts := []jwtv5.ParserOption{
		jwtv5.WithValidMethods([]string{"HS256"}),
		jwtv5.WithLeeway(r.leeway),
		jwtv5.WithExpirationRequired(),
	}
	if r.issuer != "" {
		opts = append(opts, jwtv5.WithIssuer(r.issuer))
	}
	if r.audience != "" {
		opts = append(opts, jwtv5.WithAudience(r.audience))
	}

	tok, err := jwtv5.Parse(token, keyfunc, opts...)
	if err != nil || !tok.Valid {
		return nil, ErrUnauthenticated
	}

	claims, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, ErrUnauthenticated
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrUnauthenticated
	}
	email, _ := claims["email"].(string)

	return &Identity{ID: sub, Email: email}, nil
}
