// Package identity resolves bearer tokens into verified identities.
//
// Token issuance lives entirely in the external auth provider; this
// package only verifies. Two verifier modes mirror what the provider
// offers: a shared-secret HS256 mode and an OIDC discovery/JWKS mode.
package identity

import (
	"context"
	"errors"
)

// ErrUnauthenticated covers every token failure: missing, malformed,
// bad signature, expired, wrong issuer/audience. Callers map it to 401.
var ErrUnauthenticated = errors.New("identity: unauthenticated")

// Identity is the verified principal attached to a request. Opaque to
// this system beyond the id and contact fields.
type Identity struct {
	ID    string
	Email string
}

// Resolver turns a raw bearer token into a verified identity.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}

// StaticResolver maps fixed tokens to identities. Test and local-dev use
// only.
type StaticResolver struct {
	Tokens map[string]Identity
}

func (s *StaticResolver) Resolve(ctx context.Context, token string) (*Identity, error) {
	if id, ok := s.Tokens[token]; ok {
		cp := id
		return &cp, nil
	}
	return nil, ErrUnauthenticated
}
