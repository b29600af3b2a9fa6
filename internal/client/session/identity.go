package session

import (
	"context"
	"time"

	"github.com/dmitrijs2005/cvboard/internal/common"
)

// Identity is who the client calls the store as. Token is presented as a
// bearer token; it is empty for the anonymous identity.
type Identity struct {
	Principal string
	Token     string
	ExpiresAt time.Time
}

func Anonymous() Identity {
	return Identity{Principal: common.AnonymousPrincipal}
}

func (i Identity) IsAnonymous() bool {
	return i.Token == ""
}

type IdentityProvider interface {
	// IsAuthenticated reports whether an unexpired identity is at hand.
	IsAuthenticated(ctx context.Context) (bool, error)
	// Login runs the redirect-based login and blocks until it completes.
	// A denied or abandoned login fails with common.ErrLoginAbandoned.
	Login(ctx context.Context) (Identity, error)
	// GetIdentity returns the current identity, or common.ErrNoSession.
	GetIdentity(ctx context.Context) (Identity, error)
	Logout(ctx context.Context) error
}
