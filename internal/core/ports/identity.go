package ports

import "github.com/openhire/recruitment-api/internal/core/domain"

// Identity is the authenticated actor derived from a verified access token.
// It is reconstructed per request and never persisted as a session.
type Identity struct {
	ID   string
	Role string
}

// Privileged reports whether the identity may act on resources it does not own.
func (i Identity) Privileged() bool {
	return domain.Privileged(i.Role)
}
