// Package auth implements the session based login: the OAuth handshake with the identity
// provider, the local user lookup and the per-request authentication context.
package auth

import (
	"context"
	"errors"
)

var (
	// ErrProvider wraps every failure reported by, or while talking to, the identity provider.
	ErrProvider = errors.New("identity provider error")
	// ErrStateMismatch is returned when the callback state does not belong to the session.
	ErrStateMismatch = errors.New("oauth state mismatch")
)

// Profile is what the identity provider tells us about a user.
type Profile struct {
	ID          string
	DisplayName string
	Emails      []string
}

// PrimaryEmail -> email pertama dari profil, kosong jika tidak ada
func (p Profile) PrimaryEmail() string {
	if len(p.Emails) == 0 {
		return ""
	}
	return p.Emails[0]
}

type Provider interface {
	// AuthCodeURL is where the browser is sent to sign in.
	AuthCodeURL(state string) string
	// Exchange trades the callback code for the user's profile.
	Exchange(ctx context.Context, code string) (Profile, error)
}
