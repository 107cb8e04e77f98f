// Package sessions keeps per-browser login state behind an explicit Store, keyed by the id
// carried in an HTTP-only cookie.
package sessions

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Store.Get for unknown or expired ids.
var ErrNotFound = errors.New("session not found")

// Session is the server side state of one browser.
type Session struct {
	UserID     string `json:"userId,omitempty"`
	ReturnTo   string `json:"returnTo,omitempty"`
	OAuthState string `json:"oauthState,omitempty"`
}

// Authenticated reports whether a user is associated with the session.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != ""
}

type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, id string, s *Session, ttl time.Duration) error
	Destroy(ctx context.Context, id string) error
}
