package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeremiapane/table-reservation/models"
	"github.com/yeremiapane/table-reservation/store"
	"github.com/yeremiapane/table-reservation/utils"
)

// Result is the outcome of matching a provider profile to a local user.
type Result struct {
	User *models.User
	Err  error
}

func (r Result) OK() bool {
	return r.Err == nil && r.User != nil
}

// Verifier finds the local user for a provider identity, creating it on first login.
type Verifier struct {
	users store.Collection[models.User]
}

func NewVerifier(users store.Collection[models.User]) *Verifier {
	return &Verifier{users: users}
}

func (v *Verifier) Verify(ctx context.Context, p Profile) Result {
	if p.ID == "" {
		return Result{Err: fmt.Errorf("%w: profile without id", ErrProvider)}
	}

	user, err := v.users.FindOne(ctx, store.Eq("googleId", p.ID))
	if err == nil {
		return Result{User: user}
	}
	if !errors.Is(err, store.ErrNotFound) {
		return Result{Err: err}
	}

	created := &models.User{
		GoogleID: p.ID,
		Name:     utils.SanitizeString(p.DisplayName),
		Email:    p.PrimaryEmail(),
	}
	if err := v.users.Insert(ctx, created); err != nil {
		// login pertama yang bersamaan untuk akun yang sama
		var dup *store.DuplicateKeyError
		if errors.As(err, &dup) {
			if existing, findErr := v.users.FindOne(ctx, store.Eq("googleId", p.ID)); findErr == nil {
				return Result{User: existing}
			}
		}
		return Result{Err: err}
	}

	utils.InfoLogger.Infof("New user registered from provider profile: %s", created.ID)
	return Result{User: created}
}
