// Package identity maps an authenticated caller's email to its account.
package identity

import (
	"context"
	"errors"

	"github.com/carrental/user-service/internal/repository"
	"github.com/carrental/user-service/shared/apperror"
	"github.com/carrental/user-service/shared/models"
)

// MsgInvalidUser is reported when an authenticated caller has no account.
const MsgInvalidUser = "Invalid user"

// Resolve returns the account owned by callerEmail. A caller without an
// account is a bad request, not a missing resource: the token and the store
// disagree.
func Resolve(ctx context.Context, store repository.AccountStore, callerEmail string) (*models.Account, error) {
	if callerEmail == "" {
		return nil, apperror.BadRequest(MsgInvalidUser)
	}
	account, err := store.FindByEmail(ctx, callerEmail)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.BadRequest(MsgInvalidUser)
	}
	if err != nil {
		return nil, apperror.Internal("Failed to resolve user", err)
	}
	return account, nil
}
