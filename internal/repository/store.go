// Package repository is the storage boundary for accounts.
package repository

import (
	"context"
	"errors"

	"github.com/carrental/user-service/shared/models"
)

var (
	// ErrNotFound is returned when no account matches a lookup.
	ErrNotFound = errors.New("account not found")
	// ErrEmailTaken is returned by Save when another account already holds the email.
	ErrEmailTaken = errors.New("email already exists")
)

// AccountStore reads and writes persisted accounts. Implementations must be
// safe for concurrent use and must never return storage shared with the caller.
type AccountStore interface {
	FindByID(ctx context.Context, id int64) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindAll(ctx context.Context) ([]*models.Account, error)
	// Save inserts the account when its ID is 0, otherwise it writes the
	// account under its ID. It returns the state as stored.
	Save(ctx context.Context, account *models.Account) (*models.Account, error)
}
