package models

import (
	"errors"

	"github.com/carrental/user-service/internal/currency"
)

// AdminAccountID is the identifier reserved for the administrative account.
const AdminAccountID int64 = 1

// AdminEmail is the fixed email of the administrative account.
const AdminEmail = "admin@carrental.com"

var errNilAccount = errors.New("cannot clone nil account")

// Account is the persisted user record. An ID of 0 means the account has not
// been stored yet.
type Account struct {
	ID              int64         `json:"id"`
	Email           string        `json:"email"`
	PasswordHash    string        `json:"-"`
	DefaultCurrency currency.Code `json:"defaultCurrency"`
}

// Clone returns a copy of the account that shares no storage with a.
func (a *Account) Clone() (*Account, error) {
	if a == nil {
		return nil, errNilAccount
	}
	c := *a
	return &c, nil
}

// IsAdmin reports whether the account holds the bootstrap administrator's identity.
func (a *Account) IsAdmin() bool {
	return a.ID == AdminAccountID || a.Email == AdminEmail
}
