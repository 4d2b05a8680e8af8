package cqrs

// RegisterAccountCommand carries a registration request. ID is whatever the
// client sent; it is never honoured.
type RegisterAccountCommand struct {
	ID              int64
	Email           string
	Password        string
	DefaultCurrency *string
}

// SettingsChange is the body of a settings update. Nil fields are left
// untouched on the account.
type SettingsChange struct {
	DefaultCurrency *string
}

// UpdateSettingsCommand changes the caller's preferences. A nil Change means
// the request carried no body.
type UpdateSettingsCommand struct {
	CallerEmail string
	Change      *SettingsChange
}
