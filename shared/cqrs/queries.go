package cqrs

// GetProfileQuery fetches the caller's own profile.
type GetProfileQuery struct {
	CallerEmail string
}

// ListAccountsQuery lists every account; only the administrator may run it.
type ListAccountsQuery struct {
	CallerEmail string
}
