package models

// UserInfo is the profile projection returned to the account owner.
// Only the default currency is exposed.
type UserInfo struct {
	DefaultCurrency string `json:"defaultCurrency"`
}

// AccountView is the administrative listing projection. It never carries the
// password hash.
type AccountView struct {
	ID              int64  `json:"id"`
	Email           string `json:"email"`
	DefaultCurrency string `json:"defaultCurrency"`
}

// GenericResponse is the envelope for every non-data response.
type GenericResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func ToUserInfo(a *Account) *UserInfo {
	return &UserInfo{DefaultCurrency: string(a.DefaultCurrency)}
}

func ToAccountView(a *Account) AccountView {
	return AccountView{
		ID:              a.ID,
		Email:           a.Email,
		DefaultCurrency: string(a.DefaultCurrency),
	}
}
