package query

import (
	"context"

	"github.com/carrental/user-service/internal/identity"
	"github.com/carrental/user-service/internal/repository"
	"github.com/carrental/user-service/shared/apperror"
	"github.com/carrental/user-service/shared/cqrs"
	"github.com/carrental/user-service/shared/models"
)

const MsgForbidden = "Request forbidden"

// AccountQueryService serves read-only views of accounts straight from the store.
type AccountQueryService struct {
	store repository.AccountStore
}

func NewAccountQueryService(store repository.AccountStore) *AccountQueryService {
	return &AccountQueryService{store: store}
}

// GetProfile returns the caller's preferences.
func (s *AccountQueryService) GetProfile(ctx context.Context, q cqrs.GetProfileQuery) (*models.UserInfo, error) {
	account, err := identity.Resolve(ctx, s.store, q.CallerEmail)
	if err != nil {
		return nil, err
	}
	return models.ToUserInfo(account), nil
}

// ListAccounts returns every account. Only the administrative account may list.
func (s *AccountQueryService) ListAccounts(ctx context.Context, q cqrs.ListAccountsQuery) ([]models.AccountView, error) {
	caller, err := identity.Resolve(ctx, s.store, q.CallerEmail)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, apperror.Forbidden(MsgForbidden)
	}

	accounts, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal("Failed to list users", err)
	}
	views := make([]models.AccountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, models.ToAccountView(a))
	}
	return views, nil
}
