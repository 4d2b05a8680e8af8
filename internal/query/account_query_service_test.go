package query

import (
	"context"
	"errors"
	"testing"

	"github.com/carrental/user-service/internal/repository"
	"github.com/carrental/user-service/shared/apperror"
	"github.com/carrental/user-service/shared/cqrs"
	"github.com/carrental/user-service/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenListStore struct {
	repository.AccountStore
}

func (brokenListStore) FindAll(context.Context) ([]*models.Account, error) {
	return nil, errors.New("db down")
}

func seededStore(t *testing.T) *repository.MemoryRepository {
	t.Helper()
	store := repository.NewMemoryRepository()
	ctx := context.Background()
	for _, a := range []*models.Account{
		{ID: models.AdminAccountID, Email: models.AdminEmail, PasswordHash: "h0", DefaultCurrency: "USD"},
		{Email: "alice@example.com", PasswordHash: "h1", DefaultCurrency: "EUR"},
		{Email: "bob@example.com", PasswordHash: "h2", DefaultCurrency: "GBP"},
	} {
		_, err := store.Save(ctx, a)
		require.NoError(t, err)
	}
	return store
}

func TestGetProfile(t *testing.T) {
	svc := NewAccountQueryService(seededStore(t))

	info, err := svc.GetProfile(context.Background(), cqrs.GetProfileQuery{CallerEmail: "alice@example.com"})
	require.NoError(t, err)

	assert.Equal(t, &models.UserInfo{DefaultCurrency: "EUR"}, info)
}

func TestGetProfile_UnknownCallerIsBadRequest(t *testing.T) {
	svc := NewAccountQueryService(seededStore(t))

	info, err := svc.GetProfile(context.Background(), cqrs.GetProfileQuery{CallerEmail: "ghost@example.com"})

	assert.Nil(t, info)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindBadRequest))
}

func TestListAccounts_Admin(t *testing.T) {
	svc := NewAccountQueryService(seededStore(t))

	views, err := svc.ListAccounts(context.Background(), cqrs.ListAccountsQuery{CallerEmail: models.AdminEmail})
	require.NoError(t, err)

	require.Len(t, views, 3)
	assert.Equal(t, models.AccountView{ID: 1, Email: models.AdminEmail, DefaultCurrency: "USD"}, views[0])
	assert.Equal(t, "alice@example.com", views[1].Email)
}

func TestListAccounts_NonAdminForbidden(t *testing.T) {
	svc := NewAccountQueryService(seededStore(t))

	_, err := svc.ListAccounts(context.Background(), cqrs.ListAccountsQuery{CallerEmail: "bob@example.com"})

	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestListAccounts_StoreFailure(t *testing.T) {
	svc := NewAccountQueryService(brokenListStore{AccountStore: seededStore(t)})

	_, err := svc.ListAccounts(context.Background(), cqrs.ListAccountsQuery{CallerEmail: models.AdminEmail})

	assert.True(t, apperror.IsKind(err, apperror.KindInternal))
}
