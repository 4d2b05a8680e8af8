package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/carrental/user-service/shared/models"
)

// MemoryRepository is an in-process AccountStore. Identifiers start at 2;
// 1 is reserved for the administrative account.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[int64]models.Account
	byEmail map[string]int64
	nextID  int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[int64]models.Account),
		byEmail: make(map[string]int64),
		nextID:  models.AdminAccountID + 1,
	}
}

func (r *MemoryRepository) FindByID(_ context.Context, id int64) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	a := r.byID[id]
	return &a, nil
}

func (r *MemoryRepository) FindAll(_ context.Context) ([]*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]*models.Account, 0, len(r.byID))
	for _, a := range r.byID {
		a := a
		accounts = append(accounts, &a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (r *MemoryRepository) Save(_ context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.byEmail[account.Email]; ok && owner != account.ID {
		return nil, ErrEmailTaken
	}

	a := *account
	if a.ID == 0 {
		a.ID = r.nextID
		r.nextID++
	} else if a.ID >= r.nextID {
		r.nextID = a.ID + 1
	}

	if prev, ok := r.byID[a.ID]; ok && prev.Email != a.Email {
		delete(r.byEmail, prev.Email)
	}
	r.byID[a.ID] = a
	r.byEmail[a.Email] = a.ID

	return &a, nil
}
