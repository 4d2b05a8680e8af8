// Package bootstrap guarantees the administrative account exists before the
// service takes traffic.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carrental/user-service/internal/currency"
	"github.com/carrental/user-service/internal/logging"
	"github.com/carrental/user-service/internal/metrics"
	"github.com/carrental/user-service/internal/repository"
	"github.com/carrental/user-service/shared/models"
)

// DefaultAdminPassword is the well-known initial password of the administrator.
const DefaultAdminPassword = "admin"

const lockKey = "user-service:bootstrap:admin"

type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Locker serialises bootstrap across service instances.
type Locker interface {
	AcquireLock(ctx context.Context, key string, ttl, wait time.Duration) (func(context.Context) error, error)
}

// Result describes what EnsureAdmin found or did.
type Result int

const (
	ResultExisting Result = iota
	ResultCreated
	// ResultLostRace means another instance created the administrator first.
	ResultLostRace
)

func (r Result) String() string {
	switch r {
	case ResultCreated:
		return "created"
	case ResultLostRace:
		return "lost_race"
	default:
		return "existing"
	}
}

type Enforcer struct {
	store   repository.AccountStore
	hasher  PasswordHasher
	locker  Locker
	lockTTL time.Duration
	metrics *metrics.Metrics
	logger  logging.Logger
}

func NewEnforcer(store repository.AccountStore, hasher PasswordHasher, m *metrics.Metrics, logger logging.Logger) *Enforcer {
	return &Enforcer{
		store:   store,
		hasher:  hasher,
		metrics: m,
		logger:  logger.With("component", "bootstrap"),
	}
}

// WithLock makes EnsureAdmin run under a distributed lock held for at most ttl.
func (e *Enforcer) WithLock(locker Locker, ttl time.Duration) *Enforcer {
	e.locker = locker
	e.lockTTL = ttl
	return e
}

// EnsureAdmin creates the administrative account unless an account with its
// identifier or its email already exists. Running it again is a no-op. Store
// failures are returned; callers should treat them as fatal.
func (e *Enforcer) EnsureAdmin(ctx context.Context) (Result, error) {
	if e.locker != nil {
		release, err := e.locker.AcquireLock(ctx, lockKey, e.lockTTL, e.lockTTL)
		if err != nil {
			e.logger.Warn(ctx, "running bootstrap without lock", "error", err)
		} else {
			defer func() {
				if err := release(ctx); err != nil {
					e.logger.Warn(ctx, "failed to release bootstrap lock", "error", err)
				}
			}()
		}
	}

	result, err := e.ensureAdmin(ctx)
	if err != nil {
		e.metrics.Bootstrap(metrics.OutcomeError)
		return result, err
	}
	e.metrics.Bootstrap(result.String())
	return result, nil
}

func (e *Enforcer) ensureAdmin(ctx context.Context) (Result, error) {
	accounts, err := e.store.FindAll(ctx)
	if err != nil {
		return ResultExisting, fmt.Errorf("failed to list accounts: %w", err)
	}
	e.logger.Info(ctx, "accounts at startup", "count", len(accounts))

	admin, err := e.store.FindByID(ctx, models.AdminAccountID)
	if err == nil {
		e.logger.Info(ctx, "administrator present", "account_id", admin.ID, "email", admin.Email)
		return ResultExisting, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return ResultExisting, fmt.Errorf("failed to look up administrator by id: %w", err)
	}

	admin, err = e.store.FindByEmail(ctx, models.AdminEmail)
	if err == nil {
		e.logger.Info(ctx, "administrator present under another id", "account_id", admin.ID, "email", admin.Email)
		return ResultExisting, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return ResultExisting, fmt.Errorf("failed to look up administrator by email: %w", err)
	}

	hash, err := e.hasher.Hash(DefaultAdminPassword)
	if err != nil {
		return ResultExisting, fmt.Errorf("failed to hash administrator password: %w", err)
	}

	saved, err := e.store.Save(ctx, &models.Account{
		ID:              models.AdminAccountID,
		Email:           models.AdminEmail,
		PasswordHash:    hash,
		DefaultCurrency: currency.ServiceCurrency,
	})
	if errors.Is(err, repository.ErrEmailTaken) {
		e.logger.Warn(ctx, "administrator created concurrently by another instance")
		return ResultLostRace, nil
	}
	if err != nil {
		return ResultExisting, fmt.Errorf("failed to create administrator: %w", err)
	}

	e.logger.Info(ctx, "administrator created", "account_id", saved.ID, "email", saved.Email)
	return ResultCreated, nil
}
