package command

import (
	"context"
	"errors"

	"github.com/carrental/user-service/internal/credential"
	"github.com/carrental/user-service/internal/currency"
	"github.com/carrental/user-service/internal/identity"
	"github.com/carrental/user-service/internal/logging"
	"github.com/carrental/user-service/internal/metrics"
	"github.com/carrental/user-service/internal/repository"
	"github.com/carrental/user-service/shared/apperror"
	"github.com/carrental/user-service/shared/cqrs"
	"github.com/carrental/user-service/shared/events"
	"github.com/carrental/user-service/shared/models"
)

const (
	MsgMissingCredentials = "Email and password are required"
	MsgInvalidEmail       = "Invalid email address"
	MsgWeakPassword       = "Password does not meet the password policy"
	MsgAlreadyRegistered  = "User already registered"
	MsgRegistrationFailed = "User registration failed"
	MsgMissingBody        = "Missing request body"
	MsgUpdateFailed       = "User update failed"
)

// PasswordHasher turns a plaintext password into a one-way credential.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// EventPublisher appends an event to a stream.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// UpdateOutcome is the result of a successful settings update.
type UpdateOutcome int

const (
	// SettingsUnchanged means the stored account equals its state before the request.
	SettingsUnchanged UpdateOutcome = iota
	SettingsUpdated
)

// AccountCommandService registers accounts and applies settings changes.
// It holds no per-request state and is safe for concurrent use.
type AccountCommandService struct {
	store     repository.AccountStore
	catalog   *currency.Catalog
	hasher    PasswordHasher
	publisher EventPublisher
	metrics   *metrics.Metrics
	logger    logging.Logger
}

func NewAccountCommandService(
	store repository.AccountStore,
	catalog *currency.Catalog,
	hasher PasswordHasher,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger logging.Logger,
) *AccountCommandService {
	return &AccountCommandService{
		store:     store,
		catalog:   catalog,
		hasher:    hasher,
		publisher: publisher,
		metrics:   m,
		logger:    logger.With("component", "account_command_service"),
	}
}

// Register validates the request and stores a new account. The client's ID
// is discarded; the store assigns one.
func (s *AccountCommandService) Register(ctx context.Context, cmd cqrs.RegisterAccountCommand) (*models.Account, error) {
	account, err := s.register(ctx, cmd)
	s.metrics.Registration(outcomeOf(err, metrics.OutcomeSuccess))
	return account, err
}

func (s *AccountCommandService) register(ctx context.Context, cmd cqrs.RegisterAccountCommand) (*models.Account, error) {
	if cmd.Email == "" || cmd.Password == "" {
		return nil, apperror.BadRequest(MsgMissingCredentials)
	}
	if !credential.ValidateEmail(cmd.Email) {
		return nil, apperror.BadRequest(MsgInvalidEmail)
	}
	if !credential.ValidatePassword(cmd.Password) {
		return nil, apperror.BadRequest(MsgWeakPassword)
	}

	defaultCurrency := currency.ServiceCurrency
	if cmd.DefaultCurrency != nil {
		code, err := s.lookupCurrency(*cmd.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		defaultCurrency = code
	}

	_, err := s.store.FindByEmail(ctx, cmd.Email)
	switch {
	case err == nil:
		return nil, apperror.Conflict(MsgAlreadyRegistered)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperror.Internal(MsgRegistrationFailed, err)
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, apperror.Internal(MsgRegistrationFailed, err)
	}

	account, err := s.store.Save(ctx, &models.Account{
		ID:              0,
		Email:           cmd.Email,
		PasswordHash:    hash,
		DefaultCurrency: defaultCurrency,
	})
	if errors.Is(err, repository.ErrEmailTaken) {
		return nil, apperror.Conflict(MsgAlreadyRegistered)
	}
	if err != nil {
		return nil, apperror.Internal(MsgRegistrationFailed, err)
	}

	s.logger.Info(ctx, "account registered", "account_id", account.ID)
	s.publish(ctx, events.AccountRegistered, events.AccountRegisteredEvent{
		AccountID:       account.ID,
		Email:           account.Email,
		DefaultCurrency: string(account.DefaultCurrency),
	})
	return account, nil
}

// UpdateSettings applies cmd.Change to the caller's account and reports
// whether the stored account actually changed.
func (s *AccountCommandService) UpdateSettings(ctx context.Context, cmd cqrs.UpdateSettingsCommand) (UpdateOutcome, error) {
	outcome, err := s.updateSettings(ctx, cmd)
	label := metrics.OutcomeSuccess
	if outcome == SettingsUnchanged {
		label = metrics.OutcomeUnchanged
	}
	s.metrics.SettingsUpdate(outcomeOf(err, label))
	return outcome, err
}

func (s *AccountCommandService) updateSettings(ctx context.Context, cmd cqrs.UpdateSettingsCommand) (UpdateOutcome, error) {
	account, err := identity.Resolve(ctx, s.store, cmd.CallerEmail)
	if err != nil {
		return SettingsUnchanged, err
	}
	if cmd.Change == nil {
		return SettingsUnchanged, apperror.BadRequest(MsgMissingBody)
	}

	// The snapshot must not alias account, which is mutated below.
	before, err := account.Clone()
	if err != nil {
		s.logger.Error(ctx, "failed to snapshot account", "error", err)
		return SettingsUnchanged, apperror.Internal(MsgUpdateFailed, err)
	}

	if cmd.Change.DefaultCurrency != nil {
		code, err := s.lookupCurrency(*cmd.Change.DefaultCurrency)
		if err != nil {
			return SettingsUnchanged, err
		}
		account.DefaultCurrency = code
	}

	saved, err := s.store.Save(ctx, account)
	if err != nil {
		return SettingsUnchanged, apperror.Internal(MsgUpdateFailed, err)
	}

	if *before == *saved {
		return SettingsUnchanged, nil
	}

	s.logger.Info(ctx, "account settings updated", "account_id", saved.ID)
	s.publish(ctx, events.AccountSettingsUpdated, events.AccountSettingsUpdatedEvent{
		AccountID:        saved.ID,
		DefaultCurrency:  string(saved.DefaultCurrency),
		PreviousCurrency: string(before.DefaultCurrency),
	})
	return SettingsUpdated, nil
}

func (s *AccountCommandService) lookupCurrency(code string) (currency.Code, error) {
	if _, ok := s.catalog.Lookup(code); !ok {
		return "", apperror.BadRequest(code + " is invalid")
	}
	return currency.Code(code), nil
}

// publish never fails the request; a lost event is logged.
func (s *AccountCommandService) publish(ctx context.Context, eventType string, data any) {
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, eventType, data); err != nil {
		s.logger.Warn(ctx, "failed to publish event", "type", eventType, "error", err)
	}
}

func outcomeOf(err error, success string) string {
	if err == nil {
		return success
	}
	switch apperror.As(err).Kind {
	case apperror.KindBadRequest:
		return metrics.OutcomeBadRequest
	case apperror.KindConflict:
		return metrics.OutcomeConflict
	case apperror.KindForbidden:
		return metrics.OutcomeForbidden
	default:
		return metrics.OutcomeError
	}
}
