package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carrental/user-service/shared/models"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

const accountColumns = `id, email, password_hash, default_currency`

// AccountRepository is the PostgreSQL AccountStore.
type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	return r.findOne(ctx, query, email)
}

func (r *AccountRepository) FindAll(ctx context.Context) ([]*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.DefaultCurrency); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) Save(ctx context.Context, account *models.Account) (*models.Account, error) {
	var row *sql.Row
	if account.ID == 0 {
		query := `
			INSERT INTO accounts (email, password_hash, default_currency)
			VALUES ($1, $2, $3)
			RETURNING ` + accountColumns
		row = r.db.QueryRowContext(ctx, query, account.Email, account.PasswordHash, account.DefaultCurrency)
	} else {
		query := `
			INSERT INTO accounts (id, email, password_hash, default_currency)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE
			SET email = EXCLUDED.email,
				password_hash = EXCLUDED.password_hash,
				default_currency = EXCLUDED.default_currency,
				updated_at = NOW()
			RETURNING ` + accountColumns
		row = r.db.QueryRowContext(ctx, query, account.ID, account.Email, account.PasswordHash, account.DefaultCurrency)
	}

	var saved models.Account
	err := row.Scan(&saved.ID, &saved.Email, &saved.PasswordHash, &saved.DefaultCurrency)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	return &saved, nil
}

func (r *AccountRepository) findOne(ctx context.Context, query string, arg any) (*models.Account, error) {
	var a models.Account
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.DefaultCurrency)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &a, nil
}
