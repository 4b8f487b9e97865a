package repository

import (
	"context"
	"database/sql"
	"errors"

	"campusbridge/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrAccountNotFound = errors.New("account not found")

const (
	RoleStudent      = "student"
	RoleOrganization = "organization"
)

type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
}

type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (Account, error)
}

type PostgresAccountRepository struct {
	db database.DB
}

func NewPostgresAccountRepository(db database.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func (r *PostgresAccountRepository) FindByEmail(ctx context.Context, email string) (Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, role FROM accounts WHERE lower(email) = lower($1)`,
		email,
	)
	return scanAccount(row)
}

func (r *PostgresAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, role FROM accounts WHERE id = $1`,
		id,
	)
	return scanAccount(row)
}

func scanAccount(row database.Row) (Account, error) {
	var a Account
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, err
	}
	return a, nil
}
