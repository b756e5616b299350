package repository

import (
	"context"

	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository owns the account rows. Balance reads and writes take a
// Querier because pay and cancel touch them inside a transaction.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	Authenticate(ctx context.Context, username, password string) (bool, error)
	Balance(ctx context.Context, q Querier, username string) (int, error)
	UpdateBalance(ctx context.Context, q Querier, username string, balance int) error
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

func (r *PGUserRepository) Create(ctx context.Context, user domain.User) error {
	_, err := r.db.Exec(ctx, `INSERT INTO users (username, password, balance) VALUES ($1, $2, $3)`,
		user.Username, user.Password, user.Balance)
	return err
}

// Authenticate checks for an exact credential match.
func (r *PGUserRepository) Authenticate(ctx context.Context, username, password string) (bool, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE username = $1 AND password = $2`,
		username, password).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 1, nil
}

func (r *PGUserRepository) Balance(ctx context.Context, q Querier, username string) (int, error) {
	var balance int
	err := q.QueryRow(ctx, `SELECT balance FROM users WHERE username = $1`, username).Scan(&balance)
	return balance, err
}

func (r *PGUserRepository) UpdateBalance(ctx context.Context, q Querier, username string, balance int) error {
	_, err := q.Exec(ctx, `UPDATE users SET balance = $1 WHERE username = $2`, balance, username)
	return err
}

var _ UserRepository = (*PGUserRepository)(nil)
