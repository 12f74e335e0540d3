package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Waynenyarky/capstone-booking/internal/domain"
	"github.com/Waynenyarky/capstone-booking/internal/repo"
)

type AddressRepo struct{ pool *pgxpool.Pool }

func NewAddressRepo(pool *pgxpool.Pool) *AddressRepo { return &AddressRepo{pool: pool} }

func (r *AddressRepo) GetByID(ctx context.Context, id string) (*domain.CustomerAddress, error) {
	const q = `SELECT id, user_id, line1, city FROM customer_addresses WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var a domain.CustomerAddress
	err := r.pool.QueryRow(ctx, q, id).Scan(&a.ID, &a.UserID, &a.Line1, &a.City)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

var _ repo.AddressRepo = (*AddressRepo)(nil)
