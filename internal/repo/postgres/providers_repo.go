package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Waynenyarky/capstone-booking/internal/domain"
	"github.com/Waynenyarky/capstone-booking/internal/repo"
)

type ProviderRepo struct{ pool *pgxpool.Pool }

func NewProviderRepo(pool *pgxpool.Pool) *ProviderRepo { return &ProviderRepo{pool: pool} }

const providerCols = `id, user_id, business_name, city, province, service_areas,
application_status, account_status`

func scanProvider(row pgx.Row) (*domain.Provider, error) {
	var p domain.Provider
	err := row.Scan(
		&p.ID, &p.UserID, &p.BusinessName, &p.City, &p.Province, &p.ServiceAreas,
		&p.ApplicationStatus, &p.AccountStatus,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProviderRepo) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	const q = `SELECT ` + providerCols + ` FROM providers WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanProvider(r.pool.QueryRow(ctx, q, id))
}

func (r *ProviderRepo) GetByUserID(ctx context.Context, userID string) (*domain.Provider, error) {
	const q = `SELECT ` + providerCols + ` FROM providers WHERE user_id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanProvider(r.pool.QueryRow(ctx, q, userID))
}

var _ repo.ProviderRepo = (*ProviderRepo)(nil)
