package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Waynenyarky/capstone-booking/internal/domain"
	"github.com/Waynenyarky/capstone-booking/internal/repo"
)

type ServiceRepo struct{ pool *pgxpool.Pool }

func NewServiceRepo(pool *pgxpool.Pool) *ServiceRepo { return &ServiceRepo{pool: pool} }

const serviceCols = `id, name, description, category_name, status, pricing_mode,
price_min, price_max, hourly_rate_min, hourly_rate_max`

func scanService(row pgx.Row) (*domain.Service, error) {
	var s domain.Service
	err := row.Scan(
		&s.ID, &s.Name, &s.Description, &s.CategoryName, &s.Status, &s.PricingMode,
		&s.PriceMin, &s.PriceMax, &s.HourlyRateMin, &s.HourlyRateMax,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepo) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	const q = `SELECT ` + serviceCols + ` FROM services WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanService(r.pool.QueryRow(ctx, q, id))
}

var _ repo.ServiceRepo = (*ServiceRepo)(nil)
