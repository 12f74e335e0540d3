package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Waynenyarky/capstone-booking/internal/domain"
	"github.com/Waynenyarky/capstone-booking/internal/repo"
)

type OfferingRepo struct{ pool *pgxpool.Pool }

func NewOfferingRepo(pool *pgxpool.Pool) *OfferingRepo { return &OfferingRepo{pool: pool} }

const offeringCols = `id, provider_id, service_id, pricing_mode, fixed_price, hourly_rate,
availability, emergency_available, provider_description, active, status, updated_at`

func scanOffering(row pgx.Row) (*domain.Offering, error) {
	var o domain.Offering
	err := row.Scan(
		&o.ID, &o.ProviderID, &o.ServiceID, &o.PricingMode, &o.FixedPrice, &o.HourlyRate,
		&o.Availability, &o.EmergencyAvailable, &o.ProviderDescription, &o.Active, &o.Status, &o.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OfferingRepo) GetByID(ctx context.Context, id string) (*domain.Offering, error) {
	const q = `SELECT ` + offeringCols + ` FROM offerings WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanOffering(r.pool.QueryRow(ctx, q, id))
}

func (r *OfferingRepo) GetPopulated(ctx context.Context, id string) (*domain.PopulatedOffering, error) {
	o, err := r.GetByID(ctx, id)
	if err != nil || o == nil {
		return nil, err
	}

	po := &domain.PopulatedOffering{Offering: *o}

	providers, err := r.providersByID(ctx, []string{o.ProviderID})
	if err != nil {
		return nil, err
	}
	po.Provider = providers[o.ProviderID]

	services, err := r.servicesByID(ctx, []string{o.ServiceID})
	if err != nil {
		return nil, err
	}
	po.Service = services[o.ServiceID]

	return po, nil
}

func (r *OfferingRepo) ListActivePopulated(ctx context.Context) ([]domain.PopulatedOffering, error) {
	const q = `SELECT ` + offeringCols + ` FROM offerings WHERE active AND status='active' ORDER BY id`
	return r.listPopulated(ctx, q)
}

func (r *OfferingRepo) ListAllPopulated(ctx context.Context) ([]domain.PopulatedOffering, error) {
	const q = `SELECT ` + offeringCols + ` FROM offerings ORDER BY id`
	return r.listPopulated(ctx, q)
}

func (r *OfferingRepo) listPopulated(ctx context.Context, q string) ([]domain.PopulatedOffering, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offerings []domain.Offering
	for rows.Next() {
		var o domain.Offering
		if err := rows.Scan(
			&o.ID, &o.ProviderID, &o.ServiceID, &o.PricingMode, &o.FixedPrice, &o.HourlyRate,
			&o.Availability, &o.EmergencyAvailable, &o.ProviderDescription, &o.Active, &o.Status, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		offerings = append(offerings, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	providerIDs := make([]string, 0, len(offerings))
	serviceIDs := make([]string, 0, len(offerings))
	for _, o := range offerings {
		providerIDs = append(providerIDs, o.ProviderID)
		serviceIDs = append(serviceIDs, o.ServiceID)
	}

	providers, err := r.providersByID(ctx, providerIDs)
	if err != nil {
		return nil, err
	}
	services, err := r.servicesByID(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PopulatedOffering, 0, len(offerings))
	for _, o := range offerings {
		out = append(out, domain.PopulatedOffering{
			Offering: o,
			Provider: providers[o.ProviderID],
			Service:  services[o.ServiceID],
		})
	}
	return out, nil
}

func (r *OfferingRepo) providersByID(ctx context.Context, ids []string) (map[string]*domain.Provider, error) {
	out := make(map[string]*domain.Provider, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	const q = `SELECT ` + providerCols + ` FROM providers WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var p domain.Provider
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.BusinessName, &p.City, &p.Province, &p.ServiceAreas,
			&p.ApplicationStatus, &p.AccountStatus,
		); err != nil {
			return nil, err
		}
		cp := p
		out[p.ID] = &cp
	}
	return out, rows.Err()
}

func (r *OfferingRepo) servicesByID(ctx context.Context, ids []string) (map[string]*domain.Service, error) {
	out := make(map[string]*domain.Service, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	const q = `SELECT ` + serviceCols + ` FROM services WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Description, &s.CategoryName, &s.Status, &s.PricingMode,
			&s.PriceMin, &s.PriceMax, &s.HourlyRateMin, &s.HourlyRateMax,
		); err != nil {
			return nil, err
		}
		cp := s
		out[s.ID] = &cp
	}
	return out, rows.Err()
}

func (r *OfferingRepo) Update(ctx context.Context, o *domain.Offering) error {
	const q = `UPDATE offerings SET
    pricing_mode=$2, fixed_price=$3, hourly_rate=$4, availability=$5,
    emergency_available=$6, provider_description=$7, active=$8, status=$9,
    updated_at=now()
  WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, o.ID,
		o.PricingMode, o.FixedPrice, o.HourlyRate, o.Availability,
		o.EmergencyAvailable, o.ProviderDescription, o.Active, o.Status,
	)
	return err
}

var _ repo.OfferingRepo = (*OfferingRepo)(nil)
