package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Waynenyarky/capstone-booking/internal/domain"
	"github.com/Waynenyarky/capstone-booking/internal/repo"
)

type AppointmentRepo struct{ pool *pgxpool.Pool }

func NewAppointmentRepo(pool *pgxpool.Pool) *AppointmentRepo { return &AppointmentRepo{pool: pool} }

const appointmentCols = `id, customer_user_id, provider_id, service_id, offering_id,
service_address_id, appointment_at, notes, pricing_selection, estimated_hours,
status, reviewed_at, reviewed_by_user_id, reviewed_by_email, decision_notes,
created_by_user_id, created_by_email, created_at, updated_at`

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var a domain.Appointment
	err := row.Scan(
		&a.ID, &a.CustomerUserID, &a.ProviderID, &a.ServiceID, &a.OfferingID,
		&a.ServiceAddressID, &a.AppointmentAt, &a.Notes, &a.PricingSelection, &a.EstimatedHours,
		&a.Status, &a.ReviewedAt, &a.ReviewedByUserID, &a.ReviewedByEmail, &a.DecisionNotes,
		&a.CreatedByUserID, &a.CreatedByEmail, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepo) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	const q = `INSERT INTO appointments (
    id, customer_user_id, provider_id, service_id, offering_id,
    service_address_id, appointment_at, notes, pricing_selection, estimated_hours,
    status, created_by_user_id, created_by_email
  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,'requested',$11,$12)
  RETURNING ` + appointmentCols

	id := a.ID
	if id == "" {
		id = uuid.NewString()
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanAppointment(r.pool.QueryRow(ctx, q, id,
		a.CustomerUserID, a.ProviderID, a.ServiceID, a.OfferingID,
		a.ServiceAddressID, a.AppointmentAt, a.Notes, a.PricingSelection, a.EstimatedHours,
		a.CreatedByUserID, a.CreatedByEmail,
	))
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	const q = `SELECT ` + appointmentCols + ` FROM appointments WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanAppointment(r.pool.QueryRow(ctx, q, id))
}

// Review is the conditional state transition: the WHERE clause only matches a
// requested appointment, so of two racing reviews exactly one sees a row.
func (r *AppointmentRepo) Review(ctx context.Context, id string, status domain.AppointmentStatus, reviewerUserID, reviewerEmail, notes string, at time.Time) (bool, error) {
	const q = `UPDATE appointments SET
    status=$2, reviewed_at=$3, reviewed_by_user_id=$4, reviewed_by_email=$5,
    decision_notes=$6, updated_at=$3
  WHERE id=$1 AND status='requested'`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, q, id, status, at, reviewerUserID, reviewerEmail, notes)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

const appointmentViewCols = `a.id, a.customer_user_id, a.provider_id, a.service_id, a.offering_id,
a.service_address_id, a.appointment_at, a.notes, a.pricing_selection, a.estimated_hours,
a.status, a.reviewed_at, a.reviewed_by_user_id, a.reviewed_by_email, a.decision_notes,
a.created_by_user_id, a.created_by_email, a.created_at, a.updated_at,
COALESCE(s.name, ''), COALESCE(p.business_name, ''),
COALESCE(o.pricing_mode, 'fixed'), o.fixed_price, o.hourly_rate`

const appointmentViewFrom = ` FROM appointments a
LEFT JOIN services s ON s.id = a.service_id
LEFT JOIN providers p ON p.id = a.provider_id
LEFT JOIN offerings o ON o.id = a.offering_id`

func (r *AppointmentRepo) ListByCustomer(ctx context.Context, customerUserID string, status *domain.AppointmentStatus) ([]domain.AppointmentView, error) {
	q := `SELECT ` + appointmentViewCols + appointmentViewFrom + ` WHERE a.customer_user_id=$1`
	args := []any{customerUserID}
	if status != nil {
		q += ` AND a.status=$2`
		args = append(args, *status)
	}
	q += ` ORDER BY a.created_at DESC`
	return r.listViews(ctx, q, args...)
}

func (r *AppointmentRepo) ListByProvider(ctx context.Context, providerID string, status *domain.AppointmentStatus) ([]domain.AppointmentView, error) {
	q := `SELECT ` + appointmentViewCols + appointmentViewFrom + ` WHERE a.provider_id=$1`
	args := []any{providerID}
	if status != nil {
		q += ` AND a.status=$2`
		args = append(args, *status)
	}
	q += ` ORDER BY a.created_at DESC`
	return r.listViews(ctx, q, args...)
}

func (r *AppointmentRepo) listViews(ctx context.Context, q string, args ...any) ([]domain.AppointmentView, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AppointmentView
	for rows.Next() {
		var v domain.AppointmentView
		if err := rows.Scan(
			&v.ID, &v.CustomerUserID, &v.ProviderID, &v.ServiceID, &v.OfferingID,
			&v.ServiceAddressID, &v.AppointmentAt, &v.Notes, &v.PricingSelection, &v.EstimatedHours,
			&v.Status, &v.ReviewedAt, &v.ReviewedByUserID, &v.ReviewedByEmail, &v.DecisionNotes,
			&v.CreatedByUserID, &v.CreatedByEmail, &v.CreatedAt, &v.UpdatedAt,
			&v.ServiceName, &v.ProviderName,
			&v.PricingMode, &v.FixedPrice, &v.HourlyRate,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *AppointmentRepo) ExistsLiveAt(ctx context.Context, offeringID string, at time.Time) (bool, error) {
	const q = `SELECT EXISTS (
    SELECT 1 FROM appointments
    WHERE offering_id=$1 AND appointment_at=$2 AND status IN ('requested','accepted')
  )`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var exists bool
	err := r.pool.QueryRow(ctx, q, offeringID, at).Scan(&exists)
	return exists, err
}

var _ repo.AppointmentRepo = (*AppointmentRepo)(nil)
