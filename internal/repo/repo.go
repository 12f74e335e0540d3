// Package repo defines the storage abstraction. Postgres backs production;
// the memory implementation backs tests and dev mode.
package repo

import (
	"context"
	"time"

	"github.com/Waynenyarky/capstone-booking/internal/domain"
)

// Lookups return (nil, nil) when the record does not exist; callers decide
// which error kind a miss maps to.

type ProviderRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Provider, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Provider, error)
}

type ServiceRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Service, error)
}

type OfferingRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Offering, error)
	// GetPopulated resolves the offering's provider and service in one fetch.
	GetPopulated(ctx context.Context, id string) (*domain.PopulatedOffering, error)
	// ListActivePopulated returns offerings pre-filtered to active=true and
	// status=active, links populated (possibly nil when dangling).
	ListActivePopulated(ctx context.Context) ([]domain.PopulatedOffering, error)
	// ListAllPopulated returns every offering regardless of state. Used by
	// the diagnostics command.
	ListAllPopulated(ctx context.Context) ([]domain.PopulatedOffering, error)
	Update(ctx context.Context, o *domain.Offering) error
}

type AddressRepo interface {
	GetByID(ctx context.Context, id string) (*domain.CustomerAddress, error)
}

type AppointmentRepo interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	// Review conditionally moves a requested appointment to the given status,
	// stamping the reviewer. Returns false when the appointment was not in
	// requested state anymore; the check-and-set is atomic.
	Review(ctx context.Context, id string, status domain.AppointmentStatus, reviewerUserID, reviewerEmail, notes string, at time.Time) (bool, error)
	ListByCustomer(ctx context.Context, customerUserID string, status *domain.AppointmentStatus) ([]domain.AppointmentView, error)
	ListByProvider(ctx context.Context, providerID string, status *domain.AppointmentStatus) ([]domain.AppointmentView, error)
	// ExistsLiveAt reports whether a requested or accepted appointment
	// already occupies (offeringID, at). Only consulted when slot uniqueness
	// is enforced.
	ExistsLiveAt(ctx context.Context, offeringID string, at time.Time) (bool, error)
}
