// Package booking implements appointment creation, the provider review
// transition, appointment read projections, and offering edits.
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/Waynenyarky/capstone-booking/internal/availability"
	"github.com/Waynenyarky/capstone-booking/internal/domain"
	"github.com/Waynenyarky/capstone-booking/internal/repo"
	"github.com/Waynenyarky/capstone-booking/pkg/events"
	"github.com/Waynenyarky/capstone-booking/pkg/logger"
)

// CreateAppointmentRequest is the customer booking payload. Only the fields
// enumerated here are trusted from the client.
type CreateAppointmentRequest struct {
	OfferingID       string   `json:"offering_id"`
	ProviderID       string   `json:"provider_id"`
	ServiceID        string   `json:"service_id"`
	ServiceAddressID string   `json:"service_address_id"`
	AppointmentAt    string   `json:"appointment_at"` // RFC 3339
	PricingSelection string   `json:"pricing_selection,omitempty"`
	EstimatedHours   *float64 `json:"estimated_hours,omitempty"`
	Notes            string   `json:"notes,omitempty"`
}

// ReviewRequest is the provider decision payload.
type ReviewRequest struct {
	Decision string `json:"decision"` // accept | decline
	Notes    string `json:"notes,omitempty"`
}

type Service struct {
	providers    repo.ProviderRepo
	services     repo.ServiceRepo
	offerings    repo.OfferingRepo
	addresses    repo.AddressRepo
	appointments repo.AppointmentRepo
	bus          events.Publisher

	enforceUniqueSlots bool
	now                func() time.Time
}

func NewService(
	providers repo.ProviderRepo,
	services repo.ServiceRepo,
	offerings repo.OfferingRepo,
	addresses repo.AddressRepo,
	appointments repo.AppointmentRepo,
	bus events.Publisher,
	enforceUniqueSlots bool,
) *Service {
	return &Service{
		providers:          providers,
		services:           services,
		offerings:          offerings,
		addresses:          addresses,
		appointments:       appointments,
		bus:                bus,
		enforceUniqueSlots: enforceUniqueSlots,
		now:                time.Now,
	}
}

// CreateAppointment validates the booking request and creates the appointment
// in requested state. Checks run in a fixed order and the first failure wins,
// so a request with several problems always reports the same one.
func (s *Service) CreateAppointment(ctx context.Context, identity domain.Identity, req CreateAppointmentRequest) (*domain.Appointment, error) {
	at, err := time.Parse(time.RFC3339, req.AppointmentAt)
	if err != nil {
		return nil, domain.Errorf(domain.KindValidation, "appointment_at must be a valid RFC 3339 timestamp")
	}
	if at.Before(s.now()) {
		return nil, domain.Errorf(domain.KindValidation, "appointment_at must not be in the past")
	}
	if req.OfferingID == "" || req.ProviderID == "" || req.ServiceID == "" {
		return nil, domain.Errorf(domain.KindValidation, "offering_id, provider_id and service_id are required")
	}
	if req.ServiceAddressID == "" {
		return nil, domain.Errorf(domain.KindValidation, "service_address_id is required")
	}

	po, err := s.offerings.GetPopulated(ctx, req.OfferingID)
	if err != nil {
		return nil, fmt.Errorf("fetch offering: %w", err)
	}
	if po == nil {
		return nil, domain.Errorf(domain.KindNotFound, "offering not found")
	}
	if po.Provider == nil || po.Service == nil {
		return nil, domain.Errorf(domain.KindMismatch, "offering has no linked provider or service")
	}
	if po.Provider.ID != req.ProviderID || po.Service.ID != req.ServiceID {
		return nil, domain.Errorf(domain.KindMismatch, "offering does not belong to the given provider and service")
	}

	if !po.Offering.Bookable() {
		return nil, domain.Errorf(domain.KindIneligible, "offering is not accepting bookings")
	}
	if !po.Provider.PublicEligible() {
		return nil, domain.Errorf(domain.KindIneligible, "provider is not accepting bookings")
	}

	addr, err := s.addresses.GetByID(ctx, req.ServiceAddressID)
	if err != nil {
		return nil, fmt.Errorf("fetch address: %w", err)
	}
	if addr == nil {
		return nil, domain.Errorf(domain.KindNotFound, "service address not found")
	}
	if addr.UserID != identity.UserID {
		return nil, domain.Errorf(domain.KindForbidden, "invalid service address")
	}

	if !availability.Within(po.Offering.Availability, at) {
		return nil, domain.Errorf(domain.KindAvailability, "provider is not available at the requested time")
	}

	selection, hours, err := resolvePricing(&po.Offering, req.PricingSelection, req.EstimatedHours)
	if err != nil {
		return nil, err
	}

	if s.enforceUniqueSlots {
		taken, err := s.appointments.ExistsLiveAt(ctx, po.Offering.ID, at)
		if err != nil {
			return nil, fmt.Errorf("check slot: %w", err)
		}
		if taken {
			return nil, domain.Errorf(domain.KindConflict, "this time slot is already booked")
		}
	}

	created, err := s.appointments.Create(ctx, &domain.Appointment{
		CustomerUserID:   identity.UserID,
		ProviderID:       po.Provider.ID,
		ServiceID:        po.Service.ID,
		OfferingID:       po.Offering.ID,
		ServiceAddressID: addr.ID,
		AppointmentAt:    at,
		Notes:            req.Notes,
		PricingSelection: selection,
		EstimatedHours:   hours,
		Status:           domain.AppointmentRequested,
		CreatedByUserID:  identity.UserID,
		CreatedByEmail:   identity.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	if err := s.bus.Publish(ctx, events.AppointmentRequested, events.AppointmentRequestedEvent{
		AppointmentID:  created.ID,
		CustomerUserID: created.CustomerUserID,
		CustomerEmail:  created.CreatedByEmail,
		ProviderID:     created.ProviderID,
		ServiceName:    po.Service.Name,
		ProviderName:   po.Provider.BusinessName,
		AppointmentAt:  created.AppointmentAt,
		Pricing:        string(created.PricingSelection),
		CreatedAt:      created.CreatedAt,
	}); err != nil {
		logger.ErrorContext(ctx, "publish appointment.requested failed", "error", err, "appointment_id", created.ID)
	}

	return created, nil
}

// resolvePricing applies the offering's pricing mode to the client selection.
// EstimatedHours survives only for an hourly resolution.
func resolvePricing(o *domain.Offering, selection string, estimatedHours *float64) (domain.PricingSelection, *float64, error) {
	var resolved domain.PricingSelection
	switch o.PricingMode {
	case domain.PricingFixed:
		resolved = domain.SelectionFixed
	case domain.PricingHourly:
		resolved = domain.SelectionHourly
	case domain.PricingBoth:
		switch domain.PricingSelection(selection) {
		case domain.SelectionFixed, domain.SelectionHourly:
			resolved = domain.PricingSelection(selection)
		default:
			return "", nil, domain.Errorf(domain.KindValidation, "pricing_selection must be fixed or hourly")
		}
	default:
		return "", nil, domain.Errorf(domain.KindValidation, "offering has an invalid pricing mode")
	}

	if resolved == domain.SelectionHourly {
		if estimatedHours == nil || *estimatedHours <= 0 {
			return "", nil, domain.Errorf(domain.KindValidation, "estimated_hours must be greater than zero for hourly pricing")
		}
		return resolved, estimatedHours, nil
	}
	return resolved, nil, nil
}

// ReviewAppointment moves a requested appointment to accepted or declined.
// Only the provider owning the appointment may review it, and only once; the
// repo's conditional update decides the winner under concurrency.
func (s *Service) ReviewAppointment(ctx context.Context, identity domain.Identity, appointmentID string, req ReviewRequest) (*domain.Appointment, error) {
	var target domain.AppointmentStatus
	switch req.Decision {
	case "accept":
		target = domain.AppointmentAccepted
	case "decline":
		target = domain.AppointmentDeclined
	default:
		return nil, domain.Errorf(domain.KindValidation, "decision must be accept or decline")
	}

	provider, err := s.providers.GetByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetch provider: %w", err)
	}
	if provider == nil {
		return nil, domain.Errorf(domain.KindForbidden, "caller has no provider profile")
	}

	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("fetch appointment: %w", err)
	}
	if appt == nil {
		return nil, domain.Errorf(domain.KindNotFound, "appointment not found")
	}
	if appt.ProviderID != provider.ID {
		return nil, domain.Errorf(domain.KindForbidden, "appointment belongs to a different provider")
	}
	if appt.Status != domain.AppointmentRequested {
		return nil, domain.Errorf(domain.KindConflict, "appointment is already %s", appt.Status)
	}

	at := s.now()
	ok, err := s.appointments.Review(ctx, appointmentID, target, identity.UserID, identity.Email, req.Notes, at)
	if err != nil {
		return nil, fmt.Errorf("review appointment: %w", err)
	}
	if !ok {
		// The pre-check passed but another review won the race.
		return nil, domain.Errorf(domain.KindConflict, "appointment has already been reviewed")
	}

	reviewed, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("reload appointment: %w", err)
	}

	if err := s.bus.Publish(ctx, events.AppointmentReviewed, events.AppointmentReviewedEvent{
		AppointmentID: reviewed.ID,
		ProviderID:    reviewed.ProviderID,
		CustomerEmail: reviewed.CreatedByEmail,
		Decision:      string(target),
		DecisionNotes: req.Notes,
		ReviewedAt:    at,
	}); err != nil {
		logger.ErrorContext(ctx, "publish appointment.reviewed failed", "error", err, "appointment_id", reviewed.ID)
	}

	return reviewed, nil
}

// ListCustomerAppointments returns the caller's appointments, optionally
// narrowed to one status.
func (s *Service) ListCustomerAppointments(ctx context.Context, identity domain.Identity, statusFilter string) ([]domain.AppointmentView, error) {
	status, err := parseStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}
	views, err := s.appointments.ListByCustomer(ctx, identity.UserID, status)
	if err != nil {
		return nil, fmt.Errorf("list customer appointments: %w", err)
	}
	return views, nil
}

// ListProviderAppointments resolves the caller's provider profile and returns
// its appointments.
func (s *Service) ListProviderAppointments(ctx context.Context, identity domain.Identity, statusFilter string) ([]domain.AppointmentView, error) {
	status, err := parseStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}
	provider, err := s.providers.GetByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetch provider: %w", err)
	}
	if provider == nil {
		return nil, domain.Errorf(domain.KindForbidden, "caller has no provider profile")
	}
	views, err := s.appointments.ListByProvider(ctx, provider.ID, status)
	if err != nil {
		return nil, fmt.Errorf("list provider appointments: %w", err)
	}
	return views, nil
}

func parseStatusFilter(s string) (*domain.AppointmentStatus, error) {
	if s == "" {
		return nil, nil
	}
	status, ok := domain.ParseAppointmentStatus(s)
	if !ok {
		return nil, domain.Errorf(domain.KindValidation, "unknown status %q", s)
	}
	return &status, nil
}
