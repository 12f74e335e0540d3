package booking

import (
	"context"
	"fmt"

	"github.com/Waynenyarky/capstone-booking/internal/availability"
	"github.com/Waynenyarky/capstone-booking/internal/domain"
	"github.com/Waynenyarky/capstone-booking/pkg/events"
	"github.com/Waynenyarky/capstone-booking/pkg/logger"
)

var weekdayKeys = map[string]bool{
	"mon": true, "tue": true, "wed": true, "thu": true,
	"fri": true, "sat": true, "sun": true,
}

// UpdateOffering applies a provider's edit to their own offering. Pricing
// changes are validated against the parent service's mode and admin price
// ranges; availability entries must carry well-formed times with start before
// end.
func (s *Service) UpdateOffering(ctx context.Context, identity domain.Identity, offeringID string, patch domain.OfferingPatch) (*domain.Offering, error) {
	provider, err := s.providers.GetByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetch provider: %w", err)
	}
	if provider == nil {
		return nil, domain.Errorf(domain.KindForbidden, "caller has no provider profile")
	}

	po, err := s.offerings.GetPopulated(ctx, offeringID)
	if err != nil {
		return nil, fmt.Errorf("fetch offering: %w", err)
	}
	if po == nil {
		return nil, domain.Errorf(domain.KindNotFound, "offering not found")
	}
	if po.Offering.ProviderID != provider.ID {
		return nil, domain.Errorf(domain.KindForbidden, "offering belongs to a different provider")
	}
	if po.Service == nil {
		return nil, domain.Errorf(domain.KindMismatch, "offering has no linked service")
	}

	o := po.Offering

	if patch.PricingMode != nil {
		mode, ok := domain.ParsePricingMode(*patch.PricingMode)
		if !ok {
			return nil, domain.Errorf(domain.KindValidation, "pricing_mode must be fixed, hourly or both")
		}
		o.PricingMode = mode
	}
	if patch.FixedPrice != nil {
		o.FixedPrice = patch.FixedPrice
	}
	if patch.HourlyRate != nil {
		o.HourlyRate = patch.HourlyRate
	}
	if patch.Availability != nil {
		if err := validateAvailability(*patch.Availability); err != nil {
			return nil, err
		}
		o.Availability = *patch.Availability
	}
	if patch.EmergencyAvailable != nil {
		o.EmergencyAvailable = *patch.EmergencyAvailable
	}
	if patch.ProviderDescription != nil {
		o.ProviderDescription = *patch.ProviderDescription
	}
	if patch.Active != nil {
		o.Active = *patch.Active
	}
	if patch.Status != nil {
		switch domain.OfferingStatus(*patch.Status) {
		case domain.OfferingDraft, domain.OfferingActive, domain.OfferingInactive:
			o.Status = domain.OfferingStatus(*patch.Status)
		default:
			return nil, domain.Errorf(domain.KindValidation, "status must be draft, active or inactive")
		}
	}

	if err := validatePricing(&o, po.Service); err != nil {
		return nil, err
	}

	if err := s.offerings.Update(ctx, &o); err != nil {
		return nil, fmt.Errorf("update offering: %w", err)
	}

	if err := s.bus.Publish(ctx, events.OfferingUpdated, events.OfferingUpdatedEvent{
		OfferingID: o.ID,
		ProviderID: o.ProviderID,
		Active:     o.Active,
		Status:     string(o.Status),
		UpdatedAt:  o.UpdatedAt,
	}); err != nil {
		logger.ErrorContext(ctx, "publish offering.updated failed", "error", err, "offering_id", o.ID)
	}

	return &o, nil
}

// validatePricing enforces mode compatibility with the parent service and the
// admin price ranges. A fixed-only service admits only fixed offerings, an
// hourly-only service only hourly; "both" admits any mode.
func validatePricing(o *domain.Offering, svc *domain.Service) error {
	switch svc.PricingMode {
	case domain.PricingFixed:
		if o.PricingMode != domain.PricingFixed {
			return domain.Errorf(domain.KindValidation, "service %q only allows fixed pricing", svc.Name)
		}
	case domain.PricingHourly:
		if o.PricingMode != domain.PricingHourly {
			return domain.Errorf(domain.KindValidation, "service %q only allows hourly pricing", svc.Name)
		}
	}

	needsFixed := o.PricingMode == domain.PricingFixed || o.PricingMode == domain.PricingBoth
	needsHourly := o.PricingMode == domain.PricingHourly || o.PricingMode == domain.PricingBoth

	if needsFixed {
		if o.FixedPrice == nil {
			return domain.Errorf(domain.KindValidation, "fixed_price is required for this pricing mode")
		}
		if err := inRange("fixed_price", *o.FixedPrice, svc.PriceMin, svc.PriceMax); err != nil {
			return err
		}
	}
	if needsHourly {
		if o.HourlyRate == nil {
			return domain.Errorf(domain.KindValidation, "hourly_rate is required for this pricing mode")
		}
		if err := inRange("hourly_rate", *o.HourlyRate, svc.HourlyRateMin, svc.HourlyRateMax); err != nil {
			return err
		}
	}
	return nil
}

func inRange(field string, v float64, min, max *float64) error {
	if v <= 0 {
		return domain.Errorf(domain.KindValidation, "%s must be greater than zero", field)
	}
	if min != nil && v < *min {
		return domain.Errorf(domain.KindValidation, "%s is below the allowed minimum of %.2f", field, *min)
	}
	if max != nil && v > *max {
		return domain.Errorf(domain.KindValidation, "%s is above the allowed maximum of %.2f", field, *max)
	}
	return nil
}

func validateAvailability(days []domain.DayAvailability) error {
	for _, d := range days {
		if !weekdayKeys[d.Day] {
			return domain.Errorf(domain.KindValidation, "unknown weekday %q", d.Day)
		}
		if !d.Available {
			continue
		}
		if d.StartTime == "" && d.EndTime == "" {
			continue // whole day open
		}
		if d.StartTime == "" || d.EndTime == "" {
			return domain.Errorf(domain.KindValidation, "%s: start_time and end_time must both be set", d.Day)
		}
		start, ok := availability.ParseClock(d.StartTime)
		if !ok {
			return domain.Errorf(domain.KindValidation, "%s: start_time must be HH:mm", d.Day)
		}
		end, ok := availability.ParseClock(d.EndTime)
		if !ok {
			return domain.Errorf(domain.KindValidation, "%s: end_time must be HH:mm", d.Day)
		}
		if start >= end {
			return domain.Errorf(domain.KindValidation, "%s: start_time must be before end_time", d.Day)
		}
	}
	return nil
}
