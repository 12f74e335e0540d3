package domain

import "time"

type OfferingStatus string

const (
	OfferingDraft    OfferingStatus = "draft"
	OfferingActive   OfferingStatus = "active"
	OfferingInactive OfferingStatus = "inactive"
)

// DayAvailability is one weekday entry of an offering's schedule. Times are
// "HH:mm" strings; when both are empty and the day is available, the whole
// day is open.
type DayAvailability struct {
	Day       string `json:"day"` // mon..sun
	Available bool   `json:"available"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

// Offering joins exactly one Provider to one Service. The (provider, service)
// pair is unique.
type Offering struct {
	ID                  string            `json:"id"`
	ProviderID          string            `json:"provider_id"`
	ServiceID           string            `json:"service_id"`
	PricingMode         PricingMode       `json:"pricing_mode"`
	FixedPrice          *float64          `json:"fixed_price,omitempty"`
	HourlyRate          *float64          `json:"hourly_rate,omitempty"`
	Availability        []DayAvailability `json:"availability"`
	EmergencyAvailable  bool              `json:"emergency_available"`
	ProviderDescription string            `json:"provider_description"`
	Active              bool              `json:"active"`
	Status              OfferingStatus    `json:"status"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// Bookable reports whether the offering itself accepts bookings. Provider and
// service state are checked separately.
func (o *Offering) Bookable() bool {
	return o.Active && o.Status == OfferingActive
}

// PopulatedOffering carries an offering with its linked provider and service
// resolved in one fetch. Either link may be nil when the referenced record is
// gone.
type PopulatedOffering struct {
	Offering Offering
	Provider *Provider
	Service  *Service
}

// PublicOffering is the directory listing row shown to customers.
type PublicOffering struct {
	ID                  string            `json:"id"`
	ServiceID           string            `json:"service_id"`
	ServiceName         string            `json:"service_name"`
	CategoryName        string            `json:"category_name"`
	ProviderID          string            `json:"provider_id"`
	ProviderName        string            `json:"provider_name"`
	ProviderCity        string            `json:"provider_city"`
	ProviderProvince    string            `json:"provider_province"`
	ProviderServiceAreas []string         `json:"provider_service_areas"`
	PricingMode         PricingMode       `json:"pricing_mode"`
	FixedPrice          *float64          `json:"fixed_price,omitempty"`
	HourlyRate          *float64          `json:"hourly_rate,omitempty"`
	Availability        []DayAvailability `json:"availability"`
	EmergencyAvailable  bool              `json:"emergency_available"`
	ProviderDescription string            `json:"provider_description"`
}

// OfferingPatch is a provider edit to an offering. Nil fields are left
// unchanged.
type OfferingPatch struct {
	PricingMode         *string            `json:"pricing_mode,omitempty"`
	FixedPrice          *float64           `json:"fixed_price,omitempty"`
	HourlyRate          *float64           `json:"hourly_rate,omitempty"`
	Availability        *[]DayAvailability `json:"availability,omitempty"`
	EmergencyAvailable  *bool              `json:"emergency_available,omitempty"`
	ProviderDescription *string            `json:"provider_description,omitempty"`
	Active              *bool              `json:"active,omitempty"`
	Status              *string            `json:"status,omitempty"`
}
