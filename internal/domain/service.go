package domain

type ServiceStatus string

const (
	ServiceActive   ServiceStatus = "active"
	ServiceInactive ServiceStatus = "inactive"
)

type PricingMode string

const (
	PricingFixed  PricingMode = "fixed"
	PricingHourly PricingMode = "hourly"
	PricingBoth   PricingMode = "both"
)

func ParsePricingMode(s string) (PricingMode, bool) {
	switch PricingMode(s) {
	case PricingFixed, PricingHourly, PricingBoth:
		return PricingMode(s), true
	default:
		return "", false
	}
}

// Service is a catalog item defined by platform admins. Read-only to the
// core; price ranges bound what providers may charge.
type Service struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	CategoryName  string        `json:"category_name"`
	Status        ServiceStatus `json:"status"`
	PricingMode   PricingMode   `json:"pricing_mode"`
	PriceMin      *float64      `json:"price_min,omitempty"`
	PriceMax      *float64      `json:"price_max,omitempty"`
	HourlyRateMin *float64      `json:"hourly_rate_min,omitempty"`
	HourlyRateMax *float64      `json:"hourly_rate_max,omitempty"`
}
