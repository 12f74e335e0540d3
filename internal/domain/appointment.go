package domain

import "time"

type AppointmentStatus string

const (
	AppointmentRequested AppointmentStatus = "requested"
	AppointmentAccepted  AppointmentStatus = "accepted"
	AppointmentDeclined  AppointmentStatus = "declined"
	// Reached only by external flows; the core tolerates them in read paths.
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case AppointmentRequested, AppointmentAccepted, AppointmentDeclined,
		AppointmentCancelled, AppointmentCompleted:
		return AppointmentStatus(s), true
	default:
		return "", false
	}
}

type PricingSelection string

const (
	SelectionFixed  PricingSelection = "fixed"
	SelectionHourly PricingSelection = "hourly"
)

// Appointment is the booking record. Created requested; the owning provider
// moves it to accepted or declined exactly once.
type Appointment struct {
	ID               string            `json:"id"`
	CustomerUserID   string            `json:"customer_user_id"`
	ProviderID       string            `json:"provider_id"`
	ServiceID        string            `json:"service_id"`
	OfferingID       string            `json:"offering_id"`
	ServiceAddressID string            `json:"service_address_id"`
	AppointmentAt    time.Time         `json:"appointment_at"`
	Notes            string            `json:"notes"`
	PricingSelection PricingSelection  `json:"pricing_selection"`
	EstimatedHours   *float64          `json:"estimated_hours,omitempty"`
	Status           AppointmentStatus `json:"status"`
	ReviewedAt       *time.Time        `json:"reviewed_at,omitempty"`
	ReviewedByUserID string            `json:"reviewed_by_user_id,omitempty"`
	ReviewedByEmail  string            `json:"reviewed_by_email,omitempty"`
	DecisionNotes    string            `json:"decision_notes,omitempty"`
	CreatedByUserID  string            `json:"created_by_user_id"`
	CreatedByEmail   string            `json:"created_by_email"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// AppointmentView is the list projection joined with service, provider and
// offering pricing fields.
type AppointmentView struct {
	Appointment
	ServiceName  string      `json:"service_name"`
	ProviderName string      `json:"provider_name"`
	PricingMode  PricingMode `json:"pricing_mode"`
	FixedPrice   *float64    `json:"fixed_price,omitempty"`
	HourlyRate   *float64    `json:"hourly_rate,omitempty"`
}

// CustomerAddress is consumed only to verify ownership before booking.
type CustomerAddress struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Line1  string `json:"line1"`
	City   string `json:"city"`
}

// Identity is the already-authenticated caller.
type Identity struct {
	UserID string
	Email  string
}
