package domain

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

type AccountStatus string

const (
	AccountPending         AccountStatus = "pending"
	AccountActive          AccountStatus = "active"
	AccountRejected        AccountStatus = "rejected"
	AccountDeletionPending AccountStatus = "deletion_pending"
	AccountDeleted         AccountStatus = "deleted"
	AccountInactive        AccountStatus = "inactive"
)

// Provider is a service business. Application and account statuses are
// mutated only by the admin review collaborator; the core reads them.
type Provider struct {
	ID                string            `json:"id"`
	UserID            string            `json:"user_id"`
	BusinessName      string            `json:"business_name"`
	City              string            `json:"city"`
	Province          string            `json:"province"`
	ServiceAreas      []string          `json:"service_areas"`
	ApplicationStatus ApplicationStatus `json:"application_status"`
	AccountStatus     AccountStatus     `json:"account_status"`
}

// PublicEligible reports whether the provider may appear in public listings
// and accept bookings: application approved and account not in an excluded
// state.
func (p *Provider) PublicEligible() bool {
	if p.ApplicationStatus != ApplicationApproved {
		return false
	}
	switch p.AccountStatus {
	case AccountInactive, AccountDeleted, AccountDeletionPending, AccountRejected:
		return false
	}
	return true
}
