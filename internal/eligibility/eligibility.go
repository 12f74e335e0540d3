// Package eligibility holds the single public-visibility rule for offerings.
// Both the directory and the booking path resolve through here so the
// province handling cannot diverge between call sites.
package eligibility

import (
	"fmt"
	"strings"

	"github.com/Waynenyarky/capstone-booking/internal/domain"
)

// Filter is an optional location query.
type Filter struct {
	City     string
	Province string
}

// Result carries the decision plus reason strings for diagnostics. The
// booking path only looks at Eligible.
type Result struct {
	Eligible bool
	Reasons  []string
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Resolve applies the base predicate and the location filter.
//
// Province precedence: the province comparison is enforced only when no city
// filter was given, or when the city filter matched the provider's own city.
// A city matched through service areas bypasses the province check, so a
// provider whose area reaches into a city outside their home province is not
// excluded by that city's conventional province.
func Resolve(p *domain.Provider, s *domain.Service, o *domain.Offering, f Filter) Result {
	var reasons []string

	if !o.Active {
		reasons = append(reasons, "offering.active=false")
	}
	if o.Status != domain.OfferingActive {
		reasons = append(reasons, fmt.Sprintf("offering.status=%s", o.Status))
	}
	if s.Status != domain.ServiceActive {
		reasons = append(reasons, fmt.Sprintf("service.status=%s", s.Status))
	}
	if p.ApplicationStatus != domain.ApplicationApproved {
		reasons = append(reasons, fmt.Sprintf("provider.applicationStatus=%s", p.ApplicationStatus))
	}
	switch p.AccountStatus {
	case domain.AccountInactive, domain.AccountDeleted, domain.AccountDeletionPending, domain.AccountRejected:
		reasons = append(reasons, fmt.Sprintf("provider.accountStatus=%s", p.AccountStatus))
	}

	qCity := norm(f.City)
	qProvince := norm(f.Province)

	cityMatchDirect := false
	cityMatchArea := false
	if qCity != "" {
		cityMatchDirect = norm(p.City) == qCity
		for _, area := range p.ServiceAreas {
			if norm(area) == qCity {
				cityMatchArea = true
				break
			}
		}
		if !cityMatchDirect && !cityMatchArea {
			reasons = append(reasons, "location: city not matched (city nor serviceAreas)")
		}
	}
	if qProvince != "" {
		checkProvince := qCity == "" || cityMatchDirect
		if checkProvince && norm(p.Province) != qProvince {
			reasons = append(reasons, "location: province mismatch")
		}
	}

	return Result{Eligible: len(reasons) == 0, Reasons: reasons}
}
