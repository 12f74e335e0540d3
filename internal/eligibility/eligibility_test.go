package eligibility

import (
	"strings"
	"testing"

	"github.com/Waynenyarky/capstone-booking/internal/domain"
)

func baseProvider() *domain.Provider {
	return &domain.Provider{
		ID:                "p1",
		BusinessName:      "Manila Plumbing Co",
		City:              "Manila",
		Province:          "NCR",
		ServiceAreas:      []string{"Quezon City"},
		ApplicationStatus: domain.ApplicationApproved,
		AccountStatus:     domain.AccountActive,
	}
}

func baseService() *domain.Service {
	return &domain.Service{ID: "s1", Name: "Plumbing", Status: domain.ServiceActive}
}

func baseOffering() *domain.Offering {
	return &domain.Offering{ID: "o1", ProviderID: "p1", ServiceID: "s1", Active: true, Status: domain.OfferingActive}
}

func TestResolveBasePredicate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(p *domain.Provider, s *domain.Service, o *domain.Offering)
		reason string
	}{
		{"offering toggled off", func(p *domain.Provider, s *domain.Service, o *domain.Offering) { o.Active = false }, "offering.active=false"},
		{"offering draft", func(p *domain.Provider, s *domain.Service, o *domain.Offering) { o.Status = domain.OfferingDraft }, "offering.status=draft"},
		{"service inactive", func(p *domain.Provider, s *domain.Service, o *domain.Offering) { s.Status = domain.ServiceInactive }, "service.status=inactive"},
		{"application pending", func(p *domain.Provider, s *domain.Service, o *domain.Offering) { p.ApplicationStatus = domain.ApplicationPending }, "provider.applicationStatus=pending"},
		{"account inactive", func(p *domain.Provider, s *domain.Service, o *domain.Offering) { p.AccountStatus = domain.AccountInactive }, "provider.accountStatus=inactive"},
		{"account deletion pending", func(p *domain.Provider, s *domain.Service, o *domain.Offering) { p.AccountStatus = domain.AccountDeletionPending }, "provider.accountStatus=deletion_pending"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, s, o := baseProvider(), baseService(), baseOffering()
			tc.mutate(p, s, o)
			res := Resolve(p, s, o, Filter{})
			if res.Eligible {
				t.Fatal("expected ineligible")
			}
			if !hasReason(res.Reasons, tc.reason) {
				t.Errorf("reasons %v missing %q", res.Reasons, tc.reason)
			}
		})
	}
}

func TestResolveEligibleWithoutFilter(t *testing.T) {
	res := Resolve(baseProvider(), baseService(), baseOffering(), Filter{})
	if !res.Eligible || len(res.Reasons) != 0 {
		t.Errorf("expected eligible with no reasons, got %+v", res)
	}
	// Account states that do not exclude.
	p := baseProvider()
	p.AccountStatus = domain.AccountPending
	if res := Resolve(p, baseService(), baseOffering(), Filter{}); !res.Eligible {
		t.Errorf("pending account excluded: %v", res.Reasons)
	}
}

func TestResolveCityFilter(t *testing.T) {
	p, s, o := baseProvider(), baseService(), baseOffering()

	if res := Resolve(p, s, o, Filter{City: "Manila"}); !res.Eligible {
		t.Errorf("direct city match failed: %v", res.Reasons)
	}
	// Case-insensitive, trimmed.
	if res := Resolve(p, s, o, Filter{City: "  quezon city "}); !res.Eligible {
		t.Errorf("area match failed: %v", res.Reasons)
	}
	if res := Resolve(p, s, o, Filter{City: "Cebu City"}); res.Eligible {
		t.Error("unmatched city admitted")
	}
}

func TestResolveProvincePrecedence(t *testing.T) {
	p, s, o := baseProvider(), baseService(), baseOffering()

	// Quezon City matched via serviceAreas: the province filter is bypassed
	// even though it names a province the provider is not in.
	if res := Resolve(p, s, o, Filter{City: "Quezon City", Province: "Calabarzon"}); !res.Eligible {
		t.Errorf("area match should bypass province check: %v", res.Reasons)
	}

	// Manila matched directly: the province filter applies and the wrong
	// province excludes.
	res := Resolve(p, s, o, Filter{City: "Manila", Province: "Calabarzon"})
	if res.Eligible {
		t.Fatal("direct city match with wrong province admitted")
	}
	if !hasReason(res.Reasons, "location: province mismatch") {
		t.Errorf("reasons %v missing province mismatch", res.Reasons)
	}

	// Direct match with the right province passes.
	if res := Resolve(p, s, o, Filter{City: "Manila", Province: "NCR"}); !res.Eligible {
		t.Errorf("direct match with correct province failed: %v", res.Reasons)
	}

	// Province alone is enforced when no city filter was given.
	if res := Resolve(p, s, o, Filter{Province: "Calabarzon"}); res.Eligible {
		t.Error("province-only mismatch admitted")
	}
	if res := Resolve(p, s, o, Filter{Province: "ncr"}); !res.Eligible {
		t.Errorf("province-only match failed: %v", res.Reasons)
	}
}

func TestResolveCollectsAllReasons(t *testing.T) {
	p, s, o := baseProvider(), baseService(), baseOffering()
	p.ApplicationStatus = domain.ApplicationRejected
	o.Active = false
	res := Resolve(p, s, o, Filter{City: "Davao"})
	if len(res.Reasons) != 3 {
		t.Errorf("expected 3 reasons, got %v", res.Reasons)
	}
}

func hasReason(reasons []string, want string) bool {
	for _, r := range reasons {
		if strings.Contains(r, want) {
			return true
		}
	}
	return false
}
