package directory

import (
	"context"
	"testing"

	"github.com/Waynenyarky/capstone-booking/internal/domain"
	"github.com/Waynenyarky/capstone-booking/internal/repo/memory"
)

func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()

	plumbingCo := store.AddProvider(domain.Provider{
		BusinessName:      "QuickFix Plumbing",
		City:              "Manila",
		Province:          "Metro Manila",
		ServiceAreas:      []string{"Quezon City", "Makati"},
		ApplicationStatus: domain.ApplicationApproved,
		AccountStatus:     domain.AccountActive,
	})
	cleaningCo := store.AddProvider(domain.Provider{
		BusinessName:      "Sparkle Cleaners",
		City:              "Cebu City",
		Province:          "Cebu",
		ApplicationStatus: domain.ApplicationApproved,
		AccountStatus:     domain.AccountActive,
	})
	pendingCo := store.AddProvider(domain.Provider{
		BusinessName:      "Pending Pros",
		City:              "Manila",
		Province:          "Metro Manila",
		ApplicationStatus: domain.ApplicationPending,
		AccountStatus:     domain.AccountActive,
	})

	plumbing := store.AddService(domain.Service{
		Name:         "Pipe Repair",
		CategoryName: "Plumbing",
		Status:       domain.ServiceActive,
		PricingMode:  domain.PricingBoth,
	})
	cleaning := store.AddService(domain.Service{
		Name:         "Deep Cleaning",
		CategoryName: "Cleaning",
		Status:       domain.ServiceActive,
		PricingMode:  domain.PricingFixed,
	})
	retired := store.AddService(domain.Service{
		Name:         "Chimney Sweep",
		CategoryName: "Cleaning",
		Status:       domain.ServiceInactive,
	})

	store.AddOffering(domain.Offering{
		ProviderID: plumbingCo.ID, ServiceID: plumbing.ID,
		PricingMode: domain.PricingFixed, Active: true, Status: domain.OfferingActive,
	})
	store.AddOffering(domain.Offering{
		ProviderID: cleaningCo.ID, ServiceID: cleaning.ID,
		PricingMode: domain.PricingFixed, Active: true, Status: domain.OfferingActive,
	})
	// Inactive service: must never appear.
	store.AddOffering(domain.Offering{
		ProviderID: cleaningCo.ID, ServiceID: retired.ID,
		Active: true, Status: domain.OfferingActive,
	})
	// Unapproved provider: must never appear.
	store.AddOffering(domain.Offering{
		ProviderID: pendingCo.ID, ServiceID: plumbing.ID,
		Active: true, Status: domain.OfferingActive,
	})
	// Deactivated offering.
	store.AddOffering(domain.Offering{
		ProviderID: plumbingCo.ID, ServiceID: cleaning.ID,
		Active: false, Status: domain.OfferingActive,
	})
	// Dangling provider link.
	store.AddOffering(domain.Offering{
		ProviderID: "gone", ServiceID: plumbing.ID,
		Active: true, Status: domain.OfferingActive,
	})

	return store
}

func newTestService(store *memory.Store) *Service {
	return NewService(store.Offerings(), nil, 0)
}

func names(rows []domain.PublicOffering) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ProviderName+"/"+r.ServiceName)
	}
	return out
}

func TestListBasePredicate(t *testing.T) {
	svc := newTestService(seedStore(t))

	rows, err := svc.List(context.Background(), Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 eligible offerings, got %d: %v", len(rows), names(rows))
	}
	for _, r := range rows {
		if r.ProviderName == "Pending Pros" {
			t.Errorf("unapproved provider leaked into listing")
		}
		if r.ServiceName == "Chimney Sweep" {
			t.Errorf("inactive service leaked into listing")
		}
	}
}

func TestListIsIdempotent(t *testing.T) {
	svc := newTestService(seedStore(t))
	q := Query{Category: "Plumbing"}

	first, err := svc.List(context.Background(), q)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	second, err := svc.List(context.Background(), q)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got, want := names(second), names(first)
	if len(got) != len(want) {
		t.Fatalf("result changed between calls: %v vs %v", want, got)
	}
	seen := make(map[string]bool, len(want))
	for _, n := range want {
		seen[n] = true
	}
	for _, n := range got {
		if !seen[n] {
			t.Fatalf("result changed between calls: %v vs %v", want, got)
		}
	}
}

func TestListExcludedAccountStatusRemovesProvider(t *testing.T) {
	store := seedStore(t)
	svc := newTestService(store)

	before, err := svc.List(context.Background(), Query{Search: "quickfix"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(before) != 1 {
		t.Fatalf("expected QuickFix before deactivation, got %v", names(before))
	}

	p := before[0]
	store.AddProvider(domain.Provider{
		ID:                p.ProviderID,
		BusinessName:      p.ProviderName,
		City:              p.ProviderCity,
		Province:          p.ProviderProvince,
		ServiceAreas:      p.ProviderServiceAreas,
		ApplicationStatus: domain.ApplicationApproved,
		AccountStatus:     domain.AccountDeletionPending,
	})

	for _, q := range []Query{{}, {Search: "quickfix"}, {City: "Manila"}, {Category: "Plumbing"}} {
		rows, err := svc.List(context.Background(), q)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		for _, r := range rows {
			if r.ProviderID == p.ProviderID {
				t.Fatalf("deactivated provider still listed under %+v", q)
			}
		}
	}
}

func TestListAreaMatchBypassesProvince(t *testing.T) {
	svc := newTestService(seedStore(t))

	// Quezon City is only in QuickFix's service areas; the conventional
	// province of Quezon City differs from the provider's home province, and
	// that must not exclude the row.
	rows, err := svc.List(context.Background(), Query{City: "quezon city", Province: "Calabarzon"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 1 || rows[0].ProviderName != "QuickFix Plumbing" {
		t.Fatalf("expected QuickFix via service area, got %v", names(rows))
	}
}

func TestListDirectCityEnforcesProvince(t *testing.T) {
	svc := newTestService(seedStore(t))

	rows, err := svc.List(context.Background(), Query{City: "Manila", Province: "Cebu"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("direct city match with wrong province should exclude, got %v", names(rows))
	}

	rows, err = svc.List(context.Background(), Query{City: "Manila", Province: "Metro Manila"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 1 || rows[0].ProviderName != "QuickFix Plumbing" {
		t.Fatalf("expected QuickFix for Manila/Metro Manila, got %v", names(rows))
	}
}

func TestListCategoryExactMatch(t *testing.T) {
	svc := newTestService(seedStore(t))

	rows, err := svc.List(context.Background(), Query{Category: "cleaning"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 1 || rows[0].ServiceName != "Deep Cleaning" {
		t.Fatalf("expected Deep Cleaning only, got %v", names(rows))
	}

	// Substrings are not category matches.
	rows, err = svc.List(context.Background(), Query{Category: "clean"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("partial category should match nothing, got %v", names(rows))
	}
}

func TestListSearchCoversServiceAndProviderName(t *testing.T) {
	svc := newTestService(seedStore(t))

	rows, err := svc.List(context.Background(), Query{Search: "pipe"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 1 || rows[0].ServiceName != "Pipe Repair" {
		t.Fatalf("expected search hit on service name, got %v", names(rows))
	}

	rows, err = svc.List(context.Background(), Query{Search: "SPARKLE"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 1 || rows[0].ProviderName != "Sparkle Cleaners" {
		t.Fatalf("expected search hit on business name, got %v", names(rows))
	}

	rows, err = svc.List(context.Background(), Query{Search: "nonexistent"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no hits, got %v", names(rows))
	}
}
