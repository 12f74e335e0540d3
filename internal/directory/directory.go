// Package directory builds the public offering catalog. Every row it returns
// has already passed the eligibility rule; category and search narrowing
// happen after eligibility so a filter can never resurrect a hidden offering.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Waynenyarky/capstone-booking/internal/domain"
	"github.com/Waynenyarky/capstone-booking/internal/eligibility"
	"github.com/Waynenyarky/capstone-booking/internal/repo"
	"github.com/Waynenyarky/capstone-booking/pkg/cache"
	"github.com/Waynenyarky/capstone-booking/pkg/logger"
)

// Query is the directory filter set. All fields are optional and matched
// case-insensitively.
type Query struct {
	City     string
	Province string
	Category string
	Search   string
}

type Service struct {
	offerings repo.OfferingRepo
	cache     *cache.Store // nil disables caching
	cacheTTL  time.Duration
}

func NewService(offerings repo.OfferingRepo, store *cache.Store, cacheTTL time.Duration) *Service {
	return &Service{offerings: offerings, cache: store, cacheTTL: cacheTTL}
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cacheKey(q Query) string {
	return fmt.Sprintf("directory:%s|%s|%s|%s",
		norm(q.City), norm(q.Province), norm(q.Category), norm(q.Search))
}

// List returns the public catalog matching q, newest data first from storage
// order. Offerings with a dangling provider or service link are dropped
// silently rather than surfaced half-populated.
func (s *Service) List(ctx context.Context, q Query) ([]domain.PublicOffering, error) {
	key := cacheKey(q)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err != nil {
			logger.WarnContext(ctx, "directory cache read failed", "error", err)
		} else if raw != "" {
			var cached []domain.PublicOffering
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	populated, err := s.offerings.ListActivePopulated(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PublicOffering, 0, len(populated))
	for i := range populated {
		po := &populated[i]
		if po.Provider == nil || po.Service == nil {
			continue
		}
		res := eligibility.Resolve(po.Provider, po.Service, &po.Offering, eligibility.Filter{
			City:     q.City,
			Province: q.Province,
		})
		if !res.Eligible {
			continue
		}
		if !matchCategory(po.Service, q.Category) {
			continue
		}
		if !matchSearch(po.Service, po.Provider, q.Search) {
			continue
		}
		out = append(out, toPublic(po))
	}

	if s.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
				logger.WarnContext(ctx, "directory cache write failed", "error", err)
			}
		}
	}
	return out, nil
}

// matchCategory is an exact case-insensitive comparison against the service's
// category name, not a substring test.
func matchCategory(svc *domain.Service, category string) bool {
	q := norm(category)
	if q == "" {
		return true
	}
	return norm(svc.CategoryName) == q
}

// matchSearch accepts the row when the term is a substring of the service
// name or the provider's business name.
func matchSearch(svc *domain.Service, p *domain.Provider, search string) bool {
	q := norm(search)
	if q == "" {
		return true
	}
	return strings.Contains(norm(svc.Name), q) || strings.Contains(norm(p.BusinessName), q)
}

func toPublic(po *domain.PopulatedOffering) domain.PublicOffering {
	o := po.Offering
	return domain.PublicOffering{
		ID:                   o.ID,
		ServiceID:            po.Service.ID,
		ServiceName:          po.Service.Name,
		CategoryName:         po.Service.CategoryName,
		ProviderID:           po.Provider.ID,
		ProviderName:         po.Provider.BusinessName,
		ProviderCity:         po.Provider.City,
		ProviderProvince:     po.Provider.Province,
		ProviderServiceAreas: po.Provider.ServiceAreas,
		PricingMode:          o.PricingMode,
		FixedPrice:           o.FixedPrice,
		HourlyRate:           o.HourlyRate,
		Availability:         o.Availability,
		EmergencyAvailable:   o.EmergencyAvailable,
		ProviderDescription:  o.ProviderDescription,
	}
}
