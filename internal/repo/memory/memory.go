// Package memory is the in-memory storage backend used by tests and dev
// mode, behind the same interfaces as postgres.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Waynenyarky/capstone-booking/internal/domain"
	"github.com/Waynenyarky/capstone-booking/internal/repo"
)

var (
	_ repo.ProviderRepo    = (*ProviderRepo)(nil)
	_ repo.ServiceRepo     = (*ServiceRepo)(nil)
	_ repo.OfferingRepo    = (*OfferingRepo)(nil)
	_ repo.AddressRepo     = (*AddressRepo)(nil)
	_ repo.AppointmentRepo = (*AppointmentRepo)(nil)
)

type Store struct {
	mu           sync.RWMutex
	providers    map[string]*domain.Provider
	services     map[string]*domain.Service
	offerings    map[string]*domain.Offering
	offeringIDs  []string // insertion order for stable listings
	addresses    map[string]*domain.CustomerAddress
	appointments map[string]*domain.Appointment
	apptIDs      []string
}

func NewStore() *Store {
	return &Store{
		providers:    make(map[string]*domain.Provider),
		services:     make(map[string]*domain.Service),
		offerings:    make(map[string]*domain.Offering),
		addresses:    make(map[string]*domain.CustomerAddress),
		appointments: make(map[string]*domain.Appointment),
	}
}

// Seed helpers. IDs are generated when empty.

func (s *Store) AddProvider(p domain.Provider) domain.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.providers[p.ID] = &p
	return p
}

func (s *Store) AddService(sv domain.Service) domain.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sv.ID == "" {
		sv.ID = uuid.NewString()
	}
	s.services[sv.ID] = &sv
	return sv
}

func (s *Store) AddOffering(o domain.Offering) domain.Offering {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	s.offerings[o.ID] = &o
	s.offeringIDs = append(s.offeringIDs, o.ID)
	return o
}

func (s *Store) AddAddress(a domain.CustomerAddress) domain.CustomerAddress {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.addresses[a.ID] = &a
	return a
}

// Repo accessors. Each returns a view satisfying one interface from the repo
// package, backed by the same store and lock.

func (s *Store) Providers() *ProviderRepo       { return &ProviderRepo{s} }
func (s *Store) Services() *ServiceRepo         { return &ServiceRepo{s} }
func (s *Store) Offerings() *OfferingRepo       { return &OfferingRepo{s} }
func (s *Store) Addresses() *AddressRepo        { return &AddressRepo{s} }
func (s *Store) Appointments() *AppointmentRepo { return &AppointmentRepo{s} }

type ProviderRepo struct{ s *Store }

func (r *ProviderRepo) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if p, ok := r.s.providers[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *ProviderRepo) GetByUserID(ctx context.Context, userID string) (*domain.Provider, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.providers {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

type ServiceRepo struct{ s *Store }

func (r *ServiceRepo) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if sv, ok := r.s.services[id]; ok {
		cp := *sv
		return &cp, nil
	}
	return nil, nil
}

type OfferingRepo struct{ s *Store }

func (r *OfferingRepo) GetByID(ctx context.Context, id string) (*domain.Offering, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if o, ok := r.s.offerings[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (r *OfferingRepo) GetPopulated(ctx context.Context, id string) (*domain.PopulatedOffering, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.offerings[id]
	if !ok {
		return nil, nil
	}
	return r.s.populateLocked(o), nil
}

func (s *Store) populateLocked(o *domain.Offering) *domain.PopulatedOffering {
	po := &domain.PopulatedOffering{Offering: *o}
	if p, ok := s.providers[o.ProviderID]; ok {
		cp := *p
		po.Provider = &cp
	}
	if sv, ok := s.services[o.ServiceID]; ok {
		cp := *sv
		po.Service = &cp
	}
	return po
}

func (r *OfferingRepo) ListActivePopulated(ctx context.Context) ([]domain.PopulatedOffering, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.PopulatedOffering
	for _, id := range r.s.offeringIDs {
		o := r.s.offerings[id]
		if !o.Active || o.Status != domain.OfferingActive {
			continue
		}
		out = append(out, *r.s.populateLocked(o))
	}
	return out, nil
}

func (r *OfferingRepo) ListAllPopulated(ctx context.Context) ([]domain.PopulatedOffering, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.PopulatedOffering
	for _, id := range r.s.offeringIDs {
		out = append(out, *r.s.populateLocked(r.s.offerings[id]))
	}
	return out, nil
}

func (r *OfferingRepo) Update(ctx context.Context, o *domain.Offering) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *o
	cp.UpdatedAt = time.Now()
	r.s.offerings[o.ID] = &cp
	return nil
}

type AddressRepo struct{ s *Store }

func (r *AddressRepo) GetByID(ctx context.Context, id string) (*domain.CustomerAddress, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if a, ok := r.s.addresses[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

type AppointmentRepo struct{ s *Store }

func (r *AppointmentRepo) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *a
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	now := time.Now()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	r.s.appointments[cp.ID] = &cp
	r.s.apptIDs = append(r.s.apptIDs, cp.ID)
	out := cp
	return &out, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if a, ok := r.s.appointments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *AppointmentRepo) Review(ctx context.Context, id string, status domain.AppointmentStatus, reviewerUserID, reviewerEmail, notes string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.appointments[id]
	if !ok || a.Status != domain.AppointmentRequested {
		return false, nil
	}
	a.Status = status
	a.ReviewedAt = &at
	a.ReviewedByUserID = reviewerUserID
	a.ReviewedByEmail = reviewerEmail
	a.DecisionNotes = notes
	a.UpdatedAt = at
	return true, nil
}

func (r *AppointmentRepo) ListByCustomer(ctx context.Context, customerUserID string, status *domain.AppointmentStatus) ([]domain.AppointmentView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.AppointmentView
	for _, id := range r.s.apptIDs {
		a := r.s.appointments[id]
		if a.CustomerUserID != customerUserID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		out = append(out, r.s.viewLocked(a))
	}
	return out, nil
}

func (r *AppointmentRepo) ListByProvider(ctx context.Context, providerID string, status *domain.AppointmentStatus) ([]domain.AppointmentView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.AppointmentView
	for _, id := range r.s.apptIDs {
		a := r.s.appointments[id]
		if a.ProviderID != providerID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		out = append(out, r.s.viewLocked(a))
	}
	return out, nil
}

func (s *Store) viewLocked(a *domain.Appointment) domain.AppointmentView {
	v := domain.AppointmentView{Appointment: *a}
	if sv, ok := s.services[a.ServiceID]; ok {
		v.ServiceName = sv.Name
	}
	if p, ok := s.providers[a.ProviderID]; ok {
		v.ProviderName = p.BusinessName
	}
	if o, ok := s.offerings[a.OfferingID]; ok {
		v.PricingMode = o.PricingMode
		v.FixedPrice = o.FixedPrice
		v.HourlyRate = o.HourlyRate
	}
	return v
}

func (r *AppointmentRepo) ExistsLiveAt(ctx context.Context, offeringID string, at time.Time) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.appointments {
		if a.OfferingID == offeringID && a.AppointmentAt.Equal(at) &&
			(a.Status == domain.AppointmentRequested || a.Status == domain.AppointmentAccepted) {
			return true, nil
		}
	}
	return false, nil
}
