package catalog

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository is a mutex-guarded Repository for tests and local runs.
type MemoryRepository struct {
	mu           sync.RWMutex
	services     map[string]Service
	openBookings map[string]int
	owners       func(businessID string) string
}

// NewMemoryRepository takes a lookup from business id to owner id, which the
// postgres repository gets from a join.
func NewMemoryRepository(owners func(businessID string) string) *MemoryRepository {
	return &MemoryRepository{
		services:     make(map[string]Service),
		openBookings: make(map[string]int),
		owners:       owners,
	}
}

func (r *MemoryRepository) SetOpenBookings(serviceID string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.openBookings[serviceID] = n
}

func (r *MemoryRepository) nameTaken(s Service) bool {
	for _, other := range r.services {
		if other.ID != s.ID && other.StaffID == s.StaffID && other.Name == s.Name {
			return true
		}
	}
	return false
}

func (r *MemoryRepository) withOwner(s Service) Service {
	if r.owners != nil {
		s.OwnerID = r.owners(s.BusinessID)
	}
	return s
}

func (r *MemoryRepository) Create(_ context.Context, s *Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTaken(*s) {
		return ErrDuplicateName
	}
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	r.services[s.ID] = *s
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.services[id]
	if !ok {
		return Service{}, ErrServiceNotFound
	}
	return r.withOwner(s), nil
}

func (r *MemoryRepository) List(_ context.Context, f Filter) ([]Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Service{}
	for _, s := range r.services {
		if f.BusinessID != "" && s.BusinessID != f.BusinessID {
			continue
		}
		if f.StaffID != "" && s.StaffID != f.StaffID {
			continue
		}
		if f.ActiveOnly && !s.IsActive {
			continue
		}
		out = append(out, r.withOwner(s))
	}
	sort.Slice(out, func(i, j int) bool {
		if f.ByName {
			return out[i].Name < out[j].Name
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, s *Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[s.ID]; !ok {
		return ErrServiceNotFound
	}
	if r.nameTaken(*s) {
		return ErrDuplicateName
	}
	s.UpdatedAt = time.Now().UTC()
	r.services[s.ID] = *s
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[id]; !ok {
		return ErrServiceNotFound
	}
	delete(r.services, id)
	return nil
}

func (r *MemoryRepository) OpenBookings(_ context.Context, serviceID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.openBookings[serviceID], nil
}
