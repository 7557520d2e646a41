package business

import (
	"context"
	"sort"
	"sync"
	"time"

	"booking-platform/internal/users"
)

// MemoryStore is an in-memory Store for tests and local runs. WithTx does
// not roll back.
type MemoryStore struct {
	repo  *MemoryRepository
	users *users.MemoryRepository
}

func NewMemoryStore(u *users.MemoryRepository) *MemoryStore {
	return &MemoryStore{repo: NewMemoryRepository(u), users: u}
}

func (s *MemoryStore) Businesses() Repository { return s.repo }

func (s *MemoryStore) Users() users.Repository { return s.users }

func (s *MemoryStore) Repository() *MemoryRepository { return s.repo }

func (s *MemoryStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	return fn(ctx, s)
}

// MemoryRepository keeps businesses and staff in maps. Service and booking
// counts are fed by tests through SetCounts and SetOpenBookings.
type MemoryRepository struct {
	mu           sync.RWMutex
	users        *users.MemoryRepository
	businesses   map[string]Business
	staff        map[string]Staff
	extraCounts  map[string]Counts
	openBookings map[string]int
}

func NewMemoryRepository(u *users.MemoryRepository) *MemoryRepository {
	return &MemoryRepository{
		users:        u,
		businesses:   make(map[string]Business),
		staff:        make(map[string]Staff),
		extraCounts:  make(map[string]Counts),
		openBookings: make(map[string]int),
	}
}

func (r *MemoryRepository) SetCounts(businessID string, c Counts) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extraCounts[businessID] = c
}

func (r *MemoryRepository) SetOpenBookings(staffID string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.openBookings[staffID] = n
}

// OwnerOf returns the owner id of a business, or "" if it does not exist.
// It matches the owner lookup catalog.NewMemoryRepository takes.
func (r *MemoryRepository) OwnerOf(businessID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.businesses[businessID].OwnerID
}

func (r *MemoryRepository) CreateBusiness(_ context.Context, b *Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.businesses {
		if existing.OwnerID == b.OwnerID {
			return ErrBusinessExists
		}
	}
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now
	r.businesses[b.ID] = *b
	return nil
}

func (r *MemoryRepository) GetBusinessByOwner(_ context.Context, ownerID string) (Business, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.businesses {
		if b.OwnerID == ownerID {
			return b, nil
		}
	}
	return Business{}, ErrBusinessNotFound
}

func (r *MemoryRepository) UpdateBusiness(_ context.Context, b *Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.businesses[b.ID]; !ok {
		return ErrBusinessNotFound
	}
	b.UpdatedAt = time.Now().UTC()
	r.businesses[b.ID] = *b
	return nil
}

func (r *MemoryRepository) CountsForBusiness(_ context.Context, businessID string) (Counts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := r.extraCounts[businessID]
	c.Staff = 0
	for _, s := range r.staff {
		if s.BusinessID == businessID {
			c.Staff++
		}
	}
	return c, nil
}

func (r *MemoryRepository) hydrate(ctx context.Context, s Staff) Staff {
	if u, err := r.users.GetByID(ctx, s.UserID); err == nil {
		s.User = StaffUser{
			ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName,
			PhoneNumber: u.PhoneNumber, Role: u.Role, IsEmailVerified: u.IsEmailVerified,
		}
	}
	if b, ok := r.businesses[s.BusinessID]; ok {
		s.OwnerID = b.OwnerID
	}
	return s
}

func (r *MemoryRepository) CreateStaff(ctx context.Context, s *Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.staff {
		if existing.UserID == s.UserID && existing.BusinessID == s.BusinessID {
			return ErrAlreadyStaff
		}
	}
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	r.staff[s.ID] = *s
	return nil
}

func (r *MemoryRepository) GetStaff(ctx context.Context, id string) (Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.staff[id]
	if !ok {
		return Staff{}, ErrStaffNotFound
	}
	return r.hydrate(ctx, s), nil
}

func (r *MemoryRepository) FindStaffByEmail(ctx context.Context, businessID, email string) (Staff, error) {
	u, err := r.users.GetByEmail(ctx, email)
	if err != nil {
		return Staff{}, ErrStaffNotFound
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.staff {
		if s.BusinessID == businessID && s.UserID == u.ID {
			return r.hydrate(ctx, s), nil
		}
	}
	return Staff{}, ErrStaffNotFound
}

func (r *MemoryRepository) ListStaff(ctx context.Context, businessID string) ([]StaffListing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []StaffListing
	for _, s := range r.staff {
		if s.BusinessID == businessID {
			out = append(out, StaffListing{Staff: r.hydrate(ctx, s)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepository) UpdateStaff(_ context.Context, s *Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.staff[s.ID]
	if !ok {
		return ErrStaffNotFound
	}
	cur.Position, cur.Bio, cur.IsActive = s.Position, s.Bio, s.IsActive
	cur.UpdatedAt = time.Now().UTC()
	s.UpdatedAt = cur.UpdatedAt
	r.staff[s.ID] = cur
	return nil
}

func (r *MemoryRepository) DeleteStaff(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.staff[id]; !ok {
		return ErrStaffNotFound
	}
	delete(r.staff, id)
	return nil
}

func (r *MemoryRepository) OpenBookingsForStaff(_ context.Context, staffID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.openBookings[staffID], nil
}
