package business

import (
	"context"

	"booking-platform/internal/users"
)

// Repository persists businesses and their staff.
type Repository interface {
	CreateBusiness(ctx context.Context, b *Business) error
	GetBusinessByOwner(ctx context.Context, ownerID string) (Business, error)
	UpdateBusiness(ctx context.Context, b *Business) error
	CountsForBusiness(ctx context.Context, businessID string) (Counts, error)

	CreateStaff(ctx context.Context, s *Staff) error
	GetStaff(ctx context.Context, id string) (Staff, error)
	FindStaffByEmail(ctx context.Context, businessID, email string) (Staff, error)
	ListStaff(ctx context.Context, businessID string) ([]StaffListing, error)
	UpdateStaff(ctx context.Context, s *Staff) error
	DeleteStaff(ctx context.Context, id string) error
	OpenBookingsForStaff(ctx context.Context, staffID string) (int, error)
}

// Store groups the repositories the business flows write to and runs them
// in one transaction when needed.
type Store interface {
	Businesses() Repository
	Users() users.Repository
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
