package catalog

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidArgument = errors.New("invalid argument")

	ErrServiceNotFound = fmt.Errorf("%w: service not found", ErrNotFound)
	ErrDuplicateName   = fmt.Errorf("%w: service with this name already exists for this staff member", ErrConflict)
	ErrNotYourService  = fmt.Errorf("%w: you can only manage services of your own business", ErrForbidden)
	ErrStaffNotInBiz   = fmt.Errorf("%w: staff member not found or does not belong to your business", ErrInvalidArgument)
	ErrStaffInactive   = fmt.Errorf("%w: cannot assign services to inactive staff", ErrInvalidArgument)
)

const (
	MinDurationMins = 5
	MaxDurationMins = 480
	DefaultCurrency = "NGN"
)

// Service is a bookable offering performed by one staff member. Price is in
// minor currency units (kobo for NGN).
type Service struct {
	ID           string    `json:"id"`
	BusinessID   string    `json:"business_id"`
	StaffID      string    `json:"staff_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	DurationMins int       `json:"duration_mins"`
	PriceMinor   int64     `json:"price"`
	Currency     string    `json:"currency"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// OwnerID is the owner of BusinessID; used for ownership checks only.
	OwnerID string `json:"-"`
}

type NewService struct {
	StaffID      string
	Name         string
	Description  string
	DurationMins int
	PriceMinor   int64
	Currency     string
}

// Update is a partial update; nil fields are left untouched.
type Update struct {
	StaffID      *string
	Name         *string
	Description  *string
	DurationMins *int
	PriceMinor   *int64
	Currency     *string
	IsActive     *bool
}

// Filter selects services for listing.
type Filter struct {
	BusinessID string
	StaffID    string
	ActiveOnly bool
	// ByName orders by name instead of newest first.
	ByName bool
}

type RemoveResult struct {
	Message     string `json:"message"`
	Deactivated bool   `json:"deactivated"`
}
