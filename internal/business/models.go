package business

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

	ErrBusinessNotFound = fmt.Errorf("%w: business not found, set up your business first", ErrNotFound)
	ErrBusinessExists   = fmt.Errorf("%w: you already have a business set up", ErrConflict)
	ErrStaffNotFound    = fmt.Errorf("%w: staff member not found", ErrNotFound)
	ErrAlreadyStaff     = fmt.Errorf("%w: already a staff member", ErrConflict)
	ErrNotYourStaff     = fmt.Errorf("%w: you can only manage staff of your own business", ErrForbidden)
	ErrInviteSelf       = fmt.Errorf("%w: you cannot invite yourself as staff", ErrInvalidArgument)
)

const (
	DefaultCountry  = "Nigeria"
	DefaultTimezone = "Africa/Lagos"
	DefaultCurrency = "NGN"
)

// DayHours is the opening window for one weekday. Times are HH:MM in the
// business timezone.
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// Hours maps lowercase weekday names to their opening window.
type Hours map[string]DayHours

var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func DefaultHours() Hours {
	weekday := DayHours{Open: "09:00", Close: "17:00"}
	return Hours{
		"monday":    weekday,
		"tuesday":   weekday,
		"wednesday": weekday,
		"thursday":  weekday,
		"friday":    weekday,
		"saturday":  {Open: "10:00", Close: "14:00"},
		"sunday":    {Open: "00:00", Close: "00:00", Closed: true},
	}
}

type Business struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Timezone    string    `json:"timezone"`
	Currency    string    `json:"currency"`
	Hours       Hours     `json:"business_hours"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Counts struct {
	Staff    int `json:"staff"`
	Services int `json:"services"`
	Bookings int `json:"bookings"`
}

type OwnerSummary struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Profile is the owner's view of their business.
type Profile struct {
	Business
	Owner  OwnerSummary `json:"owner"`
	Counts Counts       `json:"_count"`
}

// NewBusiness is the create input; empty location fields take defaults.
type NewBusiness struct {
	Name        string
	Description string
	Email       string
	PhoneNumber string
	Address     string
	City        string
	Country     string
	Timezone    string
	Currency    string
	Hours       Hours
}

// Update is a partial update; nil fields are left untouched.
type Update struct {
	Name        *string
	Description *string
	Email       *string
	PhoneNumber *string
	Address     *string
	City        *string
	Country     *string
	Timezone    *string
	Currency    *string
	Hours       Hours
}

type StaffUser struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	Role            string `json:"role"`
	IsEmailVerified bool   `json:"is_email_verified"`
}

type Staff struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	BusinessID string    `json:"business_id"`
	Position   string    `json:"position"`
	Bio        string    `json:"bio"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	User       StaffUser `json:"user"`

	// OwnerID is the owner of BusinessID; used for ownership checks only.
	OwnerID string `json:"-"`
}

type StaffListing struct {
	Staff
	Counts struct {
		Services int `json:"services"`
		Bookings int `json:"bookings"`
	} `json:"_count"`
}

type InviteInput struct {
	Email     string
	FirstName string
	LastName  string
	Position  string
	Bio       string
}

type StaffUpdate struct {
	Position *string
	Bio      *string
	IsActive *bool
}

// RemoveResult reports whether the staff row was deleted or only
// deactivated because of open bookings.
type RemoveResult struct {
	Message     string `json:"message"`
	Deactivated bool   `json:"deactivated"`
}
