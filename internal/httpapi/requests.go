package httpapi

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"booking-platform/internal/business"
	"booking-platform/internal/catalog"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

func (r *registerRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.By(strongPassword)),
		validation.Field(&r.FirstName, validation.Length(2, 50)),
		validation.Field(&r.LastName, validation.Length(2, 50)),
		validation.Field(&r.PhoneNumber, validation.Length(10, 15)),
	)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *loginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

const minPasswordLen = 5

var errWeakPassword = errors.New("please provide a stronger password")

// strongPassword wants at least one lower, upper, digit and symbol.
func strongPassword(value interface{}) error {
	s, _ := value.(string)
	if len(s) < minPasswordLen {
		return errWeakPassword
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	if !lower || !upper || !digit || !symbol {
		return errWeakPassword
	}
	return nil
}

type updateProfileRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
}

func (r *updateProfileRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FirstName, validation.NilOrNotEmpty, validation.Length(2, 50)),
		validation.Field(&r.LastName, validation.NilOrNotEmpty, validation.Length(2, 50)),
		validation.Field(&r.PhoneNumber, validation.NilOrNotEmpty, validation.Length(10, 15)),
	)
}

type createBusinessRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Email       string         `json:"email"`
	PhoneNumber string         `json:"phone_number"`
	Address     string         `json:"address"`
	City        string         `json:"city"`
	Country     string         `json:"country"`
	Timezone    string         `json:"timezone"`
	Currency    string         `json:"currency"`
	Hours       business.Hours `json:"business_hours"`
}

func (r *createBusinessRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Description, validation.Length(0, 500)),
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.Currency, validation.Length(3, 3)),
		validation.Field(&r.Hours, validation.By(validHours)),
	)
}

type updateBusinessRequest struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Email       *string        `json:"email"`
	PhoneNumber *string        `json:"phone_number"`
	Address     *string        `json:"address"`
	City        *string        `json:"city"`
	Country     *string        `json:"country"`
	Timezone    *string        `json:"timezone"`
	Currency    *string        `json:"currency"`
	Hours       business.Hours `json:"business_hours"`
}

func (r *updateBusinessRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(2, 100)),
		validation.Field(&r.Description, validation.Length(0, 500)),
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.Currency, validation.Length(3, 3)),
		validation.Field(&r.Hours, validation.By(validHours)),
	)
}

var clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func validHours(value interface{}) error {
	h, _ := value.(business.Hours)
	for day, dh := range h {
		if !slices.Contains(business.Weekdays, day) {
			return fmt.Errorf("unknown day %q", day)
		}
		if dh.Closed {
			continue
		}
		if !clockRe.MatchString(dh.Open) || !clockRe.MatchString(dh.Close) {
			return fmt.Errorf("%s: open and close must be HH:MM", day)
		}
		if dh.Open >= dh.Close {
			return fmt.Errorf("%s: open must be before close", day)
		}
	}
	return nil
}

type inviteStaffRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Bio       string `json:"bio"`
}

func (r *inviteStaffRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.FirstName, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.LastName, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.Position, validation.Length(0, 100)),
		validation.Field(&r.Bio, validation.Length(0, 500)),
	)
}

type updateStaffRequest struct {
	Position *string `json:"position"`
	Bio      *string `json:"bio"`
	IsActive *bool   `json:"is_active"`
}

func (r *updateStaffRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Position, validation.Length(0, 100)),
		validation.Field(&r.Bio, validation.Length(0, 500)),
	)
}

type createServiceRequest struct {
	StaffID      string `json:"staff_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	DurationMins int    `json:"duration_mins"`
	Price        int64  `json:"price"`
	Currency     string `json:"currency"`
}

func (r *createServiceRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.StaffID, validation.Required, is.UUID),
		validation.Field(&r.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Description, validation.Length(0, 500)),
		validation.Field(&r.DurationMins, validation.Required,
			validation.Min(catalog.MinDurationMins), validation.Max(catalog.MaxDurationMins)),
		validation.Field(&r.Price, validation.Min(0)),
		validation.Field(&r.Currency, validation.Length(3, 3)),
	)
}

type updateServiceRequest struct {
	StaffID      *string `json:"staff_id"`
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	DurationMins *int    `json:"duration_mins"`
	Price        *int64  `json:"price"`
	Currency     *string `json:"currency"`
	IsActive     *bool   `json:"is_active"`
}

func (r *updateServiceRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.StaffID, validation.NilOrNotEmpty, is.UUID),
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(2, 100)),
		validation.Field(&r.Description, validation.Length(0, 500)),
		validation.Field(&r.DurationMins, validation.Min(catalog.MinDurationMins), validation.Max(catalog.MaxDurationMins)),
		validation.Field(&r.Price, validation.Min(0)),
		validation.Field(&r.Currency, validation.Length(3, 3)),
	)
}
