package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"booking-platform/internal/business"

	"github.com/google/uuid"
)

// Ownership answers which business an owner runs and where a staff member
// works. business.Service satisfies it.
type Ownership interface {
	OwnedBusiness(ctx context.Context, ownerID string) (business.Business, error)
	StaffMember(ctx context.Context, staffID string) (business.Staff, error)
}

type Catalog struct {
	repo Repository
	own  Ownership
}

func NewCatalog(repo Repository, own Ownership) *Catalog {
	return &Catalog{repo: repo, own: own}
}

func (c *Catalog) Create(ctx context.Context, ownerID string, in NewService) (Service, error) {
	b, err := c.own.OwnedBusiness(ctx, ownerID)
	if err != nil {
		return Service{}, err
	}
	if err := c.checkStaff(ctx, b.ID, in.StaffID); err != nil {
		return Service{}, err
	}

	s := Service{
		ID:           uuid.NewString(),
		BusinessID:   b.ID,
		StaffID:      in.StaffID,
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		DurationMins: in.DurationMins,
		PriceMinor:   in.PriceMinor,
		Currency:     currencyOrDefault(in.Currency),
		IsActive:     true,
		OwnerID:      ownerID,
	}
	if err := validate(s); err != nil {
		return Service{}, err
	}
	if err := c.repo.Create(ctx, &s); err != nil {
		return Service{}, err
	}
	return s, nil
}

// List returns active services, newest first, optionally narrowed to one
// business or staff member.
func (c *Catalog) List(ctx context.Context, businessID, staffID string) ([]Service, error) {
	if !validID(businessID, true) || !validID(staffID, true) {
		return []Service{}, nil
	}
	return c.repo.List(ctx, Filter{BusinessID: businessID, StaffID: staffID, ActiveOnly: true})
}

func (c *Catalog) ByBusiness(ctx context.Context, businessID string) ([]Service, error) {
	if !validID(businessID, false) {
		return []Service{}, nil
	}
	return c.repo.List(ctx, Filter{BusinessID: businessID, ActiveOnly: true, ByName: true})
}

func (c *Catalog) ByStaff(ctx context.Context, staffID string) ([]Service, error) {
	if !validID(staffID, false) {
		return []Service{}, nil
	}
	return c.repo.List(ctx, Filter{StaffID: staffID, ActiveOnly: true, ByName: true})
}

func (c *Catalog) Get(ctx context.Context, id string) (Service, error) {
	if !validID(id, false) {
		return Service{}, ErrServiceNotFound
	}
	return c.repo.Get(ctx, id)
}

func (c *Catalog) Update(ctx context.Context, ownerID, id string, upd Update) (Service, error) {
	s, err := c.owned(ctx, ownerID, id)
	if err != nil {
		return Service{}, err
	}

	if upd.StaffID != nil && *upd.StaffID != s.StaffID {
		if err := c.checkStaff(ctx, s.BusinessID, *upd.StaffID); err != nil {
			return Service{}, err
		}
		s.StaffID = *upd.StaffID
	}
	if upd.Name != nil {
		s.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Description != nil {
		s.Description = *upd.Description
	}
	if upd.DurationMins != nil {
		s.DurationMins = *upd.DurationMins
	}
	if upd.PriceMinor != nil {
		s.PriceMinor = *upd.PriceMinor
	}
	if upd.Currency != nil {
		s.Currency = currencyOrDefault(*upd.Currency)
	}
	if upd.IsActive != nil {
		s.IsActive = *upd.IsActive
	}
	if err := validate(s); err != nil {
		return Service{}, err
	}

	if err := c.repo.Update(ctx, &s); err != nil {
		return Service{}, err
	}
	return s, nil
}

func (c *Catalog) Toggle(ctx context.Context, ownerID, id string) (Service, error) {
	s, err := c.owned(ctx, ownerID, id)
	if err != nil {
		return Service{}, err
	}
	s.IsActive = !s.IsActive
	if err := c.repo.Update(ctx, &s); err != nil {
		return Service{}, err
	}
	return s, nil
}

// Remove deletes the service, or deactivates it while it has pending or
// confirmed bookings.
func (c *Catalog) Remove(ctx context.Context, ownerID, id string) (RemoveResult, error) {
	s, err := c.owned(ctx, ownerID, id)
	if err != nil {
		return RemoveResult{}, err
	}

	open, err := c.repo.OpenBookings(ctx, s.ID)
	if err != nil {
		return RemoveResult{}, err
	}
	if open > 0 {
		s.IsActive = false
		if err := c.repo.Update(ctx, &s); err != nil {
			return RemoveResult{}, err
		}
		return RemoveResult{Message: "service deactivated (has active bookings)", Deactivated: true}, nil
	}

	if err := c.repo.Delete(ctx, s.ID); err != nil {
		return RemoveResult{}, err
	}
	return RemoveResult{Message: "service deleted successfully"}, nil
}

func (c *Catalog) owned(ctx context.Context, ownerID, id string) (Service, error) {
	s, err := c.Get(ctx, id)
	if err != nil {
		return Service{}, err
	}
	if s.OwnerID != ownerID {
		return Service{}, ErrNotYourService
	}
	return s, nil
}

func (c *Catalog) checkStaff(ctx context.Context, businessID, staffID string) error {
	st, err := c.own.StaffMember(ctx, staffID)
	if err != nil {
		if errors.Is(err, business.ErrNotFound) {
			return ErrStaffNotInBiz
		}
		return err
	}
	if st.BusinessID != businessID {
		return ErrStaffNotInBiz
	}
	if !st.IsActive {
		return ErrStaffInactive
	}
	return nil
}

func validate(s Service) error {
	switch {
	case len(s.Name) < 2 || len(s.Name) > 100:
		return fmt.Errorf("%w: name must be 2 to 100 characters", ErrInvalidArgument)
	case s.DurationMins < MinDurationMins || s.DurationMins > MaxDurationMins:
		return fmt.Errorf("%w: duration must be between %d and %d minutes", ErrInvalidArgument, MinDurationMins, MaxDurationMins)
	case s.PriceMinor < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalidArgument)
	}
	return nil
}

func currencyOrDefault(c string) string {
	if c = strings.ToUpper(strings.TrimSpace(c)); c == "" {
		return DefaultCurrency
	}
	return c
}

func validID(id string, allowEmpty bool) bool {
	if id == "" {
		return allowEmpty
	}
	_, err := uuid.Parse(id)
	return err == nil
}
