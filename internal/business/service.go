package business

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"booking-platform/internal/audit"
	"booking-platform/internal/auth"
	"booking-platform/internal/rbac"
	"booking-platform/internal/users"

	"github.com/google/uuid"
)

// Service owns the business profile and staff membership flows. Every
// method takes the caller's user id; ownership is checked here, the role
// requirement is checked by the route gate.
type Service struct {
	store Store
	audit *audit.Service
	log   *slog.Logger

	// hashPassword is swappable so tests avoid argon2 cost.
	hashPassword func(string) (string, error)
}

func NewService(store Store, auditSvc *audit.Service, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, audit: auditSvc, log: log, hashPassword: auth.HashPassword}
}

func (s *Service) Create(ctx context.Context, ownerID string, in NewBusiness) (Business, error) {
	if _, err := s.store.Businesses().GetBusinessByOwner(ctx, ownerID); err == nil {
		return Business{}, ErrBusinessExists
	} else if !errors.Is(err, ErrNotFound) {
		return Business{}, err
	}

	b := Business{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Email:       auth.NormalizeEmail(in.Email),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Address:     in.Address,
		City:        in.City,
		Country:     orDefault(in.Country, DefaultCountry),
		Timezone:    orDefault(in.Timezone, DefaultTimezone),
		Currency:    strings.ToUpper(orDefault(in.Currency, DefaultCurrency)),
		Hours:       in.Hours,
	}
	if len(b.Hours) == 0 {
		b.Hours = DefaultHours()
	}

	if err := s.store.Businesses().CreateBusiness(ctx, &b); err != nil {
		return Business{}, err
	}
	return b, nil
}

func (s *Service) Update(ctx context.Context, ownerID string, upd Update) (Business, error) {
	b, err := s.store.Businesses().GetBusinessByOwner(ctx, ownerID)
	if err != nil {
		return Business{}, err
	}

	setString(&b.Name, upd.Name, strings.TrimSpace)
	setString(&b.Description, upd.Description, nil)
	setString(&b.Email, upd.Email, auth.NormalizeEmail)
	setString(&b.PhoneNumber, upd.PhoneNumber, strings.TrimSpace)
	setString(&b.Address, upd.Address, nil)
	setString(&b.City, upd.City, nil)
	setString(&b.Country, upd.Country, nil)
	setString(&b.Timezone, upd.Timezone, nil)
	setString(&b.Currency, upd.Currency, strings.ToUpper)
	if upd.Hours != nil {
		if b.Hours == nil {
			b.Hours = Hours{}
		}
		for day, h := range upd.Hours {
			b.Hours[day] = h
		}
	}

	if err := s.store.Businesses().UpdateBusiness(ctx, &b); err != nil {
		return Business{}, err
	}
	return b, nil
}

func (s *Service) Profile(ctx context.Context, ownerID string) (Profile, error) {
	b, err := s.store.Businesses().GetBusinessByOwner(ctx, ownerID)
	if err != nil {
		return Profile{}, err
	}
	counts, err := s.store.Businesses().CountsForBusiness(ctx, b.ID)
	if err != nil {
		return Profile{}, err
	}
	p := Profile{Business: b, Counts: counts}
	if owner, err := s.store.Users().GetByID(ctx, ownerID); err == nil {
		p.Owner = OwnerSummary{FirstName: owner.FirstName, LastName: owner.LastName, Email: owner.Email}
	} else if !errors.Is(err, users.ErrNotFound) {
		return Profile{}, err
	}
	return p, nil
}

// OwnedBusiness returns the business owned by ownerID.
func (s *Service) OwnedBusiness(ctx context.Context, ownerID string) (Business, error) {
	return s.store.Businesses().GetBusinessByOwner(ctx, ownerID)
}

// StaffMember returns a staff row with its owning business.
func (s *Service) StaffMember(ctx context.Context, staffID string) (Staff, error) {
	if _, err := uuid.Parse(staffID); err != nil {
		return Staff{}, ErrStaffNotFound
	}
	return s.store.Businesses().GetStaff(ctx, staffID)
}

// InviteStaff attaches a user to the owner's business as staff. An existing
// regular user is promoted to staff; an unknown email gets a new unverified
// staff account with a random temporary password. Owners and admins keep
// their role.
func (s *Service) InviteStaff(ctx context.Context, actor audit.Actor, in InviteInput) (Staff, error) {
	email := auth.NormalizeEmail(in.Email)

	b, err := s.store.Businesses().GetBusinessByOwner(ctx, actor.UserID)
	if err != nil {
		return Staff{}, err
	}

	if _, err := s.store.Businesses().FindStaffByEmail(ctx, b.ID, email); err == nil {
		return Staff{}, ErrAlreadyStaff
	} else if !errors.Is(err, ErrNotFound) {
		return Staff{}, err
	}

	existing, err := s.store.Users().GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.ID == actor.UserID {
			return Staff{}, ErrInviteSelf
		}
	case errors.Is(err, users.ErrNotFound):
		existing = users.User{}
	default:
		return Staff{}, err
	}

	// Hash outside the transaction; argon2 is slow on purpose.
	var tempHash string
	if existing.ID == "" {
		tempHash, err = s.hashPassword(temporaryPassword())
		if err != nil {
			return Staff{}, fmt.Errorf("hash temporary password: %w", err)
		}
	}

	staff := Staff{
		ID:         uuid.NewString(),
		BusinessID: b.ID,
		Position:   strings.TrimSpace(in.Position),
		Bio:        in.Bio,
		IsActive:   true,
		OwnerID:    b.OwnerID,
	}
	var (
		newUser  bool
		prevRole string
	)

	err = s.store.WithTx(ctx, func(ctx context.Context, tx Store) error {
		if existing.ID != "" {
			staff.UserID = existing.ID
			if existing.Role == rbac.RoleRegular {
				if err := tx.Users().SetRole(ctx, existing.ID, rbac.RoleStaff); err != nil {
					return fmt.Errorf("promote to staff: %w", err)
				}
				prevRole = existing.Role
				existing.Role = rbac.RoleStaff
			}
		} else {
			u := &users.User{
				ID:           uuid.NewString(),
				Email:        email,
				PasswordHash: tempHash,
				FirstName:    auth.NormalizeName(in.FirstName),
				LastName:     auth.NormalizeName(in.LastName),
				Role:         rbac.RoleStaff,
			}
			if err := tx.Users().Create(ctx, u); err != nil {
				if errors.Is(err, users.ErrEmailTaken) {
					return ErrAlreadyStaff
				}
				return fmt.Errorf("create staff user: %w", err)
			}
			existing = *u
			staff.UserID = u.ID
			newUser = true
		}
		return tx.Businesses().CreateStaff(ctx, &staff)
	})
	if err != nil {
		return Staff{}, err
	}

	staff.User = StaffUser{
		ID:              existing.ID,
		Email:           existing.Email,
		FirstName:       existing.FirstName,
		LastName:        existing.LastName,
		Role:            existing.Role,
		IsEmailVerified: existing.IsEmailVerified,
	}

	s.log.InfoContext(ctx, "staff invited", "business_id", b.ID, "staff_id", staff.ID, "new_user", newUser)
	if s.audit != nil {
		s.audit.LogStaffInvited(ctx, b.ID, actor, staff.ID, staff.UserID, newUser)
		if prevRole != "" {
			s.audit.LogRoleChanged(ctx, b.ID, actor, staff.UserID, prevRole, rbac.RoleStaff)
		}
	}
	return staff, nil
}

func (s *Service) ListStaff(ctx context.Context, ownerID string) ([]StaffListing, error) {
	b, err := s.store.Businesses().GetBusinessByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	list, err := s.store.Businesses().ListStaff(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []StaffListing{}
	}
	return list, nil
}

func (s *Service) UpdateStaff(ctx context.Context, ownerID, staffID string, upd StaffUpdate) (Staff, error) {
	st, err := s.ownedStaff(ctx, ownerID, staffID)
	if err != nil {
		return Staff{}, err
	}
	if upd.Position != nil {
		st.Position = strings.TrimSpace(*upd.Position)
	}
	if upd.Bio != nil {
		st.Bio = *upd.Bio
	}
	if upd.IsActive != nil {
		st.IsActive = *upd.IsActive
	}
	if err := s.store.Businesses().UpdateStaff(ctx, &st); err != nil {
		return Staff{}, err
	}
	return st, nil
}

// RemoveStaff deletes the staff row, or only deactivates it while the staff
// has pending or confirmed bookings. The user's role is left as is.
func (s *Service) RemoveStaff(ctx context.Context, actor audit.Actor, staffID string) (RemoveResult, error) {
	st, err := s.ownedStaff(ctx, actor.UserID, staffID)
	if err != nil {
		return RemoveResult{}, err
	}

	open, err := s.store.Businesses().OpenBookingsForStaff(ctx, st.ID)
	if err != nil {
		return RemoveResult{}, err
	}

	res := RemoveResult{Message: "staff removed successfully"}
	if open > 0 {
		st.IsActive = false
		if err := s.store.Businesses().UpdateStaff(ctx, &st); err != nil {
			return RemoveResult{}, err
		}
		res = RemoveResult{Message: "staff deactivated (has active bookings)", Deactivated: true}
	} else if err := s.store.Businesses().DeleteStaff(ctx, st.ID); err != nil {
		return RemoveResult{}, err
	}

	if s.audit != nil {
		s.audit.LogStaffRemoved(ctx, st.BusinessID, actor, st.ID, st.UserID, res.Deactivated)
	}
	return res, nil
}

func (s *Service) ownedStaff(ctx context.Context, ownerID, staffID string) (Staff, error) {
	st, err := s.StaffMember(ctx, staffID)
	if err != nil {
		return Staff{}, err
	}
	if st.OwnerID != ownerID {
		return Staff{}, ErrNotYourStaff
	}
	return st, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

func setString(dst *string, v *string, norm func(string) string) {
	if v == nil {
		return
	}
	if norm != nil {
		*dst = norm(*v)
		return
	}
	*dst = *v
}

func temporaryPassword() string {
	b := make([]byte, 18)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
