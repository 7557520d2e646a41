package users

import (
	"context"
	"strings"

	"booking-platform/internal/auth"
)

// Service serves the signed-in user's own profile and the admin listing.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Profile(ctx context.Context, id string) (Profile, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	return u.Profile(), nil
}

// UpdateProfile normalizes names the same way registration does.
func (s *Service) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (Profile, error) {
	if upd.FirstName != nil {
		v := auth.NormalizeName(*upd.FirstName)
		upd.FirstName = &v
	}
	if upd.LastName != nil {
		v := auth.NormalizeName(*upd.LastName)
		upd.LastName = &v
	}
	if upd.PhoneNumber != nil {
		v := strings.TrimSpace(*upd.PhoneNumber)
		upd.PhoneNumber = &v
	}
	if upd.Empty() {
		return s.Profile(ctx, id)
	}

	u, err := s.repo.UpdateProfile(ctx, id, upd)
	if err != nil {
		return Profile{}, err
	}
	return u.Profile(), nil
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

func (s *Service) List(ctx context.Context, limit, offset int) ([]Profile, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	list, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]Profile, 0, len(list))
	for _, u := range list {
		out = append(out, u.Profile())
	}
	return out, nil
}
