package catalog

import "context"

type Repository interface {
	Create(ctx context.Context, s *Service) error
	Get(ctx context.Context, id string) (Service, error)
	List(ctx context.Context, f Filter) ([]Service, error)
	Update(ctx context.Context, s *Service) error
	Delete(ctx context.Context, id string) error
	OpenBookings(ctx context.Context, serviceID string) (int, error)
}
