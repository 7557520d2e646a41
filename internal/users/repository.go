package users

import "context"

// Repository persists users. Emails are stored normalized; lookups expect a
// normalized email.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (User, error)
	SetRole(ctx context.Context, id, role string) error
	List(ctx context.Context, limit, offset int) ([]User, error)
}
