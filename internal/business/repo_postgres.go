package business

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"booking-platform/internal/users"
	"booking-platform/pkg/utils"
)

type PostgresRepository struct {
	db utils.DBTX
}

func NewPostgresRepository(db utils.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const businessColumns = `id, owner_id, name, description, email, phone_number, address, city, country, timezone, currency, business_hours, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBusiness(row rowScanner) (Business, error) {
	var (
		b     Business
		hours []byte
	)
	err := row.Scan(&b.ID, &b.OwnerID, &b.Name, &b.Description, &b.Email, &b.PhoneNumber,
		&b.Address, &b.City, &b.Country, &b.Timezone, &b.Currency, &hours, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return Business{}, err
	}
	if len(hours) > 0 {
		if err := json.Unmarshal(hours, &b.Hours); err != nil {
			return Business{}, fmt.Errorf("decode business_hours: %w", err)
		}
	}
	return b, nil
}

func encodeHours(h Hours) (string, error) {
	if h == nil {
		return "{}", nil
	}
	b, err := json.Marshal(h)
	if err != nil {
		return "", fmt.Errorf("encode business_hours: %w", err)
	}
	return string(b), nil
}

func (r *PostgresRepository) CreateBusiness(ctx context.Context, b *Business) error {
	hours, err := encodeHours(b.Hours)
	if err != nil {
		return err
	}
	query := `INSERT INTO businesses (id, owner_id, name, description, email, phone_number, address, city, country, timezone, currency, business_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	err = r.db.QueryRowContext(ctx, query,
		b.ID, b.OwnerID, b.Name, b.Description, b.Email, b.PhoneNumber,
		b.Address, b.City, b.Country, b.Timezone, b.Currency, hours,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if utils.IsUniqueViolation(err, "businesses_owner_id_key") {
			return ErrBusinessExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetBusinessByOwner(ctx context.Context, ownerID string) (Business, error) {
	b, err := scanBusiness(r.db.QueryRowContext(ctx, `SELECT `+businessColumns+` FROM businesses WHERE owner_id = $1`, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Business{}, ErrBusinessNotFound
		}
		return Business{}, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (r *PostgresRepository) UpdateBusiness(ctx context.Context, b *Business) error {
	hours, err := encodeHours(b.Hours)
	if err != nil {
		return err
	}
	query := `UPDATE businesses SET
			name = $2, description = $3, email = $4, phone_number = $5, address = $6,
			city = $7, country = $8, timezone = $9, currency = $10, business_hours = $11,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err = r.db.QueryRowContext(ctx, query,
		b.ID, b.Name, b.Description, b.Email, b.PhoneNumber, b.Address,
		b.City, b.Country, b.Timezone, b.Currency, hours,
	).Scan(&b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBusinessNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CountsForBusiness(ctx context.Context, businessID string) (Counts, error) {
	query := `SELECT
			(SELECT count(*) FROM staff WHERE business_id = $1),
			(SELECT count(*) FROM services WHERE business_id = $1),
			(SELECT count(*) FROM bookings WHERE business_id = $1)`

	var c Counts
	if err := r.db.QueryRowContext(ctx, query, businessID).Scan(&c.Staff, &c.Services, &c.Bookings); err != nil {
		return Counts{}, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

const staffSelect = `SELECT s.id, s.user_id, s.business_id, s.position, s.bio, s.is_active, s.created_at, s.updated_at,
		u.id, u.email, u.first_name, u.last_name, u.phone_number, u.role, u.is_email_verified,
		b.owner_id
	FROM staff s
	JOIN users u ON u.id = s.user_id
	JOIN businesses b ON b.id = s.business_id`

func staffDest(s *Staff) []any {
	return []any{
		&s.ID, &s.UserID, &s.BusinessID, &s.Position, &s.Bio, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		&s.User.ID, &s.User.Email, &s.User.FirstName, &s.User.LastName, &s.User.PhoneNumber, &s.User.Role, &s.User.IsEmailVerified,
		&s.OwnerID,
	}
}

func (r *PostgresRepository) getStaff(ctx context.Context, where string, args ...any) (Staff, error) {
	var s Staff
	if err := r.db.QueryRowContext(ctx, staffSelect+" "+where, args...).Scan(staffDest(&s)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Staff{}, ErrStaffNotFound
		}
		return Staff{}, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) GetStaff(ctx context.Context, id string) (Staff, error) {
	return r.getStaff(ctx, `WHERE s.id = $1`, id)
}

func (r *PostgresRepository) FindStaffByEmail(ctx context.Context, businessID, email string) (Staff, error) {
	return r.getStaff(ctx, `WHERE s.business_id = $1 AND u.email = $2`, businessID, email)
}

func (r *PostgresRepository) ListStaff(ctx context.Context, businessID string) ([]StaffListing, error) {
	query := `SELECT s.id, s.user_id, s.business_id, s.position, s.bio, s.is_active, s.created_at, s.updated_at,
			u.id, u.email, u.first_name, u.last_name, u.phone_number, u.role, u.is_email_verified,
			b.owner_id,
			(SELECT count(*) FROM services sv WHERE sv.staff_id = s.id),
			(SELECT count(*) FROM bookings bk WHERE bk.staff_id = s.id)
		FROM staff s
		JOIN users u ON u.id = s.user_id
		JOIN businesses b ON b.id = s.business_id
		WHERE s.business_id = $1
		ORDER BY s.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []StaffListing
	for rows.Next() {
		var l StaffListing
		dest := append(staffDest(&l.Staff), &l.Counts.Services, &l.Counts.Bookings)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) CreateStaff(ctx context.Context, s *Staff) error {
	query := `INSERT INTO staff (id, user_id, business_id, position, bio, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, s.ID, s.UserID, s.BusinessID, s.Position, s.Bio, s.IsActive).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if utils.IsUniqueViolation(err, "staff_user_business_key") {
			return ErrAlreadyStaff
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateStaff(ctx context.Context, s *Staff) error {
	query := `UPDATE staff SET position = $2, bio = $3, is_active = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	if err := r.db.QueryRowContext(ctx, query, s.ID, s.Position, s.Bio, s.IsActive).Scan(&s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrStaffNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteStaff(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return ErrStaffNotFound
	}
	return nil
}

func (r *PostgresRepository) OpenBookingsForStaff(ctx context.Context, staffID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM bookings WHERE staff_id = $1 AND status IN ('pending', 'confirmed')`, staffID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// PostgresStore runs business and user writes against one connection or
// transaction.
type PostgresStore struct {
	db *sql.DB
	q  utils.DBTX
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, q: db}
}

func (s *PostgresStore) Businesses() Repository { return NewPostgresRepository(s.q) }

func (s *PostgresStore) Users() users.Repository { return users.NewPostgresRepository(s.q) }

// WithTx nests: a store already bound to a transaction reuses it.
func (s *PostgresStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	if s.db == nil {
		return fn(ctx, s)
	}
	return utils.WithTx(ctx, s.db, nil, func(ctx context.Context, tx utils.DBTX) error {
		return fn(ctx, &PostgresStore{q: tx})
	})
}
