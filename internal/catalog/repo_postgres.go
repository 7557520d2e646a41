package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"booking-platform/pkg/utils"
)

type PostgresRepository struct {
	db utils.DBTX
}

func NewPostgresRepository(db utils.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const serviceSelect = `SELECT sv.id, sv.business_id, sv.staff_id, sv.name, sv.description, sv.duration_mins,
		sv.price_minor, sv.currency, sv.is_active, sv.created_at, sv.updated_at, b.owner_id
	FROM services sv
	JOIN businesses b ON b.id = sv.business_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanService(row rowScanner) (Service, error) {
	var s Service
	err := row.Scan(&s.ID, &s.BusinessID, &s.StaffID, &s.Name, &s.Description, &s.DurationMins,
		&s.PriceMinor, &s.Currency, &s.IsActive, &s.CreatedAt, &s.UpdatedAt, &s.OwnerID)
	return s, err
}

func (r *PostgresRepository) Create(ctx context.Context, s *Service) error {
	query := `INSERT INTO services (id, business_id, staff_id, name, description, duration_mins, price_minor, currency, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		s.ID, s.BusinessID, s.StaffID, s.Name, s.Description, s.DurationMins, s.PriceMinor, s.Currency, s.IsActive,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if utils.IsUniqueViolation(err, "services_staff_name_key") {
			return ErrDuplicateName
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (Service, error) {
	s, err := scanService(r.db.QueryRowContext(ctx, serviceSelect+` WHERE sv.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Service{}, ErrServiceNotFound
		}
		return Service{}, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]Service, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.BusinessID != "" {
		add("sv.business_id = $%d", f.BusinessID)
	}
	if f.StaffID != "" {
		add("sv.staff_id = $%d", f.StaffID)
	}
	if f.ActiveOnly {
		where = append(where, "sv.is_active")
	}

	query := serviceSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if f.ByName {
		query += " ORDER BY sv.name ASC"
	} else {
		query += " ORDER BY sv.created_at DESC"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s *Service) error {
	query := `UPDATE services SET
			staff_id = $2, name = $3, description = $4, duration_mins = $5,
			price_minor = $6, currency = $7, is_active = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		s.ID, s.StaffID, s.Name, s.Description, s.DurationMins, s.PriceMinor, s.Currency, s.IsActive,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrServiceNotFound
		}
		if utils.IsUniqueViolation(err, "services_staff_name_key") {
			return ErrDuplicateName
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *PostgresRepository) OpenBookings(ctx context.Context, serviceID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM bookings WHERE service_id = $1 AND status IN ('pending', 'confirmed')`, serviceID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
