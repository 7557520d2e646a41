package business

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var businessCols = []string{"id", "owner_id", "name", "description", "email", "phone_number", "address", "city", "country", "timezone", "currency", "business_hours", "created_at", "updated_at"}

func TestCreateBusiness_OwnerConflict(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+businesses`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "businesses_owner_id_key"})

	err := repo.CreateBusiness(context.Background(), &Business{ID: "b1", OwnerID: "o1", Name: "x"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestGetBusinessByOwner_DecodesHours(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`(?s)FROM\s+businesses\s+WHERE\s+owner_id\s*=\s*\$1`).
		WithArgs("o1").
		WillReturnRows(sqlmock.NewRows(businessCols).AddRow(
			"b1", "o1", "Fade Lab", "", "", "", "", "Lagos", "Nigeria", "Africa/Lagos", "NGN",
			[]byte(`{"monday":{"open":"09:00","close":"17:00","closed":false}}`), now, now))

	b, err := repo.GetBusinessByOwner(context.Background(), "o1")
	if err != nil {
		t.Fatalf("GetBusinessByOwner: %v", err)
	}
	if b.Hours["monday"].Close != "17:00" {
		t.Fatalf("unexpected hours %+v", b.Hours)
	}
}

func TestGetBusinessByOwner_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+businesses`).WillReturnError(sql.ErrNoRows)
	if _, err := repo.GetBusinessByOwner(context.Background(), "o1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestOpenBookingsForStaff(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+count\(\*\)\s+FROM\s+bookings\s+WHERE\s+staff_id\s*=\s*\$1\s+AND\s+status\s+IN`).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.OpenBookingsForStaff(context.Background(), "s1")
	if err != nil || n != 3 {
		t.Fatalf("expected 3 open bookings, got %d %v", n, err)
	}
}

func TestDeleteStaff_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+staff\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.DeleteStaff(context.Background(), "s1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestPostgresStore_WithTxRollsBackOnStaffConflict(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE\s+users\s+SET\s+role`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT\s+INTO\s+staff`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "staff_user_business_key"})
	mock.ExpectRollback()

	store := NewPostgresStore(db)
	err = store.WithTx(context.Background(), func(ctx context.Context, tx Store) error {
		if err := tx.Users().SetRole(ctx, "u1", "staff"); err != nil {
			return err
		}
		return tx.Businesses().CreateStaff(ctx, &Staff{ID: "s1", UserID: "u1", BusinessID: "b1", IsActive: true})
	})
	if !errors.Is(err, ErrAlreadyStaff) {
		t.Fatalf("want ErrAlreadyStaff, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
