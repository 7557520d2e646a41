package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
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

var userCols = []string{"id", "email", "password_hash", "first_name", "last_name", "phone_number", "role", "is_email_verified", "created_at", "updated_at"}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users\s*\(id,\s*email,.*RETURNING\s+created_at,\s*updated_at$`).
		WithArgs("u1", "a@b.com", "hash", "ann", "lee", "0800", "regular", false).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	u := &User{ID: "u1", Email: "a@b.com", PasswordHash: "hash", FirstName: "ann", LastName: "lee", PhoneNumber: "0800", Role: "regular"}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !u.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at scanned")
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), &User{ID: "u1", Email: "a@b.com"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*email,.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1$`).
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u1", "a@b.com", "h", "ann", "lee", "", "staff", true, now, now))

	u, err := repo.GetByEmail(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if u.ID != "u1" || u.Role != "staff" || !u.IsEmailVerified {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGetByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+id`).WillReturnError(errors.New("db err"))

	_, err := repo.GetByID(context.Background(), "u1")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestUpdateProfile_PartialFields(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`(?s)^UPDATE\s+users\s+SET.*COALESCE\(\$2,\s*first_name\).*RETURNING`).
		WithArgs("u1", "john", nil, nil, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u1", "a@b.com", "h", "john", "lee", "", "regular", false, now, now))

	first := "john"
	u, err := repo.UpdateProfile(context.Background(), "u1", ProfileUpdate{FirstName: &first})
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if u.FirstName != "john" {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestSetRole(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+role\s*=\s*\$2`).
		WithArgs("u1", "staff", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.SetRole(context.Background(), "u1", "staff"); err != nil {
		t.Fatalf("SetRole: %v", err)
	}

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+role`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.SetRole(context.Background(), "ghost", "staff"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`ORDER\s+BY\s+created_at\s+DESC\s+LIMIT\s+\$1\s+OFFSET\s+\$2`).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u1", "a@b.com", "h", "", "", "", "regular", false, now, now).
			AddRow("u2", "b@b.com", "h", "", "", "", "admin", false, now, now))

	list, err := repo.List(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[1].Role != "admin" {
		t.Fatalf("unexpected list %+v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
