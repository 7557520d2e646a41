package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresRepo_Append(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	repo := NewPostgresRepo(db)
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+audit_events`).
		WithArgs("e1", "b1", "staff_invited", "owner", "business_owner", nil, "u2", "s1", "staff invited", "{}", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Append(context.Background(), Event{
		ID: "e1", BusinessID: "b1", Type: EventStaffInvited,
		ActorUserID: "owner", ActorRole: "business_owner",
		TargetUserID: "u2", StaffID: "s1", Message: "staff invited", CreatedAt: at,
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresRepo_AppendError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+audit_events`).WillReturnError(errors.New("db down"))
	if err := NewPostgresRepo(db).Append(context.Background(), Event{ID: "e", BusinessID: "b", Type: EventRoleChanged}); err == nil {
		t.Fatalf("expected error")
	}
}
