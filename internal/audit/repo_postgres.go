package audit

import (
	"context"
	"database/sql"
	"fmt"

	"booking-platform/pkg/utils"
)

// PostgresRepo writes to audit_events. The table has no UPDATE/DELETE path.
type PostgresRepo struct {
	db utils.DBTX
}

func NewPostgresRepo(db utils.DBTX) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	const q = `
		INSERT INTO audit_events
			(id, business_id, type, actor_user_id, actor_role, ip_address, target_user_id, staff_id, message, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, q,
		e.ID, e.BusinessID, string(e.Type),
		nullable(e.ActorUserID), nullable(e.ActorRole), nullable(e.IPAddress),
		nullable(e.TargetUserID), nullable(e.StaffID),
		e.Message, metadataOrEmpty(e.Metadata), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func metadataOrEmpty(m string) string {
	if m == "" {
		return "{}"
	}
	return m
}
