package audit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events. It is append-only.
type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service records audit events. Recording is best-effort: the Log* helpers
// never fail the calling operation, they log instead.
type Service struct {
	repo  Repository
	log   *slog.Logger
	clock func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, log: log, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

// Append validates and stores e, filling id and timestamp.
func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.BusinessID == "" || e.Type == "" {
		return ErrInvalidEvent
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

func (s *Service) record(ctx context.Context, e Event, meta map[string]any) {
	if len(meta) > 0 {
		if b, err := json.Marshal(meta); err == nil {
			e.Metadata = string(b)
		}
	}
	if err := s.Append(ctx, e); err != nil {
		s.log.WarnContext(ctx, "audit append failed", "type", e.Type, "business_id", e.BusinessID, "err", err)
	}
}

func (s *Service) LogStaffInvited(ctx context.Context, businessID string, actor Actor, staffID, userID string, newUser bool) {
	s.record(ctx, Event{
		BusinessID:   businessID,
		Type:         EventStaffInvited,
		ActorUserID:  actor.UserID,
		ActorRole:    actor.Role,
		IPAddress:    actor.IP,
		TargetUserID: userID,
		StaffID:      staffID,
		Message:      "staff invited",
	}, map[string]any{"new_user": newUser})
}

func (s *Service) LogRoleChanged(ctx context.Context, businessID string, actor Actor, userID, from, to string) {
	s.record(ctx, Event{
		BusinessID:   businessID,
		Type:         EventRoleChanged,
		ActorUserID:  actor.UserID,
		ActorRole:    actor.Role,
		IPAddress:    actor.IP,
		TargetUserID: userID,
		Message:      "role changed",
	}, map[string]any{"from": from, "to": to})
}

// LogStaffRemoved records a removal; deactivated is true when the staff row
// was kept because of open bookings.
func (s *Service) LogStaffRemoved(ctx context.Context, businessID string, actor Actor, staffID, userID string, deactivated bool) {
	typ, msg := EventStaffRemoved, "staff removed"
	if deactivated {
		typ, msg = EventStaffDeactivated, "staff deactivated (has active bookings)"
	}
	s.record(ctx, Event{
		BusinessID:   businessID,
		Type:         typ,
		ActorUserID:  actor.UserID,
		ActorRole:    actor.Role,
		IPAddress:    actor.IP,
		TargetUserID: userID,
		StaffID:      staffID,
		Message:      msg,
	}, nil)
}
