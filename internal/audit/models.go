package audit

import "time"

// Event is an immutable, append-only audit record for role-changing
// operations.
//
// Invariants:
// - Events are never updated or deleted.
// - business_id is required; every audited action happens inside a business.
// - actor and ip capture are best-effort.
type Event struct {
	ID         string    `json:"id" db:"id"`
	BusinessID string    `json:"business_id" db:"business_id"`
	Type       EventType `json:"type" db:"type"`

	ActorUserID string `json:"actor_user_id,omitempty" db:"actor_user_id"`
	ActorRole   string `json:"actor_role,omitempty" db:"actor_role"`
	IPAddress   string `json:"ip_address,omitempty" db:"ip_address"`

	TargetUserID string `json:"target_user_id,omitempty" db:"target_user_id"`
	StaffID      string `json:"staff_id,omitempty" db:"staff_id"`

	Message string `json:"message,omitempty" db:"message"`

	// Metadata is a JSON object with event-specific details.
	Metadata string `json:"metadata,omitempty" db:"metadata"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventStaffInvited     EventType = "staff_invited"
	EventRoleChanged      EventType = "role_changed"
	EventStaffRemoved     EventType = "staff_removed"
	EventStaffDeactivated EventType = "staff_deactivated"
)

// Actor is who triggered an audited action.
type Actor struct {
	UserID string
	Role   string
	IP     string
}
