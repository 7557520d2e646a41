package rbac

// Role names. Keep these stable; they are stored on users and embedded in tokens.
const (
	RoleRegular       = "regular"
	RoleStaff         = "staff"
	RoleBusinessOwner = "business_owner"
	RoleAdmin         = "admin"
)

// DefaultRole is assigned at registration.
const DefaultRole = RoleRegular

func IsValidRole(role string) bool {
	switch role {
	case RoleRegular, RoleStaff, RoleBusinessOwner, RoleAdmin:
		return true
	default:
		return false
	}
}
