package user

import "strings"

const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// Principal is the authenticated identity attached to every write.
// It is produced by the external auth collaborator, never minted here.
type Principal struct {
	UserID string
	Role   string
	Domain string
}

func (p Principal) CanScore() bool {
	switch strings.ToLower(strings.TrimSpace(p.Role)) {
	case RoleAdmin, RoleOperator:
		return true
	default:
		return false
	}
}
