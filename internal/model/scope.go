package model

import "github.com/google/uuid"

type ScopeType string

const (
	ScopeAll   ScopeType = "ALL"
	ScopeOwner ScopeType = "OWNER"
)

// Scope is the row-visibility rule resolved from a principal. Admins see the
// whole fleet, everyone else only the rows they own. Filtering happens in the
// repository query, never client-side.
type Scope struct {
	Type   ScopeType
	UserID *uuid.UUID
}

func ScopeFor(p Principal) Scope {
	if p.IsAdmin() {
		return Scope{Type: ScopeAll}
	}
	userID := p.UserID
	return Scope{Type: ScopeOwner, UserID: &userID}
}
