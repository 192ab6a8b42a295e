package authz

import "reviewhub/internal/domain"

type Action string

const (
	ActionEdit     Action = "edit"
	ActionDelete   Action = "delete"
	ActionModerate Action = "moderate"
	ActionReadOwn  Action = "read_own"
)

// Actor is the authenticated identity attached to a request by the auth layer.
type Actor struct {
	UserID int64
	Role   domain.UserRole
}

func (a Actor) IsAdmin() bool { return a.Role == domain.RoleAdmin }

// Can decides whether the actor may perform an action on a resource owned by
// ownerID. Admins bypass ownership for deletion and moderation only; edits
// stay owner-bound so an admin cannot silently rewrite user content.
func Can(actor Actor, ownerID int64, action Action) bool {
	switch action {
	case ActionEdit:
		return actor.UserID == ownerID
	case ActionDelete:
		return actor.UserID == ownerID || actor.IsAdmin()
	case ActionModerate:
		return actor.IsAdmin()
	case ActionReadOwn:
		return actor.UserID == ownerID || actor.IsAdmin()
	}
	return false
}
