package auth

import "github.com/keijiban/bulletin-board/internal/core/domain"

// CanModify decides whether an actor may mutate or delete a resource owned
// by ownerID. Ownership alone suffices regardless of role; the admin role
// suffices regardless of ownership. Applied identically to post update and
// post delete.
func CanModify(ownerID, actorID, actorRole string) bool {
	return actorID == ownerID || actorRole == domain.RoleAdmin
}
