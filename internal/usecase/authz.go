package usecase

import (
	"github.com/bizsuite/crm-api/internal/domain/entity"
)

// ownerScope returns the filter scope for a listing: Admins see everything
// (nil scope), Staff see only documents they created or are assigned to.
func ownerScope(actor *entity.User) *string {
	if actor.IsAdmin() {
		return nil
	}
	id := actor.ID
	return &id
}

// canTouch reports whether the actor may read or mutate a document owned by
// createdBy and assigned to assignedTo. Admins always may; Staff only when
// they are the owner or the assignee.
func canTouch(actor *entity.User, createdBy, assignedTo string) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.ID == createdBy || (assignedTo != "" && actor.ID == assignedTo)
}
