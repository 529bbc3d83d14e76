package services

import "github.com/google/uuid"

// Actor is the authenticated identity issuing a mutation, as supplied by the
// upstream auth layer. It is trusted as given.
type Actor struct {
	ID      uuid.UUID
	IsAdmin bool
}

// Authorize decides whether actor may mutate target's account: self or admin.
// Pure decision; every mutation entry point calls it before any I/O.
func Authorize(actorID uuid.UUID, actorIsAdmin bool, targetID uuid.UUID) bool {
	return actorID == targetID || actorIsAdmin
}

func (a Actor) mayMutate(targetID uuid.UUID) bool {
	return Authorize(a.ID, a.IsAdmin, targetID)
}
