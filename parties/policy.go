package parties

import "github.com/google/uuid"

// LeaveDecision is the outcome of LeaveOrDelete.
type LeaveDecision int

const (
	// LeaveForbidden means the actor has no relationship with the party.
	LeaveForbidden LeaveDecision = iota
	// LeaveDisband means the actor owns the party and the whole party goes away.
	LeaveDisband
	// LeaveSelfRemove means the actor is a participant and only their own
	// membership is removed.
	LeaveSelfRemove
)

// CanSee reports whether the actor may view the party: the owner always can,
// participants can, nobody else.
func CanSee(party Party, actor uuid.UUID) bool {
	return party.OwnerID == actor || party.HasParticipant(actor)
}

// CanModify reports whether the actor may replace or update the party.
// Only the owner can.
func CanModify(party Party, actor uuid.UUID) bool {
	return party.OwnerID == actor
}

// LeaveOrDelete decides what a delete request from the actor means.
func LeaveOrDelete(party Party, actor uuid.UUID) LeaveDecision {
	if party.OwnerID == actor {
		return LeaveDisband
	}
	if party.HasParticipant(actor) {
		return LeaveSelfRemove
	}
	return LeaveForbidden
}
