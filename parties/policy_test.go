package parties

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanSee(t *testing.T) {
	owner := uuid.New()
	member := uuid.New()
	stranger := uuid.New()
	party := Party{ID: uuid.New(), OwnerID: owner, Participants: []uuid.UUID{member}}

	assert.True(t, CanSee(party, owner))
	assert.True(t, CanSee(party, member))
	assert.False(t, CanSee(party, stranger))
}

func TestCanModify(t *testing.T) {
	owner := uuid.New()
	member := uuid.New()
	party := Party{ID: uuid.New(), OwnerID: owner, Participants: []uuid.UUID{member}}

	assert.True(t, CanModify(party, owner))
	assert.False(t, CanModify(party, member))
	assert.False(t, CanModify(party, uuid.New()))
}

func TestLeaveOrDelete(t *testing.T) {
	owner := uuid.New()
	member := uuid.New()
	party := Party{ID: uuid.New(), OwnerID: owner, Participants: []uuid.UUID{member}}

	tests := []struct {
		name  string
		actor uuid.UUID
		want  LeaveDecision
	}{
		{"owner disbands", owner, LeaveDisband},
		{"participant removes self", member, LeaveSelfRemove},
		{"stranger is rejected", uuid.New(), LeaveForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LeaveOrDelete(party, tt.actor))
		})
	}
}

func TestHasParticipantOwnerNotListed(t *testing.T) {
	owner := uuid.New()
	party := Party{ID: uuid.New(), OwnerID: owner}

	// the owner is tracked separately, never as a participant row
	assert.False(t, party.HasParticipant(owner))
	assert.True(t, CanSee(party, owner))
}
