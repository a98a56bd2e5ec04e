package parties

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInviteOwnerOnly(t *testing.T) {
	store := newTestStore(t)
	svc := NewPartyService(store)
	invites := NewInviteService(store)

	owner := uuid.New()
	receiver := uuid.New()

	party, err := svc.Create(owner, "Game night")
	require.NoError(t, err)

	_, err = invites.Create(receiver, party.ID, uuid.New())
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = invites.Create(owner, uuid.New(), receiver)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = invites.Create(owner, party.ID, uuid.Nil)
	assert.ErrorIs(t, err, ErrValidation)

	inv, err := invites.Create(owner, party.ID, receiver)
	require.NoError(t, err)
	assert.Equal(t, party.ID, inv.PartyID)
	assert.Equal(t, receiver, inv.ReceiverID)
}

func TestCreateInviteRejectsExistingMembers(t *testing.T) {
	store := newTestStore(t)
	svc := NewPartyService(store)
	invites := NewInviteService(store)

	owner := uuid.New()
	member := uuid.New()

	party, err := svc.Create(owner, "Game night")
	require.NoError(t, err)

	_, err = invites.Create(owner, party.ID, owner)
	assert.ErrorIs(t, err, ErrValidation)

	inv, err := invites.Create(owner, party.ID, member)
	require.NoError(t, err)

	// redundant pending invite for the same receiver
	_, err = invites.Create(owner, party.ID, member)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = invites.Accept(member, inv.ID)
	require.NoError(t, err)

	// already a participant now
	_, err = invites.Create(owner, party.ID, member)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAcceptInviteLifecycle(t *testing.T) {
	store := newTestStore(t)
	svc := NewPartyService(store)
	invites := NewInviteService(store)

	u1 := uuid.New()
	u2 := uuid.New()

	party, err := svc.Create(u1, "Game night")
	require.NoError(t, err)

	inv, err := invites.Create(u1, party.ID, u2)
	require.NoError(t, err)

	accepted, err := invites.Accept(u2, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, accepted)
	assert.Equal(t, inv.ID, accepted.ID)

	got, err := svc.Get(u1, party.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{u2}, got.Participants)

	// the record is consumed, a second accept sees nothing
	_, err = invites.Accept(u2, inv.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAcceptByNonReceiverIsNeutralNoop(t *testing.T) {
	store := newTestStore(t)
	svc := NewPartyService(store)
	invites := NewInviteService(store)

	owner := uuid.New()
	receiver := uuid.New()
	impostor := uuid.New()

	party, err := svc.Create(owner, "Game night")
	require.NoError(t, err)
	inv, err := invites.Create(owner, party.ID, receiver)
	require.NoError(t, err)

	// repeated wrong-actor accepts all look like success with no effect
	for i := 0; i < 3; i++ {
		accepted, err := invites.Accept(impostor, inv.ID)
		require.NoError(t, err)
		assert.Nil(t, accepted)
	}

	got, err := svc.Get(owner, party.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Participants)

	pending, err := invites.ListForParty(owner, party.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, inv.ID, pending[0].ID)
}

func TestDeleteInvitePermissions(t *testing.T) {
	store := newTestStore(t)
	svc := NewPartyService(store)
	invites := NewInviteService(store)

	owner := uuid.New()
	receiver := uuid.New()
	stranger := uuid.New()

	party, err := svc.Create(owner, "Game night")
	require.NoError(t, err)
	inv, err := invites.Create(owner, party.ID, receiver)
	require.NoError(t, err)

	err = invites.Delete(stranger, inv.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// still pending after the rejected attempt
	pending, err := invites.ListForParty(owner, party.ID)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	require.NoError(t, invites.Delete(receiver, inv.ID))

	_, err = invites.Accept(receiver, inv.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.Get(owner, party.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Participants)

	// owner may withdraw their own invitations too
	inv2, err := invites.Create(owner, party.ID, receiver)
	require.NoError(t, err)
	require.NoError(t, invites.Delete(owner, inv2.ID))
	err = invites.Delete(owner, inv2.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListInvitesOwnerOnly(t *testing.T) {
	store := newTestStore(t)
	svc := NewPartyService(store)
	invites := NewInviteService(store)

	u1 := uuid.New()
	u2 := uuid.New()
	u4 := uuid.New()

	party, err := svc.Create(u1, "Game night")
	require.NoError(t, err)
	inv, err := invites.Create(u1, party.ID, u2)
	require.NoError(t, err)

	listed, err := invites.ListForParty(u1, party.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, inv.ID, listed[0].ID)

	_, err = invites.ListForParty(u4, party.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListMineInvites(t *testing.T) {
	store := newTestStore(t)
	svc := NewPartyService(store)
	invites := NewInviteService(store)

	owner := uuid.New()
	receiver := uuid.New()

	first, err := svc.Create(owner, "First")
	require.NoError(t, err)
	second, err := svc.Create(owner, "Second")
	require.NoError(t, err)

	invA, err := invites.Create(owner, first.ID, receiver)
	require.NoError(t, err)
	invB, err := invites.Create(owner, second.ID, receiver)
	require.NoError(t, err)

	mine, err := invites.ListMine(receiver)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, invA.ID, mine[0].ID)
	assert.Equal(t, invB.ID, mine[1].ID)

	mine, err = invites.ListMine(owner)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
