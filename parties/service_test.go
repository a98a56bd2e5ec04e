package parties

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soiree-app/soiree/storage"
)

func newTestStore(t *testing.T) *storage.Storage {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "soiree.db"))
	require.NoError(t, err)
	return store
}

func TestCreatePartyActorBecomesOwner(t *testing.T) {
	svc := NewPartyService(newTestStore(t))
	actor := uuid.New()

	party, err := svc.Create(actor, "Game night")
	require.NoError(t, err)
	assert.Equal(t, actor, party.OwnerID)
	assert.Equal(t, "Game night", party.Name)
	assert.Empty(t, party.Participants)
}

func TestCreatePartyValidation(t *testing.T) {
	svc := NewPartyService(newTestStore(t))

	_, err := svc.Create(uuid.New(), "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(uuid.Nil, "Game night")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetPartyVisibility(t *testing.T) {
	store := newTestStore(t)
	svc := NewPartyService(store)
	invites := NewInviteService(store)

	owner := uuid.New()
	member := uuid.New()
	stranger := uuid.New()

	party, err := svc.Create(owner, "Game night")
	require.NoError(t, err)

	inv, err := invites.Create(owner, party.ID, member)
	require.NoError(t, err)
	_, err = invites.Accept(member, inv.ID)
	require.NoError(t, err)

	got, err := svc.Get(owner, party.ID)
	require.NoError(t, err)
	assert.Equal(t, party.ID, got.ID)

	got, err = svc.Get(member, party.ID)
	require.NoError(t, err)
	assert.Contains(t, got.Participants, member)

	_, err = svc.Get(stranger, party.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(owner, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFiltersByVisibility(t *testing.T) {
	store := newTestStore(t)
	svc := NewPartyService(store)
	invites := NewInviteService(store)

	alice := uuid.New()
	bob := uuid.New()

	first, err := svc.Create(alice, "First")
	require.NoError(t, err)
	second, err := svc.Create(bob, "Second")
	require.NoError(t, err)
	_, err = svc.Create(uuid.New(), "Hidden")
	require.NoError(t, err)

	inv, err := invites.Create(bob, second.ID, alice)
	require.NoError(t, err)
	_, err = invites.Accept(alice, inv.ID)
	require.NoError(t, err)

	visible, err := svc.List(alice)
	require.NoError(t, err)
	require.Len(t, visible, 2)
	// store order is preserved
	assert.Equal(t, first.ID, visible[0].ID)
	assert.Equal(t, second.ID, visible[1].ID)

	mine, err := svc.ListMine(alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)
}

func TestUpdatePartyOwnerOnly(t *testing.T) {
	store := newTestStore(t)
	svc := NewPartyService(store)
	invites := NewInviteService(store)

	owner := uuid.New()
	member := uuid.New()

	party, err := svc.Create(owner, "Game night")
	require.NoError(t, err)

	inv, err := invites.Create(owner, party.ID, member)
	require.NoError(t, err)
	_, err = invites.Accept(member, inv.ID)
	require.NoError(t, err)

	name := "Movie night"
	_, err = svc.Update(member, party.ID, PartyUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(owner, party.ID, PartyUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Movie night", updated.Name)
	assert.Equal(t, owner, updated.OwnerID)
	assert.Contains(t, updated.Participants, member)
}

func TestUpdateKeepsOwnerOnEmptyPayload(t *testing.T) {
	svc := NewPartyService(newTestStore(t))
	owner := uuid.New()

	party, err := svc.Create(owner, "Game night")
	require.NoError(t, err)

	// a partial update with no fields still pins ownership to the actor
	updated, err := svc.Update(owner, party.ID, PartyUpdate{})
	require.NoError(t, err)
	assert.Equal(t, owner, updated.OwnerID)
	assert.Equal(t, "Game night", updated.Name)
}

func TestDeletePartyDecisions(t *testing.T) {
	store := newTestStore(t)
	svc := NewPartyService(store)
	invites := NewInviteService(store)

	owner := uuid.New()
	member := uuid.New()
	stranger := uuid.New()

	party, err := svc.Create(owner, "Game night")
	require.NoError(t, err)

	inv, err := invites.Create(owner, party.ID, member)
	require.NoError(t, err)
	_, err = invites.Accept(member, inv.ID)
	require.NoError(t, err)

	_, err = svc.Delete(stranger, party.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	decision, err := svc.Delete(member, party.ID)
	require.NoError(t, err)
	assert.Equal(t, LeaveSelfRemove, decision)

	got, err := svc.Get(owner, party.ID)
	require.NoError(t, err)
	assert.Equal(t, owner, got.OwnerID)
	assert.NotContains(t, got.Participants, member)

	decision, err = svc.Delete(owner, party.ID)
	require.NoError(t, err)
	assert.Equal(t, LeaveDisband, decision)

	_, err = svc.Get(owner, party.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDisbandCascadesInvitations(t *testing.T) {
	store := newTestStore(t)
	svc := NewPartyService(store)
	invites := NewInviteService(store)

	owner := uuid.New()
	receiver := uuid.New()

	party, err := svc.Create(owner, "Game night")
	require.NoError(t, err)
	inv, err := invites.Create(owner, party.ID, receiver)
	require.NoError(t, err)

	_, err = svc.Delete(owner, party.ID)
	require.NoError(t, err)

	_, err = invites.Accept(receiver, inv.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	mine, err := invites.ListMine(receiver)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
