package parties

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/soiree-app/soiree/storage"
)

// InviteService implements the invitation lifecycle. An invitation has two
// states: pending while its record exists, resolved once Accept or Delete
// removes it. Neither transition is re-enterable.
type InviteService struct {
	store *storage.Storage
}

func NewInviteService(store *storage.Storage) *InviteService {
	return &InviteService{store: store}
}

// Create opens a pending invitation. Only the party's owner may invite, the
// receiver must be named, and inviting someone who is already in the party
// (or redundantly re-inviting) is rejected.
func (s *InviteService) Create(actor, partyID, receiverID uuid.UUID) (*PartyInvitation, error) {
	if receiverID == uuid.Nil {
		return nil, fmt.Errorf("%w: receiver is required", ErrValidation)
	}

	rec, err := s.store.GetParty(partyID.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("party %s: %w", partyID, ErrNotFound)
		}
		return nil, err
	}
	party := partyFromRecord(rec)

	if !CanModify(*party, actor) {
		return nil, ErrForbidden
	}
	if receiverID == party.OwnerID || party.HasParticipant(receiverID) {
		return nil, fmt.Errorf("%w: user is already in the party", ErrValidation)
	}

	pending, err := s.store.HasPendingInvitation(partyID.String(), receiverID.String())
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, fmt.Errorf("%w: user is already invited", ErrConflict)
	}

	created, err := s.store.CreateInvitation(storage.InvitationRecord{
		ID:         uuid.NewString(),
		PartyID:    partyID.String(),
		ReceiverID: receiverID.String(),
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"invitation_id": created.ID,
		"party_id":      partyID,
		"receiver_id":   receiverID,
	}).Info("Party invitation sent")
	return invitationFromRecord(created), nil
}

// Accept resolves a pending invitation for its receiver: the receiver joins
// the party's participants and the invitation disappears, atomically. Any
// other actor gets a neutral no-op (nil invitation, nil error) that reveals
// nothing about the invitation. A caller losing a concurrent resolution race
// observes ErrNotFound.
func (s *InviteService) Accept(actor, invitationID uuid.UUID) (*PartyInvitation, error) {
	rec, err := s.store.GetInvitation(invitationID.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("invitation %s: %w", invitationID, ErrNotFound)
		}
		return nil, err
	}

	if rec.ReceiverID != actor.String() {
		return nil, nil
	}

	accepted, err := s.store.AcceptInvitation(invitationID.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("invitation %s: %w", invitationID, ErrNotFound)
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"invitation_id": invitationID,
		"party_id":      rec.PartyID,
		"user_id":       actor,
	}).Info("Party invitation accepted")
	return invitationFromRecord(accepted), nil
}

// Delete withdraws a pending invitation. Permitted for the party's owner and
// the invitation's receiver; participants are untouched either way.
func (s *InviteService) Delete(actor, invitationID uuid.UUID) error {
	rec, err := s.store.GetInvitation(invitationID.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("invitation %s: %w", invitationID, ErrNotFound)
		}
		return err
	}

	party, err := s.store.GetParty(rec.PartyID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("party %s: %w", rec.PartyID, ErrNotFound)
		}
		return err
	}

	if actor.String() != party.OwnerID && actor.String() != rec.ReceiverID {
		return ErrForbidden
	}

	if err := s.store.DeleteInvitation(invitationID.String()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("invitation %s: %w", invitationID, ErrNotFound)
		}
		return err
	}

	logrus.WithField("invitation_id", invitationID).Info("Party invitation deleted")
	return nil
}

// ListForParty returns a party's pending invitations; owner only.
func (s *InviteService) ListForParty(actor, partyID uuid.UUID) ([]PartyInvitation, error) {
	rec, err := s.store.GetParty(partyID.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("party %s: %w", partyID, ErrNotFound)
		}
		return nil, err
	}

	if rec.OwnerID != actor.String() {
		return nil, ErrForbidden
	}

	recs, err := s.store.ListInvitationsByParty(partyID.String())
	if err != nil {
		return nil, err
	}
	return invitationsFromRecords(recs), nil
}

// ListMine returns the invitations addressed to the actor. No ownership
// check: the actor only ever sees their own.
func (s *InviteService) ListMine(actor uuid.UUID) ([]PartyInvitation, error) {
	recs, err := s.store.ListInvitationsByReceiver(actor.String())
	if err != nil {
		return nil, err
	}
	return invitationsFromRecords(recs), nil
}

func invitationFromRecord(rec storage.InvitationRecord) *PartyInvitation {
	return &PartyInvitation{
		ID:         uuid.MustParse(rec.ID),
		PartyID:    uuid.MustParse(rec.PartyID),
		ReceiverID: uuid.MustParse(rec.ReceiverID),
	}
}

func invitationsFromRecords(recs []storage.InvitationRecord) []PartyInvitation {
	invitations := make([]PartyInvitation, 0, len(recs))
	for _, rec := range recs {
		invitations = append(invitations, *invitationFromRecord(rec))
	}
	return invitations
}
