package parties

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/soiree-app/soiree/storage"
)

// PartyService implements the party half of the membership engine. It holds
// no state of its own; every mutation is a single atomic call against the
// store.
type PartyService struct {
	store *storage.Storage
}

func NewPartyService(store *storage.Storage) *PartyService {
	return &PartyService{store: store}
}

// PartyUpdate carries the mutable attributes of a party. Nil fields are left
// unchanged, which makes full and partial updates the same call. Ownership is
// not part of it: the stored owner is always forced back to the actor.
type PartyUpdate struct {
	Name *string
}

// Create makes a new party owned by the actor. Any owner supplied by the
// caller is discarded; ownership cannot be assigned by impersonation.
func (s *PartyService) Create(actor uuid.UUID, name string) (*Party, error) {
	if actor == uuid.Nil {
		return nil, fmt.Errorf("%w: actor is required", ErrValidation)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: party name is required", ErrValidation)
	}

	rec, err := s.store.CreateParty(storage.PartyRecord{
		ID:      uuid.NewString(),
		OwnerID: actor.String(),
		Name:    name,
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"party_id": rec.ID,
		"owner_id": rec.OwnerID,
	}).Info("Party created")
	return partyFromRecord(rec), nil
}

// Get retrieves a party the actor is allowed to see.
func (s *PartyService) Get(actor, partyID uuid.UUID) (*Party, error) {
	rec, err := s.store.GetParty(partyID.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("party %s: %w", partyID, ErrNotFound)
		}
		return nil, err
	}

	party := partyFromRecord(rec)
	if !CanSee(*party, actor) {
		return nil, ErrForbidden
	}
	return party, nil
}

// List returns every party the actor can see, in the store's natural order.
func (s *PartyService) List(actor uuid.UUID) ([]Party, error) {
	recs, err := s.store.ListParties()
	if err != nil {
		return nil, err
	}

	visible := make([]Party, 0, len(recs))
	for _, rec := range recs {
		party := partyFromRecord(rec)
		if CanSee(*party, actor) {
			visible = append(visible, *party)
		}
	}
	return visible, nil
}

// ListMine returns the parties the actor owns. Narrower than List: parties
// where the actor is only a participant are excluded.
func (s *PartyService) ListMine(actor uuid.UUID) ([]Party, error) {
	recs, err := s.store.ListPartiesByOwner(actor.String())
	if err != nil {
		return nil, err
	}

	owned := make([]Party, 0, len(recs))
	for _, rec := range recs {
		owned = append(owned, *partyFromRecord(rec))
	}
	return owned, nil
}

// Update changes a party's attributes. Only the owner may update, and the
// stored owner is forced back to the actor's identity so the payload can
// never hand the party to someone else.
func (s *PartyService) Update(actor, partyID uuid.UUID, upd PartyUpdate) (*Party, error) {
	rec, err := s.store.GetParty(partyID.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("party %s: %w", partyID, ErrNotFound)
		}
		return nil, err
	}

	if !CanModify(*partyFromRecord(rec), actor) {
		return nil, ErrForbidden
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: party name is required", ErrValidation)
		}
		rec.Name = name
	}
	rec.OwnerID = actor.String()

	saved, err := s.store.SaveParty(rec)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("party %s: %w", partyID, ErrNotFound)
		}
		return nil, err
	}
	return partyFromRecord(saved), nil
}

// Delete resolves the actor's relationship to the party: the owner disbands
// it entirely (participants and pending invitations go with it), a
// participant only removes themself, anyone else is rejected.
func (s *PartyService) Delete(actor, partyID uuid.UUID) (LeaveDecision, error) {
	rec, err := s.store.GetParty(partyID.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return LeaveForbidden, fmt.Errorf("party %s: %w", partyID, ErrNotFound)
		}
		return LeaveForbidden, err
	}

	decision := LeaveOrDelete(*partyFromRecord(rec), actor)
	switch decision {
	case LeaveDisband:
		if err := s.store.DeleteParty(partyID.String()); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return decision, fmt.Errorf("party %s: %w", partyID, ErrNotFound)
			}
			return decision, err
		}
		logrus.WithField("party_id", partyID).Info("Party disbanded")
	case LeaveSelfRemove:
		if err := s.store.RemoveParticipant(partyID.String(), actor.String()); err != nil {
			return decision, err
		}
		logrus.WithFields(logrus.Fields{
			"party_id": partyID,
			"user_id":  actor,
		}).Info("Participant left party")
	default:
		return decision, ErrForbidden
	}
	return decision, nil
}

func partyFromRecord(rec storage.PartyRecord) *Party {
	party := &Party{
		ID:      uuid.MustParse(rec.ID),
		OwnerID: uuid.MustParse(rec.OwnerID),
		Name:    rec.Name,
	}
	for _, member := range rec.Participants {
		party.Participants = append(party.Participants, uuid.MustParse(member.UserID))
	}
	return party
}
