package storage

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateInvitation persists a new pending invitation.
func (s *Storage) CreateInvitation(rec InvitationRecord) (InvitationRecord, error) {
	if err := s.db.Create(&rec).Error; err != nil {
		logrus.WithError(err).WithField("invitation_id", rec.ID).Error("storage: Failed to create invitation")
		return InvitationRecord{}, fmt.Errorf("failed to create invitation: %w", err)
	}
	return rec, nil
}

// GetInvitation retrieves a pending invitation by id.
func (s *Storage) GetInvitation(id string) (InvitationRecord, error) {
	var rec InvitationRecord
	err := s.db.First(&rec, "id = ?", id).Error
	if err != nil {
		return InvitationRecord{}, translate(err)
	}
	return rec, nil
}

// ListInvitationsByParty returns the pending invitations for a party, in
// creation order.
func (s *Storage) ListInvitationsByParty(partyID string) ([]InvitationRecord, error) {
	var recs []InvitationRecord
	err := s.db.Where("party_id = ?", partyID).Order("created_at").Find(&recs).Error
	if err != nil {
		logrus.WithError(err).WithField("party_id", partyID).Error("storage: Failed to list party invitations")
		return nil, fmt.Errorf("failed to list party invitations: %w", err)
	}
	return recs, nil
}

// ListInvitationsByReceiver returns the pending invitations addressed to a
// user, in creation order.
func (s *Storage) ListInvitationsByReceiver(userID string) ([]InvitationRecord, error) {
	var recs []InvitationRecord
	err := s.db.Where("receiver_id = ?", userID).Order("created_at").Find(&recs).Error
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("storage: Failed to list received invitations")
		return nil, fmt.Errorf("failed to list received invitations: %w", err)
	}
	return recs, nil
}

// HasPendingInvitation reports whether a pending invitation already exists
// for the (party, receiver) pair.
func (s *Storage) HasPendingInvitation(partyID, receiverID string) (bool, error) {
	var count int64
	err := s.db.Model(&InvitationRecord{}).
		Where("party_id = ? AND receiver_id = ?", partyID, receiverID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check pending invitation: %w", err)
	}
	return count > 0, nil
}

// DeleteInvitation removes a pending invitation. Returns ErrNotFound when the
// row is already gone, so concurrent resolvers see exactly one winner.
func (s *Storage) DeleteInvitation(id string) error {
	res := s.db.Delete(&InvitationRecord{}, "id = ?", id)
	if res.Error != nil {
		logrus.WithError(res.Error).WithField("invitation_id", id).Error("storage: Failed to delete invitation")
		return fmt.Errorf("failed to delete invitation: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AcceptInvitation resolves an invitation in a single transaction: the row is
// compare-and-deleted, then the receiver is added to the party's participants.
// Either both effects commit or neither does. A caller that loses the race
// observes ErrNotFound.
func (s *Storage) AcceptInvitation(id string) (InvitationRecord, error) {
	var rec InvitationRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		res := tx.Delete(&InvitationRecord{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete invitation: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		member := ParticipantRecord{PartyID: rec.PartyID, UserID: rec.ReceiverID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error; err != nil {
			return fmt.Errorf("failed to add participant: %w", err)
		}
		return nil
	})
	if err != nil {
		return InvitationRecord{}, err
	}
	return rec, nil
}
