package storage

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateParty persists a new party.
func (s *Storage) CreateParty(rec PartyRecord) (PartyRecord, error) {
	if err := s.db.Create(&rec).Error; err != nil {
		logrus.WithError(err).WithField("party_id", rec.ID).Error("storage: Failed to create party")
		return PartyRecord{}, fmt.Errorf("failed to create party: %w", err)
	}
	return rec, nil
}

// GetParty retrieves a party with its participants.
func (s *Storage) GetParty(id string) (PartyRecord, error) {
	var rec PartyRecord
	err := s.db.Preload("Participants").First(&rec, "id = ?", id).Error
	if err != nil {
		return PartyRecord{}, translate(err)
	}
	return rec, nil
}

// ListParties returns all parties in creation order.
func (s *Storage) ListParties() ([]PartyRecord, error) {
	var recs []PartyRecord
	err := s.db.Preload("Participants").Order("created_at").Find(&recs).Error
	if err != nil {
		logrus.WithError(err).Error("storage: Failed to list parties")
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	return recs, nil
}

// ListPartiesByOwner returns the parties owned by the given user, in
// creation order.
func (s *Storage) ListPartiesByOwner(ownerID string) ([]PartyRecord, error) {
	var recs []PartyRecord
	err := s.db.Preload("Participants").Where("owner_id = ?", ownerID).Order("created_at").Find(&recs).Error
	if err != nil {
		logrus.WithError(err).WithField("owner_id", ownerID).Error("storage: Failed to list owned parties")
		return nil, fmt.Errorf("failed to list owned parties: %w", err)
	}
	return recs, nil
}

// SaveParty updates a party's mutable attributes and returns the fresh record.
func (s *Storage) SaveParty(rec PartyRecord) (PartyRecord, error) {
	res := s.db.Model(&PartyRecord{}).Where("id = ?", rec.ID).Updates(map[string]interface{}{
		"owner_id": rec.OwnerID,
		"name":     rec.Name,
	})
	if res.Error != nil {
		logrus.WithError(res.Error).WithField("party_id", rec.ID).Error("storage: Failed to update party")
		return PartyRecord{}, fmt.Errorf("failed to update party: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return PartyRecord{}, ErrNotFound
	}
	return s.GetParty(rec.ID)
}

// DeleteParty removes a party together with its participants and pending
// invitations in one transaction.
func (s *Storage) DeleteParty(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("party_id = ?", id).Delete(&ParticipantRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete participants: %w", err)
		}
		if err := tx.Where("party_id = ?", id).Delete(&InvitationRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete invitations: %w", err)
		}
		res := tx.Delete(&PartyRecord{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete party: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// AddParticipant inserts a membership row unless one already exists.
func (s *Storage) AddParticipant(partyID, userID string) error {
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ParticipantRecord{PartyID: partyID, UserID: userID}).Error
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"party_id": partyID,
			"user_id":  userID,
		}).Error("storage: Failed to add participant")
		return fmt.Errorf("failed to add participant: %w", err)
	}
	return nil
}

// RemoveParticipant deletes a membership row.
func (s *Storage) RemoveParticipant(partyID, userID string) error {
	err := s.db.Where("party_id = ? AND user_id = ?", partyID, userID).Delete(&ParticipantRecord{}).Error
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"party_id": partyID,
			"user_id":  userID,
		}).Error("storage: Failed to remove participant")
		return fmt.Errorf("failed to remove participant: %w", err)
	}
	return nil
}

// CountParties returns the number of stored parties.
func (s *Storage) CountParties() (int64, error) {
	var count int64
	if err := s.db.Model(&PartyRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count parties: %w", err)
	}
	return count, nil
}
