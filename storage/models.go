package storage

import "time"

// PartyRecord is the stored form of a party. The owner is never duplicated
// into the participant rows.
type PartyRecord struct {
	ID           string `gorm:"primaryKey"`
	OwnerID      string `gorm:"index"`
	Name         string
	Participants []ParticipantRecord `gorm:"foreignKey:PartyID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ParticipantRecord links a user to a party. A user appears at most once per
// party, enforced by the composite unique index.
type ParticipantRecord struct {
	ID      uint   `gorm:"primaryKey"`
	PartyID string `gorm:"uniqueIndex:idx_party_user"`
	UserID  string `gorm:"uniqueIndex:idx_party_user"`
}

// InvitationRecord is a pending party invitation. Its existence is the
// pending state; accepting or deleting it removes the row.
type InvitationRecord struct {
	ID         string `gorm:"primaryKey"`
	PartyID    string `gorm:"uniqueIndex:idx_party_receiver"`
	ReceiverID string `gorm:"uniqueIndex:idx_party_receiver"`
	CreatedAt  time.Time
}
