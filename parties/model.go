package parties

import (
	"github.com/google/uuid"
)

type Party struct {
	ID           uuid.UUID   `json:"id"`
	OwnerID      uuid.UUID   `json:"owner_id"` // the owner is NOT part of the Participants list
	Name         string      `json:"name"`
	Participants []uuid.UUID `json:"participants"`
}

// HasParticipant reports whether the user is in the participant set. The
// owner is tracked separately and never listed here.
func (p Party) HasParticipant(user uuid.UUID) bool {
	for _, id := range p.Participants {
		if id == user {
			return true
		}
	}
	return false
}

type PartyInvitation struct {
	ID         uuid.UUID `json:"id"`
	PartyID    uuid.UUID `json:"party_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
}

type PartyCreatePacket struct {
	ActorID uuid.UUID `json:"actor_id"`
	OwnerID uuid.UUID `json:"owner_id"` // ignored, the actor always becomes the owner
	Name    string    `json:"name"`
}

type PartyFetchPacket struct {
	ActorID uuid.UUID `json:"actor_id"`
	PartyID uuid.UUID `json:"party_id"`
}

type PartyListPacket struct {
	ActorID uuid.UUID `json:"actor_id"`
}

type PartyUpdatePacket struct {
	ActorID uuid.UUID  `json:"actor_id"`
	PartyID uuid.UUID  `json:"party_id"`
	Name    *string    `json:"name,omitempty"`
	OwnerID *uuid.UUID `json:"owner_id,omitempty"` // ignored, ownership is not transferable here
}

type PartyLeavePacket struct {
	ActorID uuid.UUID `json:"actor_id"`
	PartyID uuid.UUID `json:"party_id"`
}

type InviteSendPacket struct {
	ActorID    uuid.UUID `json:"actor_id"`
	PartyID    uuid.UUID `json:"party_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
}

type InviteAcceptPacket struct {
	ActorID      uuid.UUID `json:"actor_id"`
	InvitationID uuid.UUID `json:"invitation_id"`
}

type InviteDeletePacket struct {
	ActorID      uuid.UUID `json:"actor_id"`
	InvitationID uuid.UUID `json:"invitation_id"`
}

type InviteListPacket struct {
	ActorID uuid.UUID `json:"actor_id"`
	PartyID uuid.UUID `json:"party_id"`
}

type InviteMinePacket struct {
	ActorID uuid.UUID `json:"actor_id"`
}

type GenericResponsePacket struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type PartyResponsePacket struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Party   *Party `json:"party,omitempty"`
}

type PartyListResponsePacket struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Parties []Party `json:"parties"`
}

type InviteResponsePacket struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	Invitation *PartyInvitation `json:"invitation,omitempty"`
}

type InviteListResponsePacket struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message"`
	Invitations []PartyInvitation `json:"invitations"`
}
