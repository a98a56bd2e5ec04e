package app

import (
	"github.com/soiree-app/soiree/parties"
	"github.com/soiree-app/soiree/storage"
)

type Soiree struct {
	Store   *storage.Storage
	Parties *parties.PartyService
	Invites *parties.InviteService
}
