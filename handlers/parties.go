package handlers

import (
	"encoding/json"
	"errors"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"github.com/soiree-app/soiree/app"
	"github.com/soiree-app/soiree/env"
	"github.com/soiree-app/soiree/metrics"
	"github.com/soiree-app/soiree/parties"
)

func RegisterParties(nc *nats.Conn, instance *app.Soiree) {
	createPartyHandler(nc, instance)
	fetchPartyHandler(nc, instance)
	listPartiesHandler(nc, instance)
	minePartiesHandler(nc, instance)
	updatePartyHandler(nc, instance)
	leavePartyHandler(nc, instance)
}

func createPartyHandler(nc *nats.Conn, instance *app.Soiree) {
	const subject = "party.create.request"

	_, err := nc.Subscribe(env.EnsurePrefixed(subject), func(msg *nats.Msg) {
		var packet parties.PartyCreatePacket
		if err := json.Unmarshal(msg.Data, &packet); err != nil {
			logrus.Warnf("Invalid PartyCreatePacket message format: %s", msg.Data)
			replyParty(msg, nil, parties.ErrValidation)
			return
		}

		// packet.OwnerID is deliberately ignored, the actor becomes the owner
		party, err := instance.Parties.Create(packet.ActorID, packet.Name)
		countParty("create", err)
		if err == nil {
			metrics.PartyCount.Inc()
		}
		replyParty(msg, party, err)
	})
	if err != nil {
		logrus.Fatalf("Error subscribing to subject %s: %v", subject, err)
	}
	logrus.Infof("Listening for party creations on subject '%s'", subject)
}

func fetchPartyHandler(nc *nats.Conn, instance *app.Soiree) {
	const subject = "party.fetch.request"

	_, err := nc.Subscribe(env.EnsurePrefixed(subject), func(msg *nats.Msg) {
		var packet parties.PartyFetchPacket
		if err := json.Unmarshal(msg.Data, &packet); err != nil {
			logrus.Warnf("Invalid PartyFetchPacket message format: %s", msg.Data)
			replyParty(msg, nil, parties.ErrValidation)
			return
		}

		party, err := instance.Parties.Get(packet.ActorID, packet.PartyID)
		countParty("fetch", err)
		replyParty(msg, party, err)
	})
	if err != nil {
		logrus.Fatalf("Error subscribing to subject %s: %v", subject, err)
	}
	logrus.Infof("Listening for party fetches on subject '%s'", subject)
}

func listPartiesHandler(nc *nats.Conn, instance *app.Soiree) {
	const subject = "party.all.request"

	_, err := nc.Subscribe(env.EnsurePrefixed(subject), func(msg *nats.Msg) {
		var packet parties.PartyListPacket
		if err := json.Unmarshal(msg.Data, &packet); err != nil {
			logrus.Warnf("Invalid PartyListPacket message format: %s", msg.Data)
			replyPartyList(msg, nil, parties.ErrValidation)
			return
		}

		visible, err := instance.Parties.List(packet.ActorID)
		countParty("list", err)
		replyPartyList(msg, visible, err)
	})
	if err != nil {
		logrus.Fatalf("Error subscribing to subject %s: %v", subject, err)
	}
	logrus.Infof("Listening for party list requests on subject '%s'", subject)
}

func minePartiesHandler(nc *nats.Conn, instance *app.Soiree) {
	const subject = "party.mine.request"

	_, err := nc.Subscribe(env.EnsurePrefixed(subject), func(msg *nats.Msg) {
		var packet parties.PartyListPacket
		if err := json.Unmarshal(msg.Data, &packet); err != nil {
			logrus.Warnf("Invalid PartyListPacket message format: %s", msg.Data)
			replyPartyList(msg, nil, parties.ErrValidation)
			return
		}

		owned, err := instance.Parties.ListMine(packet.ActorID)
		countParty("mine", err)
		replyPartyList(msg, owned, err)
	})
	if err != nil {
		logrus.Fatalf("Error subscribing to subject %s: %v", subject, err)
	}
	logrus.Infof("Listening for owned party list requests on subject '%s'", subject)
}

func updatePartyHandler(nc *nats.Conn, instance *app.Soiree) {
	const subject = "party.update.request"

	_, err := nc.Subscribe(env.EnsurePrefixed(subject), func(msg *nats.Msg) {
		var packet parties.PartyUpdatePacket
		if err := json.Unmarshal(msg.Data, &packet); err != nil {
			logrus.Warnf("Invalid PartyUpdatePacket message format: %s", msg.Data)
			replyParty(msg, nil, parties.ErrValidation)
			return
		}

		// packet.OwnerID is deliberately ignored, ownership stays with the actor
		party, err := instance.Parties.Update(packet.ActorID, packet.PartyID, parties.PartyUpdate{
			Name: packet.Name,
		})
		countParty("update", err)
		replyParty(msg, party, err)
	})
	if err != nil {
		logrus.Fatalf("Error subscribing to subject %s: %v", subject, err)
	}
	logrus.Infof("Listening for party updates on subject '%s'", subject)
}

func leavePartyHandler(nc *nats.Conn, instance *app.Soiree) {
	const subject = "party.leave.request"

	_, err := nc.Subscribe(env.EnsurePrefixed(subject), func(msg *nats.Msg) {
		var packet parties.PartyLeavePacket
		if err := json.Unmarshal(msg.Data, &packet); err != nil {
			logrus.Warnf("Invalid PartyLeavePacket message format: %s", msg.Data)
			reply(msg, false, "ERR_VALIDATION")
			return
		}

		decision, err := instance.Parties.Delete(packet.ActorID, packet.PartyID)
		countParty("leave", err)
		if err != nil {
			reply(msg, false, reasonFor(err))
			return
		}

		if decision == parties.LeaveDisband {
			metrics.PartyCount.Dec()
			reply(msg, true, "PARTY_DISBANDED")
			return
		}
		reply(msg, true, "PARTY_LEFT")
	})
	if err != nil {
		logrus.Fatalf("Error subscribing to subject %s: %v", subject, err)
	}
	logrus.Infof("Listening for party leave requests on subject '%s'", subject)
}

// reasonFor maps engine errors onto wire reason codes.
func reasonFor(err error) string {
	switch {
	case errors.Is(err, parties.ErrForbidden):
		return "ERR_FORBIDDEN"
	case errors.Is(err, parties.ErrNotFound):
		return "ERR_NOT_FOUND"
	case errors.Is(err, parties.ErrValidation):
		return "ERR_VALIDATION"
	case errors.Is(err, parties.ErrConflict):
		return "ERR_CONFLICT"
	default:
		return "ERR_INTERNAL"
	}
}

func statusFor(err error) string {
	if err == nil {
		return "success"
	}
	return "error"
}

func countParty(operation string, err error) {
	metrics.PartyRequests.WithLabelValues(operation, statusFor(err)).Inc()
}

func reply(msg *nats.Msg, success bool, reason string) {
	ack, err1 := json.Marshal(&parties.GenericResponsePacket{
		Success: success,
		Message: reason,
	})
	if err1 != nil {
		logrus.Errorf("Error marshalling party packet response: %v", err1)
		return
	}
	if err := msg.Respond(ack); err != nil {
		logrus.Errorf("Error sending acknowledgment: %v", err)
	}
}

func replyParty(msg *nats.Msg, party *parties.Party, err error) {
	packet := &parties.PartyResponsePacket{Success: err == nil, Party: party}
	if err != nil {
		packet.Message = reasonFor(err)
	}
	respond(msg, packet)
}

func replyPartyList(msg *nats.Msg, list []parties.Party, err error) {
	if list == nil {
		list = []parties.Party{}
	}
	packet := &parties.PartyListResponsePacket{Success: err == nil, Parties: list}
	if err != nil {
		packet.Message = reasonFor(err)
		packet.Parties = []parties.Party{}
	}
	respond(msg, packet)
}

func respond(msg *nats.Msg, packet interface{}) {
	ack, err := json.Marshal(packet)
	if err != nil {
		logrus.Errorf("Error marshalling party packet response: %v", err)
		return
	}
	if err := msg.Respond(ack); err != nil {
		logrus.Errorf("Error sending acknowledgment: %v", err)
	}
}
