package handlers

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"github.com/soiree-app/soiree/app"
	"github.com/soiree-app/soiree/env"
	"github.com/soiree-app/soiree/metrics"
	"github.com/soiree-app/soiree/parties"
)

func RegisterPartyInvites(nc *nats.Conn, instance *app.Soiree) {
	sendInviteHandler(nc, instance)
	acceptInviteHandler(nc, instance)
	deleteInviteHandler(nc, instance)
	listInvitesHandler(nc, instance)
	myInvitesHandler(nc, instance)
}

func sendInviteHandler(nc *nats.Conn, instance *app.Soiree) {
	const subject = "party.invites.send"

	_, err := nc.Subscribe(env.EnsurePrefixed(subject), func(msg *nats.Msg) {
		var packet parties.InviteSendPacket
		if err := json.Unmarshal(msg.Data, &packet); err != nil {
			logrus.Warnf("Invalid InviteSendPacket message format: %s", msg.Data)
			replyInvite(msg, nil, parties.ErrValidation)
			return
		}

		invitation, err := instance.Invites.Create(packet.ActorID, packet.PartyID, packet.ReceiverID)
		countInvite("send", err)
		replyInvite(msg, invitation, err)
		if err != nil {
			return
		}

		// broadcast the invite so the receiver can be notified
		notice, err1 := json.Marshal(invitation)
		if err1 != nil {
			logrus.Errorf("Error marshalling party invite notice: %v", err1)
			return
		}
		if err := nc.Publish(env.EnsurePrefixed("party.invites.send.notify"), notice); err != nil {
			logrus.Errorf("Error publishing party invite notice: %v", err)
		}
	})
	if err != nil {
		logrus.Fatalf("Error subscribing to subject %s: %v", subject, err)
	}
	logrus.Infof("Listening for party invite sends on subject '%s'", subject)
}

func acceptInviteHandler(nc *nats.Conn, instance *app.Soiree) {
	const subject = "party.invites.accept"

	_, err := nc.Subscribe(env.EnsurePrefixed(subject), func(msg *nats.Msg) {
		var packet parties.InviteAcceptPacket
		if err := json.Unmarshal(msg.Data, &packet); err != nil {
			logrus.Warnf("Invalid InviteAcceptPacket message format: %s", msg.Data)
			reply(msg, false, "ERR_VALIDATION")
			return
		}

		invitation, err := instance.Invites.Accept(packet.ActorID, packet.InvitationID)
		countInvite("accept", err)
		if err != nil {
			reply(msg, false, reasonFor(err))
			return
		}

		// A mismatched actor gets the same success shape as a real acceptance,
		// minus any effect.
		if invitation == nil {
			reply(msg, true, "NO_EFFECT")
			return
		}

		reply(msg, true, "")
		sendJoin(nc, *invitation)
	})
	if err != nil {
		logrus.Fatalf("Error subscribing to subject %s: %v", subject, err)
	}
	logrus.Infof("Listening for party invite acceptances on subject '%s'", subject)
}

func deleteInviteHandler(nc *nats.Conn, instance *app.Soiree) {
	const subject = "party.invites.delete"

	_, err := nc.Subscribe(env.EnsurePrefixed(subject), func(msg *nats.Msg) {
		var packet parties.InviteDeletePacket
		if err := json.Unmarshal(msg.Data, &packet); err != nil {
			logrus.Warnf("Invalid InviteDeletePacket message format: %s", msg.Data)
			reply(msg, false, "ERR_VALIDATION")
			return
		}

		err := instance.Invites.Delete(packet.ActorID, packet.InvitationID)
		countInvite("delete", err)
		if err != nil {
			reply(msg, false, reasonFor(err))
			return
		}
		reply(msg, true, "")
	})
	if err != nil {
		logrus.Fatalf("Error subscribing to subject %s: %v", subject, err)
	}
	logrus.Infof("Listening for party invite deletions on subject '%s'", subject)
}

func listInvitesHandler(nc *nats.Conn, instance *app.Soiree) {
	const subject = "party.invites.list.request"

	_, err := nc.Subscribe(env.EnsurePrefixed(subject), func(msg *nats.Msg) {
		var packet parties.InviteListPacket
		if err := json.Unmarshal(msg.Data, &packet); err != nil {
			logrus.Warnf("Invalid InviteListPacket message format: %s", msg.Data)
			replyInviteList(msg, nil, parties.ErrValidation)
			return
		}

		invitations, err := instance.Invites.ListForParty(packet.ActorID, packet.PartyID)
		countInvite("list", err)
		replyInviteList(msg, invitations, err)
	})
	if err != nil {
		logrus.Fatalf("Error subscribing to subject %s: %v", subject, err)
	}
	logrus.Infof("Listening for party invite list requests on subject '%s'", subject)
}

func myInvitesHandler(nc *nats.Conn, instance *app.Soiree) {
	const subject = "party.invites.mine.request"

	_, err := nc.Subscribe(env.EnsurePrefixed(subject), func(msg *nats.Msg) {
		var packet parties.InviteMinePacket
		if err := json.Unmarshal(msg.Data, &packet); err != nil {
			logrus.Warnf("Invalid InviteMinePacket message format: %s", msg.Data)
			replyInviteList(msg, nil, parties.ErrValidation)
			return
		}

		invitations, err := instance.Invites.ListMine(packet.ActorID)
		countInvite("mine", err)
		replyInviteList(msg, invitations, err)
	})
	if err != nil {
		logrus.Fatalf("Error subscribing to subject %s: %v", subject, err)
	}
	logrus.Infof("Listening for received invite list requests on subject '%s'", subject)
}

func sendJoin(nc *nats.Conn, invitation parties.PartyInvitation) {
	const subject = "party.invites.accept.notify"

	marshal, err1 := json.Marshal(invitation)
	if err1 != nil {
		logrus.Errorf("Error marshalling party invite acceptance notice: %v", err1)
		return
	}
	if err := nc.Publish(env.EnsurePrefixed(subject), marshal); err != nil {
		logrus.Errorf("Error publishing party invite acceptance notice: %v", err)
	}
}

func countInvite(operation string, err error) {
	metrics.InviteRequests.WithLabelValues(operation, statusFor(err)).Inc()
}

func replyInvite(msg *nats.Msg, invitation *parties.PartyInvitation, err error) {
	packet := &parties.InviteResponsePacket{Success: err == nil, Invitation: invitation}
	if err != nil {
		packet.Message = reasonFor(err)
	}
	respond(msg, packet)
}

func replyInviteList(msg *nats.Msg, list []parties.PartyInvitation, err error) {
	if list == nil {
		list = []parties.PartyInvitation{}
	}
	packet := &parties.InviteListResponsePacket{Success: err == nil, Invitations: list}
	if err != nil {
		packet.Message = reasonFor(err)
		packet.Invitations = []parties.PartyInvitation{}
	}
	respond(msg, packet)
}
