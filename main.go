package main

import (
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"github.com/soiree-app/soiree/app"
	"github.com/soiree-app/soiree/env"
	"github.com/soiree-app/soiree/handlers"
	"github.com/soiree-app/soiree/metrics"
	"github.com/soiree-app/soiree/parties"
	"github.com/soiree-app/soiree/storage"
	"github.com/soiree-app/soiree/utils"
)

func main() {
	utils.InitLogger()
	env.Load()

	// Initialize Prometheus metrics
	metrics.InitMetrics()
	metrics.ServeMetrics(env.MetricsAddr())

	// Open the record store
	store, err := storage.New(env.DatabasePath())
	if err != nil {
		logrus.Fatalf("Error opening storage: %v", err)
	}
	if count, err := store.CountParties(); err == nil {
		metrics.PartyCount.Set(float64(count))
	}

	// Connect to NATS server
	nc, err := nats.Connect(env.NatsUrl())
	if err != nil {
		logrus.Fatalf("Error connecting to NATS: %v", err)
	}
	defer nc.Close()
	logrus.Info("Connected to NATS!")

	// Initialize the services
	instance := &app.Soiree{
		Store:   store,
		Parties: parties.NewPartyService(store),
		Invites: parties.NewInviteService(store),
	}

	// Set up handlers
	handlers.RegisterParties(nc, instance)
	handlers.RegisterPartyInvites(nc, instance)

	// Keep the service running
	select {}
}
