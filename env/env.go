package env

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads the optional .env file. Variables already present in the
// process environment win over file values.
func Load() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using process environment")
	}
}

func NatsUrl() string {
	username := os.Getenv("NATS_USERNAME")
	password := os.Getenv("NATS_PASSWORD")
	hostname := os.Getenv("NATS_HOSTNAME")
	port := os.Getenv("NATS_PORT")

	return fmt.Sprintf("nats://%s:%s@%s:%s", username, password, hostname, port)
}

// EnsurePrefixed prepends the configured subject prefix, allowing multiple
// environments (dev, staging, prod) to share one NATS cluster.
func EnsurePrefixed(subject string) string {
	prefix := os.Getenv("NATS_SUBJECT_PREFIX")
	if prefix == "" {
		return subject
	}
	if strings.HasPrefix(subject, prefix+".") {
		return subject
	}
	return prefix + "." + subject
}

func DatabasePath() string {
	if path := os.Getenv("DATABASE_PATH"); path != "" {
		return path
	}
	return "soiree.db"
}

func MetricsAddr() string {
	if addr := os.Getenv("METRICS_ADDR"); addr != "" {
		return addr
	}
	return ":8081"
}
