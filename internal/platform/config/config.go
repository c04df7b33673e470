package config

import (
	"os"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	DataDir     string
	PostgresDSN string

	EnableSettlementOutboxRelay bool
	EnablePaymentCompletion     bool
	EnableStageAdvanceConsumer  bool
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "collabo"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		DataDir:     dataDir,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		EnableSettlementOutboxRelay: envBool("ENABLE_SETTLEMENT_OUTBOX_RELAY", true),
		EnablePaymentCompletion:     envBool("ENABLE_PAYMENT_COMPLETION", true),
		EnableStageAdvanceConsumer:  envBool("ENABLE_STAGE_ADVANCE_CONSUMER", true),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
