package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Source selects where stream chunks come from.
const (
	SourceKafka  = "kafka"
	SourceEngine = "engine"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	Source string // "kafka" or "engine"

	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string

	// Remote engine settings, used when Source is "engine".
	EngineURL        string
	EngineAPIKey     string
	EngineCodeFile   string
	EngineSimulation string
	EngineReplicates int

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// SkipMalformed switches the stream parser from strict mode (the first
	// malformed line fails the run) to lenient mode (log, count, continue).
	SkipMalformed bool

	// Geocoding configuration.
	GeocodeEnabled   bool
	GridMetadataFile string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	geocodeEnabled := envOrDefault("GEOCODE_ENABLED", "false") == "true"

	engineReplicates, err := parsePositiveInt("ENGINE_REPLICATES", 1)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Source:           envOrDefault("SOURCE", SourceKafka),
		KafkaBrokers:     parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic: envOrDefault("KAFKA_SOURCE_TOPIC", "sim-engine-stream"),
		KafkaSinkTopic:   envOrDefault("KAFKA_SINK_TOPIC", "sim-replicate-results"),
		KafkaGroupID:     envOrDefault("KAFKA_GROUP_ID", "sim-results-etl"),
		EngineURL:        os.Getenv("ENGINE_URL"),
		EngineAPIKey:     os.Getenv("ENGINE_API_KEY"),
		EngineCodeFile:   os.Getenv("ENGINE_CODE_FILE"),
		EngineSimulation: os.Getenv("ENGINE_SIMULATION"),
		EngineReplicates: engineReplicates,
		HTTPAddr:         envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		LogFormat:        envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,
		SkipMalformed:    envOrDefault("SKIP_MALFORMED", "false") == "true",
		GeocodeEnabled:   geocodeEnabled,
		GridMetadataFile: os.Getenv("GRID_METADATA_FILE"),
	}

	switch cfg.Source {
	case SourceKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required")
		}
		if cfg.KafkaSourceTopic == "" {
			return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
		}
	case SourceEngine:
		if cfg.EngineURL == "" {
			return nil, errors.New("SOURCE is engine but ENGINE_URL is not set")
		}
		if cfg.EngineCodeFile == "" {
			return nil, errors.New("SOURCE is engine but ENGINE_CODE_FILE is not set")
		}
		if cfg.EngineSimulation == "" {
			return nil, errors.New("SOURCE is engine but ENGINE_SIMULATION is not set")
		}
	default:
		return nil, fmt.Errorf("unknown SOURCE %q (expected kafka or engine)", cfg.Source)
	}

	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.GeocodeEnabled && cfg.GridMetadataFile == "" {
		return nil, errors.New("GEOCODE_ENABLED is true but GRID_METADATA_FILE is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}

func parsePositiveInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return n, nil
}

func parseDuration(key, fallback string) (time.Duration, error) {
	raw := envOrDefault(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}
