package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceKafka, cfg.Source)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "sim-engine-stream", cfg.KafkaSourceTopic)
	assert.Equal(t, "sim-replicate-results", cfg.KafkaSinkTopic)
	assert.Equal(t, "sim-results-etl", cfg.KafkaGroupID)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 1, cfg.EngineReplicates)
	assert.False(t, cfg.SkipMalformed)
	assert.False(t, cfg.GeocodeEnabled)
	assert.Empty(t, cfg.GridMetadataFile)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SOURCE_TOPIC", "custom-source")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("SKIP_MALFORMED", "true")
	t.Setenv("GEOCODE_ENABLED", "true")
	t.Setenv("GRID_METADATA_FILE", "/etc/sim/grid.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-source", cfg.KafkaSourceTopic)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.SkipMalformed)
	assert.True(t, cfg.GeocodeEnabled)
	assert.Equal(t, "/etc/sim/grid.yaml", cfg.GridMetadataFile)
}

func TestLoad_BrokersTrimmed(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " broker1:9092 , ,broker2:9092 ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_UnknownSource(t *testing.T) {
	t.Setenv("SOURCE", "carrier-pigeon")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SOURCE")
}

func TestLoad_EngineSource(t *testing.T) {
	t.Setenv("SOURCE", "engine")
	t.Setenv("ENGINE_URL", "https://engine.example.com/runReplicates")
	t.Setenv("ENGINE_API_KEY", "test-key")
	t.Setenv("ENGINE_CODE_FILE", "/etc/sim/model.josh")
	t.Setenv("ENGINE_SIMULATION", "Main")
	t.Setenv("ENGINE_REPLICATES", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceEngine, cfg.Source)
	assert.Equal(t, "https://engine.example.com/runReplicates", cfg.EngineURL)
	assert.Equal(t, "test-key", cfg.EngineAPIKey)
	assert.Equal(t, "/etc/sim/model.josh", cfg.EngineCodeFile)
	assert.Equal(t, "Main", cfg.EngineSimulation)
	assert.Equal(t, 25, cfg.EngineReplicates)
}

func TestLoad_EngineSourceMissingURL(t *testing.T) {
	t.Setenv("SOURCE", "engine")
	t.Setenv("ENGINE_CODE_FILE", "/etc/sim/model.josh")
	t.Setenv("ENGINE_SIMULATION", "Main")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENGINE_URL")
}

func TestLoad_EngineSourceMissingCodeFile(t *testing.T) {
	t.Setenv("SOURCE", "engine")
	t.Setenv("ENGINE_URL", "https://engine.example.com/runReplicates")
	t.Setenv("ENGINE_SIMULATION", "Main")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENGINE_CODE_FILE")
}

func TestLoad_InvalidEngineReplicates(t *testing.T) {
	t.Setenv("ENGINE_REPLICATES", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENGINE_REPLICATES")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_GeocodeEnabledWithoutGridFile(t *testing.T) {
	t.Setenv("GEOCODE_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GRID_METADATA_FILE")
}
