package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Remote indicator table store.
	TableStoreURL       string
	TableStoreKey       string
	TableStoreTable     string
	TableStoreEnabled   bool
	TableStoreTimeout   time.Duration
	TableStoreCacheSize int

	// ZonesFile replaces the built-in zone catalog when set.
	ZonesFile string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	storeTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("TABLESTORE_TIMEOUT", "5s"))
	if err != nil || storeTimeout <= 0 {
		return nil, errors.New("invalid TABLESTORE_TIMEOUT")
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	cacheSize, err := parseTableStoreCacheSize()
	if err != nil {
		return nil, err
	}

	storeURL := strings.TrimRight(os.Getenv("TABLESTORE_URL"), "/")
	storeEnabled := storeURL != ""
	if v := os.Getenv("TABLESTORE_ENABLED"); v != "" {
		storeEnabled = v == "true"
	}

	cfg := &Config{
		KafkaEnabled:       sharedcfg.EnvOrDefault("KAFKA_ENABLED", "true") == "true",
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "scenario-requests"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "simulated-indicators"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "climatquartier-scenario"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		TableStoreURL:       storeURL,
		TableStoreKey:       os.Getenv("TABLESTORE_KEY"),
		TableStoreTable:     sharedcfg.EnvOrDefault("TABLESTORE_TABLE", "indicateurs"),
		TableStoreEnabled:   storeEnabled,
		TableStoreTimeout:   storeTimeout,
		TableStoreCacheSize: cacheSize,

		ZonesFile: os.Getenv("ZONES_FILE"),
	}

	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required")
		}
		if cfg.KafkaSourceTopic == "" {
			return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_SINK_TOPIC is required")
		}
	}
	if cfg.TableStoreEnabled && cfg.TableStoreURL == "" {
		return nil, errors.New("TABLESTORE_ENABLED is true but TABLESTORE_URL is not set")
	}
	if cfg.TableStoreEnabled && cfg.TableStoreTable == "" {
		return nil, errors.New("TABLESTORE_TABLE is required when the table store is enabled")
	}

	return cfg, nil
}

func parseTableStoreCacheSize() (int, error) {
	s := os.Getenv("TABLESTORE_CACHE_SIZE")
	if s == "" {
		return 256, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid TABLESTORE_CACHE_SIZE: must be a positive integer")
	}
	return n, nil
}
