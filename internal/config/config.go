package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/metar-etl-service/internal/domain"
	"github.com/couchcryptid/metar-etl-service/internal/metar"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
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

	// Decoding and output.
	SinkFormat    string
	MonthRollover metar.RolloverPolicy

	// Station directory configuration.
	StationLookupEnabled bool
	StationAPIURL        string
	StationTimeout       time.Duration
	StationCacheSize     int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	rollover, err := metar.ParseRolloverPolicy(sharedcfg.EnvOrDefault("MONTH_ROLLOVER", "previous"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONTH_ROLLOVER: %w", err)
	}

	stationTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("STATION_TIMEOUT", "5s"))
	if err != nil || stationTimeout <= 0 {
		return nil, errors.New("invalid STATION_TIMEOUT")
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "raw-metar-reports"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "parsed-metar-reports"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "metar-etl"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		SinkFormat:    sharedcfg.EnvOrDefault("SINK_FORMAT", domain.FormatJSON),
		MonthRollover: rollover,

		StationLookupEnabled: os.Getenv("STATION_LOOKUP_ENABLED") == "true",
		StationAPIURL:        sharedcfg.EnvOrDefault("STATION_API_URL", "https://aviationweather.gov/api/data/stationinfo"),
		StationTimeout:       stationTimeout,
		StationCacheSize:     parseStationCacheSize(),
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.SinkFormat != domain.FormatJSON && cfg.SinkFormat != domain.FormatMsgpack {
		return nil, fmt.Errorf("invalid SINK_FORMAT %q: want json or msgpack", cfg.SinkFormat)
	}

	return cfg, nil
}

func parseStationCacheSize() int {
	if s := os.Getenv("STATION_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
