// Package config loads and validates process configuration from the
// environment. The Joomla base URL and bearer token are required: their
// absence is a fatal startup condition, never a per-call error.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"joomlamcp/pkg/logger"
)

const (
	TransportSSE   = "sse"
	TransportStdio = "stdio"

	BodyModeSplit    = "split"
	BodyModeCombined = "combined"
)

type Config struct {
	JoomlaBaseURL string
	BearerToken   string

	Port      string
	Transport string

	HTTPTimeout    time.Duration
	UpdateBodyMode string

	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration

	KafkaBrokers    []string
	KafkaAuditTopic string

	Log *logger.Logger
}

func Load(serviceName string) *Config {
	cfg := &Config{
		JoomlaBaseURL: strings.TrimRight(getEnvStr(EnvJoomlaBaseURL, ""), "/"),
		BearerToken:   getEnvStr(EnvBearerToken, ""),

		Port:      getEnvStr(EnvPort, DefaultPort),
		Transport: getEnvStr(EnvTransport, DefaultTransport),

		HTTPTimeout:    getEnvDuration(EnvHTTPTimeout, DefaultHTTPTimeout),
		UpdateBodyMode: getEnvStr(EnvUpdateBodyMode, DefaultUpdateBodyMode),

		ReadHeaderTimeout: getEnvDuration(EnvReadHeaderTimeout, DefaultReadHeaderTimeout),
		IdleTimeout:       getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout:   getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		KafkaBrokers:    getEnvList(EnvKafkaBrokers),
		KafkaAuditTopic: getEnvStr(EnvKafkaAuditTopic, DefaultKafkaAuditTopic),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) Validate() error {
	var errs []string

	if cfg.JoomlaBaseURL == "" {
		errs = append(errs, fmt.Sprintf("%s must be set", EnvJoomlaBaseURL))
	} else if !regexp.MustCompile(`^https?://`).MatchString(cfg.JoomlaBaseURL) {
		errs = append(errs, fmt.Sprintf("%s must start with 'http://' or 'https://', got: %s", EnvJoomlaBaseURL, cfg.JoomlaBaseURL))
	}

	if cfg.BearerToken == "" {
		errs = append(errs, fmt.Sprintf("%s must be set", EnvBearerToken))
	}

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.Transport != TransportSSE && cfg.Transport != TransportStdio {
		errs = append(errs, fmt.Sprintf("Transport must be %q or %q, got: %s", TransportSSE, TransportStdio, cfg.Transport))
	}

	if cfg.UpdateBodyMode != BodyModeSplit && cfg.UpdateBodyMode != BodyModeCombined {
		errs = append(errs, fmt.Sprintf("UpdateBodyMode must be %q or %q, got: %s", BodyModeSplit, BodyModeCombined, cfg.UpdateBodyMode))
	}

	if cfg.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("HTTPTimeout must be positive, got: %s", cfg.HTTPTimeout))
	}
	if cfg.ReadHeaderTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ReadHeaderTimeout must be positive, got: %s", cfg.ReadHeaderTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(errs) > 0 {
		msg := "Configuration validation failed:\n"
		for i, e := range errs {
			msg += fmt.Sprintf("  %d. %s\n", i+1, e)
		}
		return fmt.Errorf("%s", msg)
	}

	return nil
}

func (cfg *Config) AuditEnabled() bool {
	return len(cfg.KafkaBrokers) > 0
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"joomla_base_url", cfg.JoomlaBaseURL,
		"bearer_token_set", cfg.BearerToken != "",
		"port", cfg.Port,
		"transport", cfg.Transport,
		"http_timeout", cfg.HTTPTimeout,
		"update_body_mode", cfg.UpdateBodyMode,
		"read_header_timeout", cfg.ReadHeaderTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"audit_enabled", cfg.AuditEnabled(),
		"kafka_audit_topic", cfg.KafkaAuditTopic,
	)
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
