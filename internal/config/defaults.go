package config

import "time"

const (
	DefaultPort      = "10000"
	DefaultLogLevel  = "info"
	DefaultTransport = TransportSSE

	DefaultHTTPTimeout    = 30 * time.Second
	DefaultUpdateBodyMode = "split"

	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultShutdownTimeout   = 30 * time.Second

	DefaultKafkaAuditTopic = "joomla-article-audit"
)
