package config

const (
	EnvJoomlaBaseURL = "JOOMLA_BASE_URL"
	EnvBearerToken   = "BEARER_TOKEN"

	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvTransport = "MCP_TRANSPORT"

	EnvHTTPTimeout    = "HTTP_TIMEOUT"
	EnvUpdateBodyMode = "UPDATE_BODY_MODE"

	EnvReadHeaderTimeout = "READ_HEADER_TIMEOUT"
	EnvIdleTimeout       = "IDLE_TIMEOUT"
	EnvShutdownTimeout   = "SHUTDOWN_TIMEOUT"

	EnvKafkaBrokers    = "KAFKA_BROKERS"
	EnvKafkaAuditTopic = "KAFKA_AUDIT_TOPIC"
)
