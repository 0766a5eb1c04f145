package store

import (
	"time"

	"storefront/internal/platform/config"
)

// Config selects the backends Open connects
type Config struct {
	AppName string
	PG      PGConfig
}

// PGConfig is the postgres connection and statement logging setup
type PGConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32
	// LogSQL logs every statement; slow and failed ones are always logged
	LogSQL bool
	// Slow marks statements at or above this duration; zero disables
	Slow time.Duration

	// ConnectRetries and PingTimeout bound the boot wait; zero picks the defaults
	ConnectRetries int
	PingTimeout    time.Duration
}

const (
	defaultConnectRetries = 20
	defaultPingTimeout    = 3 * time.Second
)

// PGFromConfig reads DBURL, MAX_CONNS, LOG_SQL, SLOW and CONNECT_RETRIES from cfg
func PGFromConfig(cfg config.Conf) PGConfig {
	return PGConfig{
		Enabled:        true,
		URL:            cfg.MustString("DBURL"),
		MaxConns:       int32(cfg.MayInt("MAX_CONNS", 4)),
		LogSQL:         cfg.MayBool("LOG_SQL", false),
		Slow:           cfg.MayDuration("SLOW", 500*time.Millisecond),
		ConnectRetries: cfg.MayInt("CONNECT_RETRIES", defaultConnectRetries),
		PingTimeout:    cfg.MayDuration("PING_TIMEOUT", defaultPingTimeout),
	}
}

func (c PGConfig) retries() int {
	if c.ConnectRetries <= 0 {
		return defaultConnectRetries
	}
	return c.ConnectRetries
}

func (c PGConfig) pingTimeout() time.Duration {
	if c.PingTimeout <= 0 {
		return defaultPingTimeout
	}
	return c.PingTimeout
}
