package notify

import "time"

// Config holds configuration for the notification channel.
type Config struct {
	// MaxClients is the subscription ceiling; Subscribe rejects beyond it.
	MaxClients int

	// KeepAliveInterval is how often each connection gets a ping frame to
	// keep proxies from closing idle connections.
	KeepAliveInterval time.Duration

	// SweepInterval is how often the shared sweep checks for dead clients.
	SweepInterval time.Duration

	// IdleTimeout force-closes a connection with no successful write
	// (ping or broadcast) within this window.
	IdleTimeout time.Duration

	// MaxConnectionAge force-closes a connection regardless of activity.
	MaxConnectionAge time.Duration
}

// DefaultConfig returns the default channel configuration.
// 10 seconds keep-alive is safe for most proxies and load balancers.
func DefaultConfig() *Config {
	return &Config{
		MaxClients:        100,
		KeepAliveInterval: 10 * time.Second,
		SweepInterval:     15 * time.Second,
		IdleTimeout:       45 * time.Second,
		MaxConnectionAge:  30 * time.Minute,
	}
}
