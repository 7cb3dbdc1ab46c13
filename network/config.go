package network

import (
	"time"

	"github.com/lixenwraith/vi-racer/parameter"
)

// Config holds bridge configuration
type Config struct {
	// Address to bind
	Address string

	// TickRate is the per-session simulation rate (Hz)
	TickRate int

	// SnapshotEvery sends one snapshot per this many ticks
	SnapshotEvery int

	// Connection limits
	MaxPeers int

	// Timing
	WriteTimeout time.Duration
	PongTimeout  time.Duration
	PingInterval time.Duration

	// Buffer sizes
	MaxMessageSize int64
	SendQueueSize  int
}

// DefaultConfig returns production-safe defaults
func DefaultConfig() *Config {
	return &Config{
		Address:        parameter.NetworkAddress,
		TickRate:       parameter.NetworkTickRate,
		SnapshotEvery:  parameter.NetworkSnapshotEvery,
		MaxPeers:       16,
		WriteTimeout:   parameter.NetworkWriteTimeout,
		PongTimeout:    parameter.NetworkPongTimeout,
		PingInterval:   parameter.NetworkPingInterval,
		MaxMessageSize: parameter.NetworkMaxMessageSize,
		SendQueueSize:  64,
	}
}

func (c *Config) tickInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = parameter.NetworkTickRate
	}
	return time.Second / time.Duration(rate)
}
