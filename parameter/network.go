package parameter

import "time"

// Websocket bridge
const (
	// NetworkAddress is the default listen address of the track server
	NetworkAddress = ":7777"

	// NetworkTickRate is the simulation rate of server-side sessions (Hz)
	NetworkTickRate = 60

	// NetworkWriteTimeout bounds a single snapshot write
	NetworkWriteTimeout = 5 * time.Second

	// NetworkPongTimeout is the read deadline refreshed by pongs
	NetworkPongTimeout = 30 * time.Second

	// NetworkPingInterval must be shorter than NetworkPongTimeout
	NetworkPingInterval = 10 * time.Second

	// NetworkMaxMessageSize caps client input messages
	NetworkMaxMessageSize = 4096

	// NetworkSnapshotEvery sends one snapshot per this many ticks
	NetworkSnapshotEvery = 2
)
