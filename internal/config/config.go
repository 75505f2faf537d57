package config

import (
	"fmt"
	"time"

	"github.com/taekwondodev/bitcoin-p2p/pkg/wire"
)

type Config struct {
	Interactive  bool
	Network      string
	Listen       string
	Bootstrap    []string
	UserAgent    string
	AddrBookPath string
	PingInterval time.Duration
	LogLevel     string
}

func DefaultConfig() *Config {
	return &Config{
		Interactive:  false,
		Network:      "mainnet",
		Listen:       ":8333",
		Bootstrap:    []string{},
		UserAgent:    "/bitcoin-p2p:0.1.0/",
		AddrBookPath: "addrbook.db",
		PingInterval: 2 * time.Minute,
		LogLevel:     "info",
	}
}

// Magic returns the network magic for the configured network name.
func (c *Config) Magic() (uint32, error) {
	switch c.Network {
	case "mainnet":
		return wire.MainNet, nil
	case "testnet3":
		return wire.TestNet3, nil
	case "signet":
		return wire.SigNet, nil
	case "regtest":
		return wire.RegTest, nil
	default:
		return 0, fmt.Errorf("unknown network %q", c.Network)
	}
}
