package config

import (
	"flag"
	"strings"
	"time"
)

func LoadFromFlags() *Config {
	cfg := DefaultConfig()

	var bootstrap string
	var pingInterval int
	flag.BoolVar(&cfg.Interactive, "interactive", cfg.Interactive, "Run in interactive mode")
	flag.StringVar(&cfg.Network, "network", cfg.Network, "Network to join (mainnet, testnet3, signet, regtest)")
	flag.StringVar(&cfg.Listen, "listen", cfg.Listen, "Address to listen on")
	flag.StringVar(&bootstrap, "bootstrap", "", "Comma-separated peer addresses to connect to at startup")
	flag.StringVar(&cfg.UserAgent, "user-agent", cfg.UserAgent, "User agent advertised in the version message")
	flag.StringVar(&cfg.AddrBookPath, "addrbook", cfg.AddrBookPath, "Path to the peer address database")
	flag.IntVar(&pingInterval, "ping-interval", int(cfg.PingInterval.Seconds()),
		"Seconds between keepalive pings")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (trace, debug, info, warn, error)")

	flag.Parse()

	if !strings.HasPrefix(cfg.Listen, ":") && !strings.Contains(cfg.Listen, ":") {
		cfg.Listen = ":" + cfg.Listen
	}

	if bootstrap != "" {
		for _, addr := range strings.Split(bootstrap, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				cfg.Bootstrap = append(cfg.Bootstrap, addr)
			}
		}
	}

	cfg.PingInterval = time.Duration(pingInterval) * time.Second

	return cfg
}
