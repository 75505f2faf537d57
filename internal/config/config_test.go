package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taekwondodev/bitcoin-p2p/pkg/wire"
)

func TestMagicForKnownNetworks(t *testing.T) {
	cases := map[string]uint32{
		"mainnet":  wire.MainNet,
		"testnet3": wire.TestNet3,
		"signet":   wire.SigNet,
		"regtest":  wire.RegTest,
	}

	for network, want := range cases {
		cfg := DefaultConfig()
		cfg.Network = network

		magic, err := cfg.Magic()
		require.NoError(t, err, network)
		require.Equal(t, want, magic, network)
	}
}

func TestMagicRejectsUnknownNetwork(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Network = "moonnet"

	_, err := cfg.Magic()
	require.ErrorContains(t, err, "moonnet")
}
