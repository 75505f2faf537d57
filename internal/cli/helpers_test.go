package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taekwondodev/bitcoin-p2p/pkg/wire"
)

func TestSummarizePayload(t *testing.T) {
	unknownCmd, err := wire.NewCommand("foobar")
	require.NoError(t, err)

	cases := []struct {
		payload wire.Payload
		want    string
	}{
		{&wire.Ping{Nonce: 7}, "nonce 7"},
		{&wire.Inv{Items: make([]wire.InvVect, 3)}, "3 items"},
		{&wire.Headers{Headers: []*wire.BlockHeader{{}}}, "1 headers"},
		{&wire.FeeFilter{MinFee: 1000}, "min fee 1000 sat/kvB"},
		{&wire.Unknown{Command: unknownCmd, Data: []byte{1, 2}}, `unrecognized command "foobar", 2 payload bytes`},
		{&wire.Verack{}, "empty"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, summarizePayload(tc.payload))
	}
}
