package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTxSegwitMarkerAndFlag(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testWitnessTx().Encode(&buf))

	raw := buf.Bytes()
	require.Equal(t, byte(0x00), raw[4], "marker after version")
	require.Equal(t, byte(0x01), raw[5], "flag after marker")
}

func TestTxLegacyEncodingHasNoMarker(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testTx().Encode(&buf))

	// Byte 4 is the input count, which is never zero for a legacy tx.
	require.Equal(t, byte(0x01), buf.Bytes()[4])
}

func TestTxRejectsUnsupportedSegwitFlag(t *testing.T) {
	raw := []byte{
		0x01, 0x00, 0x00, 0x00, // version
		0x00, 0x02, // marker, bad flag
	}

	var tx Tx
	err := tx.Decode(bytes.NewReader(raw))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "unsupported segwit flag", perr.Reason)
}

func TestTxHashIgnoresWitness(t *testing.T) {
	require.Equal(t, testTx().TxHash(), testWitnessTx().TxHash())
}
