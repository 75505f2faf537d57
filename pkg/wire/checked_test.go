package wire

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckedRoundTrip(t *testing.T) {
	payload := []byte{0xde, 0xad, 0xbe, 0xef, 0x01}

	var buf bytes.Buffer
	require.NoError(t, writeChecked(&buf, payload))

	got, err := readChecked(&buf)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestCheckedChecksumMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeChecked(&buf, []byte("payload")))

	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0x40 // flip one payload bit

	_, err := readChecked(bytes.NewReader(raw))
	var cerr *ChecksumError
	require.ErrorAs(t, err, &cerr)
	require.NotEqual(t, cerr.Expected, cerr.Actual)
}

func TestCheckedOversizedLengthRejectedBeforeAllocation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(MaxPayloadSize+1)))

	// Only the 4 length bytes are present. If the length check did not run
	// first, decode would fail with a short read instead.
	_, err := readChecked(bytes.NewReader(buf.Bytes()))
	var oerr *OversizedError
	require.ErrorAs(t, err, &oerr)
	require.Equal(t, uint64(MaxPayloadSize+1), oerr.Requested)
	require.Equal(t, uint64(MaxPayloadSize), oerr.Max)
}

func TestCheckedEmptyPayloadChecksum(t *testing.T) {
	// sha256d("") truncated: the well known 5d f6 e0 e2.
	var buf bytes.Buffer
	require.NoError(t, writeChecked(&buf, nil))
	require.Equal(t, []byte{0, 0, 0, 0, 0x5d, 0xf6, 0xe0, 0xe2}, buf.Bytes())
}
