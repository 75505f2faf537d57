package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarIntRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000, 0xffffffffffffffff}
	widths := []int{1, 1, 1, 3, 3, 5, 5, 9, 9}

	for i, v := range values {
		var buf bytes.Buffer
		require.NoError(t, writeVarInt(&buf, v))
		require.Len(t, buf.Bytes(), widths[i], "width for %#x", v)

		got, err := readVarInt(&buf)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestVarIntRejectsNonMinimal(t *testing.T) {
	nonMinimal := [][]byte{
		{0xfd, 0xfc, 0x00},                                     // fits in one byte
		{0xfe, 0xff, 0xff, 0x00, 0x00},                         // fits in two
		{0xff, 0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00}, // fits in four
	}
	for _, raw := range nonMinimal {
		_, err := readVarInt(bytes.NewReader(raw))
		var perr *ParseError
		require.ErrorAs(t, err, &perr, "input %x", raw)
	}
}

func TestVarBytesOversized(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeVarInt(&buf, MaxPayloadSize+1))

	_, err := readVarBytes(&buf)
	var oerr *OversizedError
	require.ErrorAs(t, err, &oerr)
	require.Equal(t, uint64(MaxPayloadSize+1), oerr.Requested)
}

func TestVarStringRejectsInvalidUTF8(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeVarBytes(&buf, []byte{0xff, 0xfe}))

	_, err := readVarString(&buf)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}
