package wire

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCommandLengthBoundary(t *testing.T) {
	cmd, err := NewCommand("AndrewAndrew") // exactly 12 bytes
	require.NoError(t, err)
	require.Equal(t, "AndrewAndrew", cmd.String())

	_, err = NewCommand("AndrewAndrewA") // 13 bytes
	require.ErrorIs(t, err, ErrCommandTooLong)
}

func TestCommandEncodePadsToTwelveBytes(t *testing.T) {
	cmd, err := NewCommand("Andrew")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, cmd.Encode(&buf))
	require.Equal(t, []byte{0x41, 0x6e, 0x64, 0x72, 0x65, 0x77, 0, 0, 0, 0, 0, 0}, buf.Bytes())
}

func TestCommandDecodeFilter(t *testing.T) {
	cmd, err := decodeCommand(bytes.NewReader([]byte{0x41, 0x6e, 0x64, 0x72, 0x65, 0x77, 0, 0, 0, 0, 0, 0}))
	require.NoError(t, err)
	require.Equal(t, "Andrew", cmd.String())

	// The filter runs over all 12 bytes: embedded zeros vanish rather than
	// terminate the name, while high-bit bytes are kept.
	cmd, err = decodeCommand(bytes.NewReader([]byte{0x41, 0x00, 0x6e, 0x64, 0xff, 0x72, 0x65, 0x77, 0x80, 0, 0, 0}))
	require.NoError(t, err)
	require.Equal(t, "And\xffrew\x80", cmd.String())

	cmd, err = decodeCommand(bytes.NewReader([]byte{0x66, 0x6f, 0x80, 0x6f, 0, 0, 0, 0, 0, 0, 0, 0}))
	require.NoError(t, err)
	require.Equal(t, "fo\x80o", cmd.String())
}

func TestCommandDecodeTruncated(t *testing.T) {
	_, err := decodeCommand(bytes.NewReader([]byte{0x41, 0x6e, 0x64, 0x72, 0x65, 0x77, 0, 0, 0, 0, 0}))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestCommandRoundTrip(t *testing.T) {
	cmd, err := NewCommand(strings.Repeat("z", CommandSize))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, cmd.Encode(&buf))
	require.Len(t, buf.Bytes(), CommandSize)

	decoded, err := decodeCommand(&buf)
	require.NoError(t, err)
	require.Equal(t, cmd, decoded)
}
