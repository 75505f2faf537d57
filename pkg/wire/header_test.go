package wire

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
)

func testHeader(nonce uint32) *BlockHeader {
	return &BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{0x01, 0x02},
		MerkleRoot: chainhash.Hash{0x03, 0x04},
		Timestamp:  1231469665,
		Bits:       0x1d00ffff,
		Nonce:      nonce,
	}
}

func TestHeadersEncodeEmitsOneZeroPerHeader(t *testing.T) {
	msg := &Headers{Headers: []*BlockHeader{testHeader(1), testHeader(2), testHeader(3)}}

	var buf bytes.Buffer
	require.NoError(t, msg.Encode(&buf))

	raw := buf.Bytes()
	require.Len(t, raw, 1+3*(blockHeaderSize+1))
	for i := 0; i < 3; i++ {
		require.Equal(t, byte(0), raw[1+(i+1)*(blockHeaderSize+1)-1], "trailing byte of header %d", i)
	}
}

func TestHeadersRoundTrip(t *testing.T) {
	msg := &Headers{Headers: []*BlockHeader{testHeader(7), testHeader(8)}}

	var buf bytes.Buffer
	require.NoError(t, msg.Encode(&buf))

	var decoded Headers
	require.NoError(t, decoded.Decode(&buf))
	require.Equal(t, msg.Headers, decoded.Headers)
}

func TestHeadersRejectsNonZeroTrailingByte(t *testing.T) {
	msg := &Headers{Headers: []*BlockHeader{testHeader(9)}}

	var buf bytes.Buffer
	require.NoError(t, msg.Encode(&buf))

	raw := buf.Bytes()
	raw[len(raw)-1] = 1 // pretend the header carries a transaction

	var decoded Headers
	err := decoded.Decode(bytes.NewReader(raw))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "headers message should not contain transactions", perr.Reason)
}

func TestHeadersRejectsOversizedCountBeforeAllocation(t *testing.T) {
	// 50001 headers would need 4000080 bytes; only the count is present.
	var buf bytes.Buffer
	require.NoError(t, writeVarInt(&buf, 50001))

	var decoded Headers
	err := decoded.Decode(&buf)
	var oerr *OversizedError
	require.ErrorAs(t, err, &oerr)
	require.Equal(t, uint64(50001*blockHeaderSize), oerr.Requested)
	require.Equal(t, uint64(MaxPayloadSize), oerr.Max)
}

func TestBlockHeaderHashIsStable(t *testing.T) {
	h := testHeader(42)
	first := h.BlockHash()
	require.Equal(t, first, h.BlockHash())
	require.NotEqual(t, first, testHeader(43).BlockHash())
}
