package wire

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
)

func TestRejectEncodesCommandAsFixedField(t *testing.T) {
	msg := &Reject{
		Message: mustCmd(t, "block"),
		Code:    RejectInvalid,
		Reason:  "bad-txnmrklroot",
		Hash:    hashFromByte(7),
	}

	var buf bytes.Buffer
	require.NoError(t, msg.Encode(&buf))
	require.Len(t, buf.Bytes(), CommandSize+1+1+len(msg.Reason)+chainhash.HashSize)

	var decoded Reject
	require.NoError(t, decoded.Decode(&buf))
	require.Equal(t, *msg, decoded)
}

func TestRejectDecodeUnknownCode(t *testing.T) {
	msg := &Reject{Message: mustCmd(t, "tx"), Code: RejectDust, Reason: "dust"}

	var buf bytes.Buffer
	require.NoError(t, msg.Encode(&buf))

	raw := buf.Bytes()
	raw[CommandSize] = 0x02 // not a defined code

	var decoded Reject
	err := decoded.Decode(bytes.NewReader(raw))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "unknown reject code", perr.Reason)
}

func TestRejectCodeString(t *testing.T) {
	require.Equal(t, "REJECT_DUPLICATE", RejectDuplicate.String())
	require.Equal(t, "REJECT_UNKNOWN", RejectCode(0x99).String())
}
