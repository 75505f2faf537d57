package wire

import (
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// RejectCode is the coded reason in a reject message.
type RejectCode uint8

const (
	RejectMalformed       RejectCode = 0x01
	RejectInvalid         RejectCode = 0x10
	RejectObsolete        RejectCode = 0x11
	RejectDuplicate       RejectCode = 0x12
	RejectNonStandard     RejectCode = 0x40
	RejectDust            RejectCode = 0x41
	RejectInsufficientFee RejectCode = 0x42
	RejectCheckpoint      RejectCode = 0x43
)

var rejectCodeNames = map[RejectCode]string{
	RejectMalformed:       "REJECT_MALFORMED",
	RejectInvalid:         "REJECT_INVALID",
	RejectObsolete:        "REJECT_OBSOLETE",
	RejectDuplicate:       "REJECT_DUPLICATE",
	RejectNonStandard:     "REJECT_NONSTANDARD",
	RejectDust:            "REJECT_DUST",
	RejectInsufficientFee: "REJECT_INSUFFICIENTFEE",
	RejectCheckpoint:      "REJECT_CHECKPOINT",
}

func (c RejectCode) String() string {
	if name, ok := rejectCodeNames[c]; ok {
		return name
	}
	return "REJECT_UNKNOWN"
}

// Reject tells a peer one of its messages was not accepted. The rejected
// message's command is serialized as a fixed 12-byte command, not a
// var-string, matching the reference implementation.
type Reject struct {
	Message Command
	Code    RejectCode
	Reason  string
	Hash    chainhash.Hash
}

func (*Reject) Cmd() string { return CmdReject }

func (m *Reject) Encode(w io.Writer) error {
	if err := m.Message.Encode(w); err != nil {
		return err
	}
	if _, err := w.Write([]byte{byte(m.Code)}); err != nil {
		return err
	}
	if err := writeVarString(w, m.Reason); err != nil {
		return err
	}
	_, err := w.Write(m.Hash[:])
	return err
}

func (m *Reject) Decode(r io.Reader) error {
	cmd, err := decodeCommand(r)
	if err != nil {
		return err
	}
	m.Message = cmd

	var code [1]byte
	if _, err := io.ReadFull(r, code[:]); err != nil {
		return err
	}
	if _, ok := rejectCodeNames[RejectCode(code[0])]; !ok {
		return parseError("unknown reject code")
	}
	m.Code = RejectCode(code[0])

	reason, err := readVarString(r)
	if err != nil {
		return err
	}
	m.Reason = reason
	_, err = io.ReadFull(r, m.Hash[:])
	return err
}
