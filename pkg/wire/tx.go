package wire

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Minimum serialized sizes, used to bound list allocations before decoding.
const (
	minTxInSize  = 32 + 4 + 1 + 4 // outpoint, empty script, sequence
	minTxOutSize = 8 + 1          // value, empty script
	minTxSize    = 4 + 1 + 1 + 4  // version, empty in/out lists, lock time
)

// OutPoint references one output of a previous transaction.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// TxIn is one transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Witness          [][]byte
	Sequence         uint32
}

// TxOut is one transaction output.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// Tx is a transaction payload, with BIP144 witness support.
type Tx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

func (*Tx) Cmd() string { return CmdTx }

func (tx *Tx) hasWitness() bool {
	for _, in := range tx.TxIn {
		if len(in.Witness) > 0 {
			return true
		}
	}
	return false
}

func (tx *Tx) Encode(w io.Writer) error {
	return tx.encode(w, tx.hasWitness())
}

func (tx *Tx) encode(w io.Writer, witness bool) error {
	if err := binary.Write(w, binary.LittleEndian, tx.Version); err != nil {
		return err
	}

	if witness {
		// Segwit marker and flag.
		if _, err := w.Write([]byte{0x00, 0x01}); err != nil {
			return err
		}
	}

	if err := writeVarInt(w, uint64(len(tx.TxIn))); err != nil {
		return err
	}
	for _, in := range tx.TxIn {
		if err := in.encode(w); err != nil {
			return err
		}
	}

	if err := writeVarInt(w, uint64(len(tx.TxOut))); err != nil {
		return err
	}
	for _, out := range tx.TxOut {
		if err := out.encode(w); err != nil {
			return err
		}
	}

	if witness {
		for _, in := range tx.TxIn {
			if err := writeVarInt(w, uint64(len(in.Witness))); err != nil {
				return err
			}
			for _, item := range in.Witness {
				if err := writeVarBytes(w, item); err != nil {
					return err
				}
			}
		}
	}

	return binary.Write(w, binary.LittleEndian, tx.LockTime)
}

func (tx *Tx) Decode(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &tx.Version); err != nil {
		return err
	}

	count, err := readVarInt(r)
	if err != nil {
		return err
	}

	// A zero input count marks a segwit serialization: marker 0x00 was just
	// read, the flag byte and the real input count follow.
	witness := false
	if count == 0 {
		var flag [1]byte
		if _, err := io.ReadFull(r, flag[:]); err != nil {
			return err
		}
		if flag[0] != 0x01 {
			return parseError("unsupported segwit flag")
		}
		witness = true
		if count, err = readVarInt(r); err != nil {
			return err
		}
	}
	if count > math.MaxUint64/minTxInSize {
		return parseError("invalid list length")
	}
	if size := count * minTxInSize; size > MaxPayloadSize {
		return &OversizedError{Requested: size, Max: MaxPayloadSize}
	}

	txIn := make([]*TxIn, 0, count)
	for i := uint64(0); i < count; i++ {
		in := new(TxIn)
		if err := in.decode(r); err != nil {
			return err
		}
		txIn = append(txIn, in)
	}

	outCount, err := readListCount(r, minTxOutSize)
	if err != nil {
		return err
	}
	txOut := make([]*TxOut, 0, outCount)
	for i := uint64(0); i < outCount; i++ {
		out := new(TxOut)
		if err := out.decode(r); err != nil {
			return err
		}
		txOut = append(txOut, out)
	}

	if witness {
		for _, in := range txIn {
			itemCount, err := readListCount(r, 1)
			if err != nil {
				return err
			}
			items := make([][]byte, 0, itemCount)
			for i := uint64(0); i < itemCount; i++ {
				item, err := readVarBytes(r)
				if err != nil {
					return err
				}
				items = append(items, item)
			}
			in.Witness = items
		}
	}

	tx.TxIn = txIn
	tx.TxOut = txOut
	return binary.Read(r, binary.LittleEndian, &tx.LockTime)
}

// TxHash returns the double-SHA256 of the transaction serialized without
// witness data, which is the id the protocol references in inventories.
func (tx *Tx) TxHash() chainhash.Hash {
	var buf bytes.Buffer
	_ = tx.encode(&buf, false)
	return chainhash.DoubleHashH(buf.Bytes())
}

func (in *TxIn) encode(w io.Writer) error {
	if _, err := w.Write(in.PreviousOutPoint.Hash[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, in.PreviousOutPoint.Index); err != nil {
		return err
	}
	if err := writeVarBytes(w, in.SignatureScript); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, in.Sequence)
}

func (in *TxIn) decode(r io.Reader) error {
	if _, err := io.ReadFull(r, in.PreviousOutPoint.Hash[:]); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &in.PreviousOutPoint.Index); err != nil {
		return err
	}
	script, err := readVarBytes(r)
	if err != nil {
		return err
	}
	in.SignatureScript = script
	return binary.Read(r, binary.LittleEndian, &in.Sequence)
}

func (out *TxOut) encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, out.Value); err != nil {
		return err
	}
	return writeVarBytes(w, out.PkScript)
}

func (out *TxOut) decode(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &out.Value); err != nil {
		return err
	}
	script, err := readVarBytes(r)
	if err != nil {
		return err
	}
	out.PkScript = script
	return nil
}
