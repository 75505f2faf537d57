package wire

import (
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Block is a full block payload: a header and its transactions.
type Block struct {
	Header       BlockHeader
	Transactions []*Tx
}

func (*Block) Cmd() string { return CmdBlock }

func (b *Block) Encode(w io.Writer) error {
	if err := b.Header.Encode(w); err != nil {
		return err
	}
	if err := writeVarInt(w, uint64(len(b.Transactions))); err != nil {
		return err
	}
	for _, tx := range b.Transactions {
		if err := tx.Encode(w); err != nil {
			return err
		}
	}
	return nil
}

func (b *Block) Decode(r io.Reader) error {
	if err := b.Header.Decode(r); err != nil {
		return err
	}

	count, err := readListCount(r, minTxSize)
	if err != nil {
		return err
	}
	txs := make([]*Tx, 0, count)
	for i := uint64(0); i < count; i++ {
		tx := new(Tx)
		if err := tx.Decode(r); err != nil {
			return err
		}
		txs = append(txs, tx)
	}
	b.Transactions = txs
	return nil
}

func (b *Block) BlockHash() chainhash.Hash {
	return b.Header.BlockHash()
}
