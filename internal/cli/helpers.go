package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/taekwondodev/bitcoin-p2p/pkg/wire"
)

func (cli *CLI) decodeMessage(hexStr string) {
	data, err := hex.DecodeString(strings.TrimPrefix(hexStr, "0x"))
	if err != nil {
		fmt.Println("Invalid hex:", err)
		return
	}

	msg, err := wire.Deserialize(data)
	if err != nil {
		fmt.Println("Decode failed:", err)
		return
	}

	fmt.Printf("Magic:   %#08x\n", msg.Magic)
	fmt.Printf("Command: %s\n", msg.Command().String())
	fmt.Printf("Payload: %s\n", summarizePayload(msg.Payload))
}

func summarizePayload(p wire.Payload) string {
	switch v := p.(type) {
	case *wire.Version:
		return fmt.Sprintf("version %d, agent %s, services %s", v.Version, v.UserAgent, v.Services)
	case *wire.Ping:
		return fmt.Sprintf("nonce %d", v.Nonce)
	case *wire.Pong:
		return fmt.Sprintf("nonce %d", v.Nonce)
	case *wire.Inv:
		return fmt.Sprintf("%d items", len(v.Items))
	case *wire.GetData:
		return fmt.Sprintf("%d items", len(v.Items))
	case *wire.NotFound:
		return fmt.Sprintf("%d items", len(v.Items))
	case *wire.Addr:
		return fmt.Sprintf("%d addresses", len(v.Entries))
	case *wire.AddrV2:
		return fmt.Sprintf("%d addresses", len(v.Entries))
	case *wire.Headers:
		return fmt.Sprintf("%d headers", len(v.Headers))
	case *wire.Tx:
		return fmt.Sprintf("txid %s, %d in, %d out", v.TxHash(), len(v.TxIn), len(v.TxOut))
	case *wire.Block:
		return fmt.Sprintf("block %s, %d transactions", v.BlockHash(), len(v.Transactions))
	case *wire.FeeFilter:
		return fmt.Sprintf("min fee %d sat/kvB", v.MinFee)
	case *wire.Reject:
		return fmt.Sprintf("%s %s: %s", v.Message.String(), v.Code, v.Reason)
	case *wire.Unknown:
		return fmt.Sprintf("unrecognized command %q, %d payload bytes", v.Command.String(), len(v.Data))
	default:
		return "empty"
	}
}
