package cli

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/peterh/liner"

	"github.com/taekwondodev/bitcoin-p2p/internal/p2p"
	"github.com/taekwondodev/bitcoin-p2p/pkg/wire"
)

var commands = []string{"help", "peers", "connect", "addrs", "ping", "getaddr", "decode", "exit", "quit"}

type CLI struct {
	node *p2p.Node
	done chan struct{}
}

func NewCLI(node *p2p.Node) *CLI {
	return &CLI{
		node: node,
		done: make(chan struct{}),
	}
}

// Done is closed when the user exits the prompt.
func (cli *CLI) Done() <-chan struct{} {
	return cli.done
}

func (cli *CLI) Run() {
	defer close(cli.done)

	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		var matches []string
		for _, cmd := range commands {
			if strings.HasPrefix(cmd, prefix) {
				matches = append(matches, cmd)
			}
		}
		return matches
	})

	fmt.Println("Bitcoin p2p node")
	fmt.Println("Type 'help' for commands")

	for {
		text, err := line.Prompt("> ")
		if err != nil {
			// Ctrl-C or Ctrl-D ends the session.
			return
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		line.AppendHistory(text)

		parts := strings.Fields(text)
		command := parts[0]

		switch command {
		case "exit", "quit":
			return
		case "help":
			cli.printHelp()
		case "peers":
			cli.listPeers()
		case "connect":
			if len(parts) < 2 {
				fmt.Println("Usage: connect <host:port>")
				continue
			}
			cli.connectPeer(parts[1])
		case "addrs":
			cli.listAddresses()
		case "ping":
			cli.pingPeers()
		case "getaddr":
			cli.requestAddresses()
		case "decode":
			if len(parts) < 2 {
				fmt.Println("Usage: decode <hex>")
				continue
			}
			cli.decodeMessage(parts[1])
		default:
			fmt.Println("Unknown command. Type 'help' for commands")
		}
	}
}

func (cli *CLI) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  peers                - List connected peers")
	fmt.Println("  connect <host:port>  - Connect to a peer")
	fmt.Println("  addrs                - List known peer addresses")
	fmt.Println("  ping                 - Ping every connected peer")
	fmt.Println("  getaddr              - Ask peers for more addresses")
	fmt.Println("  decode <hex>         - Decode a hex-encoded wire message")
	fmt.Println("  exit                 - Exit the program")
}

func (cli *CLI) listPeers() {
	peers := cli.node.Peers()

	if len(peers) == 0 {
		fmt.Println("No peers connected")
		return
	}

	fmt.Println("Connected peers:")
	for _, peer := range peers {
		direction := "outbound"
		if peer.Inbound {
			direction = "inbound"
		}
		fmt.Printf("  %s (%s, %s, last seen %s)\n",
			peer.Addr, direction, peer.UserAgent, peer.LastSeen.Format("15:04:05"))
	}
}

func (cli *CLI) connectPeer(address string) {
	fmt.Printf("Connecting to peer %s...\n", address)
	cli.node.Connect(address)
	fmt.Println("Connection initiated")
}

func (cli *CLI) listAddresses() {
	addrs, err := cli.node.KnownAddresses()
	if err != nil {
		fmt.Println("Error reading address book:", err)
		return
	}

	if len(addrs) == 0 {
		fmt.Println("No addresses known yet")
		return
	}

	fmt.Printf("Known addresses (%d):\n", len(addrs))
	for _, addr := range addrs {
		fmt.Printf("  %s\n", addr)
	}
}

func (cli *CLI) pingPeers() {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		fmt.Println("Error generating nonce:", err)
		return
	}

	cli.node.Broadcast(&wire.Ping{Nonce: binary.LittleEndian.Uint64(buf[:])})
	fmt.Println("Ping sent to all peers")
}

func (cli *CLI) requestAddresses() {
	cli.node.Broadcast(&wire.GetAddr{})
	fmt.Println("Address request sent to all peers")
}
