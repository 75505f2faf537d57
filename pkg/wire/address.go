package wire

import (
	"encoding/binary"
	"io"
	"net"
)

// netAddressEntrySize is the serialized width of one timestamped address,
// used to bound the addr list allocation.
const netAddressEntrySize = 4 + 8 + 16 + 2

// NetAddress is the legacy address record: services, a 16-byte IP and a
// port. The IP and port are big-endian on the wire, everything else in this
// protocol is little-endian.
type NetAddress struct {
	Services ServiceFlags
	IP       net.IP
	Port     uint16
}

func (na *NetAddress) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, uint64(na.Services)); err != nil {
		return err
	}
	var ip [16]byte
	copy(ip[:], na.IP.To16())
	if _, err := w.Write(ip[:]); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, na.Port)
}

func (na *NetAddress) Decode(r io.Reader) error {
	var services uint64
	if err := binary.Read(r, binary.LittleEndian, &services); err != nil {
		return err
	}
	na.Services = ServiceFlags(services)

	var ip [16]byte
	if _, err := io.ReadFull(r, ip[:]); err != nil {
		return err
	}
	na.IP = net.IP(ip[:])
	return binary.Read(r, binary.BigEndian, &na.Port)
}

// AddrEntry is one element of an addr message: when the address was last
// known to be alive, and the address itself.
type AddrEntry struct {
	Time uint32
	Addr NetAddress
}

// Addr advertises known peer addresses.
type Addr struct {
	Entries []AddrEntry
}

func (*Addr) Cmd() string { return CmdAddr }

func (a *Addr) Encode(w io.Writer) error {
	if err := writeVarInt(w, uint64(len(a.Entries))); err != nil {
		return err
	}
	for _, e := range a.Entries {
		if err := binary.Write(w, binary.LittleEndian, e.Time); err != nil {
			return err
		}
		if err := e.Addr.Encode(w); err != nil {
			return err
		}
	}
	return nil
}

func (a *Addr) Decode(r io.Reader) error {
	count, err := readListCount(r, netAddressEntrySize)
	if err != nil {
		return err
	}
	entries := make([]AddrEntry, 0, count)
	for i := uint64(0); i < count; i++ {
		var e AddrEntry
		if err := binary.Read(r, binary.LittleEndian, &e.Time); err != nil {
			return err
		}
		if err := e.Addr.Decode(r); err != nil {
			return err
		}
		entries = append(entries, e)
	}
	a.Entries = entries
	return nil
}

// BIP155 network ids.
const (
	NetworkIPv4  uint8 = 1
	NetworkIPv6  uint8 = 2
	NetworkTorV2 uint8 = 3
	NetworkTorV3 uint8 = 4
	NetworkI2P   uint8 = 5
	NetworkCjdns uint8 = 6
)

// maxAddrV2Size caps the address bytes of a single addrv2 entry, including
// networks this implementation does not know about.
const maxAddrV2Size = 512

// AddrV2Entry is one BIP155 address record. The network-specific address is
// kept as raw bytes; only its length is validated.
type AddrV2Entry struct {
	Time     uint32
	Services ServiceFlags
	Network  uint8
	Addr     []byte
	Port     uint16
}

func (e *AddrV2Entry) encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, e.Time); err != nil {
		return err
	}
	if err := writeVarInt(w, uint64(e.Services)); err != nil {
		return err
	}
	if _, err := w.Write([]byte{e.Network}); err != nil {
		return err
	}
	if err := writeVarBytes(w, e.Addr); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, e.Port)
}

func (e *AddrV2Entry) decode(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &e.Time); err != nil {
		return err
	}
	services, err := readVarInt(r)
	if err != nil {
		return err
	}
	e.Services = ServiceFlags(services)

	var network [1]byte
	if _, err := io.ReadFull(r, network[:]); err != nil {
		return err
	}
	e.Network = network[0]

	addr, err := readVarBytes(r)
	if err != nil {
		return err
	}
	if len(addr) > maxAddrV2Size {
		return parseError("addrv2 address longer than 512 bytes")
	}
	if !validAddrV2Len(e.Network, len(addr)) {
		return parseError("invalid address length for addrv2 network")
	}
	e.Addr = addr
	return binary.Read(r, binary.BigEndian, &e.Port)
}

func validAddrV2Len(network uint8, n int) bool {
	switch network {
	case NetworkIPv4:
		return n == 4
	case NetworkIPv6, NetworkCjdns:
		return n == 16
	case NetworkTorV2:
		return n == 10
	case NetworkTorV3, NetworkI2P:
		return n == 32
	default:
		// Unknown networks pass through so newer address kinds still relay.
		return true
	}
}

// AddrV2 advertises peer addresses in the BIP155 format.
type AddrV2 struct {
	Entries []AddrV2Entry
}

func (*AddrV2) Cmd() string { return CmdAddrV2 }

func (a *AddrV2) Encode(w io.Writer) error {
	if err := writeVarInt(w, uint64(len(a.Entries))); err != nil {
		return err
	}
	for i := range a.Entries {
		if err := a.Entries[i].encode(w); err != nil {
			return err
		}
	}
	return nil
}

func (a *AddrV2) Decode(r io.Reader) error {
	// Smallest possible entry: time, one-byte services, network, empty
	// address, port.
	count, err := readListCount(r, 4+1+1+1+2)
	if err != nil {
		return err
	}
	entries := make([]AddrV2Entry, 0, count)
	for i := uint64(0); i < count; i++ {
		var e AddrV2Entry
		if err := e.decode(r); err != nil {
			return err
		}
		entries = append(entries, e)
	}
	a.Entries = entries
	return nil
}
