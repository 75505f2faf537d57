package wire

import (
	"encoding/binary"
	"io"
)

// Version is the handshake message both sides send before anything else.
type Version struct {
	Version     uint32
	Services    ServiceFlags
	Timestamp   int64
	Receiver    NetAddress
	Sender      NetAddress
	Nonce       uint64
	UserAgent   string
	StartHeight int32
	Relay       bool
}

func (*Version) Cmd() string { return CmdVersion }

func (v *Version) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, v.Version); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(v.Services)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, v.Timestamp); err != nil {
		return err
	}
	if err := v.Receiver.Encode(w); err != nil {
		return err
	}
	if err := v.Sender.Encode(w); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, v.Nonce); err != nil {
		return err
	}
	if err := writeVarString(w, v.UserAgent); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, v.StartHeight); err != nil {
		return err
	}
	return writeBool(w, v.Relay)
}

func (v *Version) Decode(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &v.Version); err != nil {
		return err
	}
	var services uint64
	if err := binary.Read(r, binary.LittleEndian, &services); err != nil {
		return err
	}
	v.Services = ServiceFlags(services)
	if err := binary.Read(r, binary.LittleEndian, &v.Timestamp); err != nil {
		return err
	}
	if err := v.Receiver.Decode(r); err != nil {
		return err
	}
	if err := v.Sender.Decode(r); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &v.Nonce); err != nil {
		return err
	}
	agent, err := readVarString(r)
	if err != nil {
		return err
	}
	v.UserAgent = agent
	if err := binary.Read(r, binary.LittleEndian, &v.StartHeight); err != nil {
		return err
	}
	relay, err := readBool(r)
	if err != nil {
		return err
	}
	v.Relay = relay
	return nil
}
