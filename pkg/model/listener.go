package model

import "strings"

// Protocol is the transport protocol of a socket
type Protocol int

const (
	ProtocolOther Protocol = iota
	ProtocolTCP
	ProtocolUDP
)

func (p Protocol) String() string {
	switch p {
	case ProtocolTCP:
		return "TCP"
	case ProtocolUDP:
		return "UDP"
	}
	return "?"
}

// ParseProtocol maps lsof's NODE column (TCP, UDP, ...) to a Protocol
func ParseProtocol(s string) Protocol {
	switch strings.ToUpper(s) {
	case "TCP":
		return ProtocolTCP
	case "UDP":
		return ProtocolUDP
	}
	return ProtocolOther
}

// SocketState is the state lsof prints in parentheses after the address,
// e.g. LISTEN. UDP sockets usually have none.
type SocketState string

const (
	StateListen SocketState = "LISTEN"
	StateNone   SocketState = ""
)

func (s SocketState) String() string {
	if s == StateNone {
		return "-"
	}
	return string(s)
}

// Listener is one listening socket owned by one process, as seen at scan time.
// Values are never modified after a scan; a refresh replaces the whole set.
type Listener struct {
	PID      int
	Process  string
	User     string
	Protocol Protocol
	Address  string // "*" for the wildcard address
	Port     int
	State    SocketState
}
