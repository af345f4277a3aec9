package mpd

import (
	"net"
	"strings"
)

// DefaultPort is the standard MPD port.
const DefaultPort = "6600"

// Address locates an MPD server.
type Address struct {
	Network  string // "tcp" or "unix"
	Addr     string // host:port or socket path
	Password string
}

// ParseAddress parses "[password@]host[:port]" or a socket path. A bare
// host gets port, or DefaultPort when port is empty.
func ParseAddress(s, port string) Address {
	if port == "" {
		port = DefaultPort
	}

	var a Address
	if i := strings.LastIndex(s, "@"); i > 0 {
		a.Password, s = s[:i], s[i+1:]
	}

	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, "@") {
		a.Network, a.Addr = "unix", s
		return a
	}

	a.Network = "tcp"
	if s == "" {
		s = "127.0.0.1"
	}
	if host, p, err := net.SplitHostPort(s); err == nil {
		a.Addr = net.JoinHostPort(host, p)
		return a
	}
	a.Addr = net.JoinHostPort(strings.Trim(s, "[]"), port)
	return a
}

func (a Address) String() string {
	if a.Network == "unix" {
		return a.Addr
	}
	return a.Network + "://" + a.Addr
}
