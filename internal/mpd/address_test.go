package mpd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name  string
		input string
		port  string
		want  Address
	}{
		{"bare host", "192.168.1.10", "", Address{Network: "tcp", Addr: "192.168.1.10:6600"}},
		{"host with port", "music.lan:6601", "", Address{Network: "tcp", Addr: "music.lan:6601"}},
		{"port override", "music.lan", "7000", Address{Network: "tcp", Addr: "music.lan:7000"}},
		{"explicit port beats override", "music.lan:6601", "7000", Address{Network: "tcp", Addr: "music.lan:6601"}},
		{"password", "secret@music.lan", "", Address{Network: "tcp", Addr: "music.lan:6600", Password: "secret"}},
		{"password with at sign", "p@ss@music.lan", "", Address{Network: "tcp", Addr: "music.lan:6600", Password: "p@ss"}},
		{"socket path", "/run/mpd/socket", "", Address{Network: "unix", Addr: "/run/mpd/socket"}},
		{"socket with password", "secret@/run/mpd/socket", "", Address{Network: "unix", Addr: "/run/mpd/socket", Password: "secret"}},
		{"abstract socket", "@mpd", "", Address{Network: "unix", Addr: "@mpd"}},
		{"bare ipv6", "::1", "", Address{Network: "tcp", Addr: "[::1]:6600"}},
		{"bracketed ipv6 with port", "[::1]:6601", "", Address{Network: "tcp", Addr: "[::1]:6601"}},
		{"empty", "", "", Address{Network: "tcp", Addr: "127.0.0.1:6600"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAddress(tt.input, tt.port))
		})
	}
}

func TestAddressString(t *testing.T) {
	assert.Equal(t, "tcp://music.lan:6600", ParseAddress("music.lan", "").String())
	assert.Equal(t, "/run/mpd/socket", ParseAddress("/run/mpd/socket", "").String())
}
