package albumart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearTermEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TIDES_IMAGE_PROTOCOL", "TERM", "TERM_PROGRAM", "KITTY_WINDOW_ID",
		"CONTOUR_PROFILE", "KONSOLE_VERSION",
	} {
		t.Setenv(key, "")
	}
}

func TestDetect_Setting(t *testing.T) {
	clearTermEnv(t)
	t.Setenv("TERM", "xterm-256color")

	assert.Equal(t, ProtocolSixel, Detect("sixel"))
	assert.Equal(t, ProtocolNone, Detect("none"))
	assert.Equal(t, ProtocolSixel, Detect("auto"))
}

func TestDetect_EnvOverride(t *testing.T) {
	clearTermEnv(t)
	t.Setenv("TERM", "xterm-256color")

	t.Setenv("TIDES_IMAGE_PROTOCOL", "none")
	assert.Equal(t, ProtocolNone, Detect("sixel"))

	t.Setenv("TERM", "dumb")
	t.Setenv("TIDES_IMAGE_PROTOCOL", "sixel")
	assert.Equal(t, ProtocolSixel, Detect("auto"))
}

func TestIsSixelSupported(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"foot", map[string]string{"TERM": "foot"}, true},
		{"xterm", map[string]string{"TERM": "xterm-256color"}, true},
		{"wezterm", map[string]string{"TERM_PROGRAM": "WezTerm"}, true},
		{"new konsole", map[string]string{"KONSOLE_VERSION": "230402"}, true},
		{"old konsole", map[string]string{"KONSOLE_VERSION": "210800", "TERM": "linux"}, false},
		{"kitty", map[string]string{"TERM": "xterm-kitty"}, false},
		{"kitty window", map[string]string{"TERM": "xterm-256color", "KITTY_WINDOW_ID": "1"}, false},
		{"linux console", map[string]string{"TERM": "linux"}, false},
		{"dumb", map[string]string{"TERM": "dumb"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTermEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.want, IsSixelSupported())
		})
	}
}

func TestWindowSize(t *testing.T) {
	ws := WindowSize{Cols: 120, Rows: 40, CellWidth: 10, CellHeight: 20}

	assert.Equal(t, 50, ws.TextWidth(50))
	assert.Equal(t, 500, ws.ImageWidth(50))
	assert.Equal(t, 120, ws.TextWidth(0))

	narrow := WindowSize{Cols: 30, CellWidth: 8}
	assert.Equal(t, 30, narrow.TextWidth(50))
	assert.Equal(t, 240, narrow.ImageWidth(50))
}

func TestProtocolString(t *testing.T) {
	assert.Equal(t, "sixel", ProtocolSixel.String())
	assert.Equal(t, "none", ProtocolNone.String())
}
