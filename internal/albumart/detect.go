package albumart

import (
	"os"
	"strings"
)

// Protocol is a terminal image protocol.
type Protocol int

const (
	ProtocolNone Protocol = iota
	ProtocolSixel
)

func (p Protocol) String() string {
	if p == ProtocolSixel {
		return "sixel"
	}
	return "none"
}

// Detect resolves a protocol setting ("auto", "sixel" or "none").
//
// The TIDES_IMAGE_PROTOCOL environment variable overrides the setting:
//   - "sixel": force Sixel output
//   - "none": disable image display
func Detect(setting string) Protocol {
	if override := os.Getenv("TIDES_IMAGE_PROTOCOL"); override != "" {
		setting = override
	}

	switch strings.ToLower(setting) {
	case "sixel":
		return ProtocolSixel
	case "none":
		return ProtocolNone
	}

	if IsSixelSupported() {
		return ProtocolSixel
	}
	return ProtocolNone
}

// IsSixelSupported guesses from the environment whether the terminal
// understands Sixel graphics.
func IsSixelSupported() bool {
	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	// kitty has its own protocol and ignores sixel
	if os.Getenv("KITTY_WINDOW_ID") != "" || strings.Contains(term, "kitty") {
		return false
	}

	switch {
	case term == "foot" || term == "foot-extra":
		return true
	case strings.HasPrefix(term, "mlterm"):
		return true
	case termProgram == "vscode", termProgram == "mintty", termProgram == "iTerm.app",
		termProgram == "WezTerm":
		return true
	case termProgram == "contour" || os.Getenv("CONTOUR_PROFILE") != "":
		return true
	}

	// Konsole gained sixel support in 22.04
	if version := os.Getenv("KONSOLE_VERSION"); len(version) >= 4 && version[:4] >= "2204" {
		return true
	}

	// xterm supports sixel when built with --enable-sixel-graphics; TERM=xterm
	// is a reasonable hint when nothing above matched.
	return term == "xterm" || strings.HasPrefix(term, "xterm-")
}
