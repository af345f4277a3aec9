package render

import (
	"fmt"
	"strings"
	"time"
)

var (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// ProgressBar renders a block-style progress bar.
// Format: ▶  1:23  ▓▓▓▓▓░░░░░  4:56
func ProgressBar(position, duration time.Duration, width int, playing bool) string {
	status := "▶"
	if !playing {
		status = "⏸"
	}

	posStr := FormatDuration(position)
	durStr := FormatDuration(duration)

	fixedWidth := Width(status) + 2 + Width(posStr) + 2 + 2 + Width(durStr)
	barWidth := width - fixedWidth

	if barWidth < 3 {
		// Too narrow for bar, just show times
		return status + "  " + posStr + " / " + durStr
	}

	var ratio float64
	if duration > 0 {
		ratio = float64(position) / float64(duration)
	}
	filled := max(min(int(float64(barWidth)*ratio), barWidth), 0)

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, barWidth-filled)

	return status + "  " + posStr + "  " + bar + "  " + durStr
}

// FormatDuration formats d as m:ss, or h:mm:ss from one hour up.
func FormatDuration(d time.Duration) string {
	total := max(int(d/time.Second), 0)
	h, m, s := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
