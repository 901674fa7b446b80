package format

import "fmt"

// FmtCount formats a row or column count with K/M suffix for readability.
func FmtCount(n int) string {
	if n >= 1_000_000 {
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000.0)
	}
	if n >= 1000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000.0)
	}
	return fmt.Sprintf("%d", n)
}

// FmtPercent renders a [0,1] rate as a percentage.
func FmtPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// SeverityMark returns a single-character marker for a severity name.
func SeverityMark(severity string) string {
	switch severity {
	case "error":
		return "✗"
	case "warn":
		return "!"
	default:
		return "·"
	}
}
