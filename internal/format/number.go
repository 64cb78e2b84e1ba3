package format

import (
	"fmt"
	"strings"
)

// FormatNumberString inserts thousand separators into a decimal number
// string ("1234567" -> "1,234,567"). A leading minus sign is preserved.
// The input is assumed to be a plain base-10 integer representation.
//
// Parameters:
//   - s: The number string to format.
//
// Returns:
//   - string: The formatted string with comma separators.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}

	sign := ""
	if s[0] == '-' {
		sign = "-"
		s = s[1:]
	}

	n := len(s)
	if n <= 3 {
		return sign + s
	}

	var sb strings.Builder
	sb.WriteString(sign)
	first := n % 3
	if first > 0 {
		sb.WriteString(s[:first])
	}
	for i := first; i < n; i += 3 {
		if sb.Len() > len(sign) {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

// FormatBytes renders a byte count in binary units (KiB, MiB, ...) with
// two decimal places, or plain bytes below 1 KiB.
//
// Parameters:
//   - bytes: The byte count to format.
//
// Returns:
//   - string: The human-readable size.
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
