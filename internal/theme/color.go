package theme

import "strings"

// FallbackColor replaces any color string that fails validation.
const FallbackColor = "#000000"

// ValidateColor normalizes input into "#rrggbb" form. Three-digit shorthand
// is expanded by doubling each digit. Digit case is preserved. Anything else
// yields FallbackColor.
func ValidateColor(input string) string {
	s := strings.TrimSpace(input)
	if !strings.HasPrefix(s, "#") {
		return FallbackColor
	}

	body := s[1:]
	if !isHex(body) {
		return FallbackColor
	}

	switch len(body) {
	case 6:
		return "#" + body
	case 3:
		var b strings.Builder
		b.Grow(7)
		b.WriteByte('#')
		for i := 0; i < 3; i++ {
			b.WriteByte(body[i])
			b.WriteByte(body[i])
		}
		return b.String()
	default:
		return FallbackColor
	}
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}
