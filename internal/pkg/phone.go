package phone

import "strings"

// ToDisplayPhone formats a raw wa_id (e.g. "5511987654321") for display
// (e.g. "+55 11 98765-4321"). Presentation only: the raw id stays the
// storage key everywhere, so display and record always refer to the same
// conversation.
func ToDisplayPhone(waID string) string {
	s := strings.TrimSpace(waID)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "55") && len(s) >= 12 {
		ddd := s[2:4]
		num := s[4:]
		switch len(num) {
		case 9:
			return "+55 " + ddd + " " + num[:5] + "-" + num[5:]
		case 8:
			return "+55 " + ddd + " " + num[:4] + "-" + num[4:]
		default:
			return "+55 " + ddd + " " + num
		}
	}
	return "+" + s
}
