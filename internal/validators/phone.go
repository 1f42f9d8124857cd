package validators

import "strings"

// NormalizePhone keeps digits and a leading plus. It returns "" for input
// that cannot be a phone number (fewer than 8 or more than 15 digits).
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	var b strings.Builder
	digits := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			digits++
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return ""
		}
	}

	if digits < 8 || digits > 15 {
		return ""
	}
	return b.String()
}
