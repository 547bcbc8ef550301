package validators

import "strings"

// NormalizePhone strips formatting and reduces a Sri Lankan number to its
// local 07XXXXXXXX form. Returns "" when the input cannot be a phone number.
func NormalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	p := digits.String()
	if strings.HasPrefix(p, "94") && len(p) == 11 {
		p = "0" + p[2:]
	}

	if len(p) != 10 || p[0] != '0' {
		return ""
	}
	return p
}

// IsValidPIN accepts 4 to 8 digits.
func IsValidPIN(pin string) bool {
	if len(pin) < 4 || len(pin) > 8 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
