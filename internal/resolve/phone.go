package resolve

import (
	"regexp"
	"strings"
)

var nonDigitRe = regexp.MustCompile(`\D`)

// FormatPhoneNumber normalizes a phone number: 10 digits become
// "(XXX) XXX-XXXX", 11 digits with a leading 1 become "+1 (XXX) XXX-XXXX",
// longer numbers get best-effort dash grouping, and anything else passes
// through unchanged.
func FormatPhoneNumber(phone string) string {
	if phone == "" {
		return ""
	}

	digits := nonDigitRe.ReplaceAllString(phone, "")

	switch {
	case len(digits) == 10:
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
	case len(digits) == 11 && digits[0] == '1':
		return "+1 (" + digits[1:4] + ") " + digits[4:7] + "-" + digits[7:]
	case len(digits) > 10:
		grouped := digits[:3] + "-" + digits[3:6] + "-" + digits[6:10]
		if rest := digits[10:]; rest != "" {
			grouped += " " + rest
		}
		return strings.TrimSpace(grouped)
	}

	return phone
}
