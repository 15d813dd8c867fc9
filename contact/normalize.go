// ABOUTME: Contact normalization for phone numbers and email addresses
// ABOUTME: Produces canonical comparable forms so free-form contacts can be matched
package contact

import (
	"strings"
)

// MinPhoneDigits is the shortest digit string accepted as a loose phone key.
// Shorter runs are extensions or fragments and would collide across people.
const MinPhoneDigits = 7

// NormalizePhone converts a phone number to a canonical +digits form.
// Returns "" when the input has no usable digits.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	hasPlus := strings.HasPrefix(phone, "+")
	digits := PhoneDigits(phone)
	if digits == "" {
		return ""
	}

	if hasPlus {
		return "+" + digits
	}

	// US/Canada numbers without a country code
	if len(digits) == 10 {
		return "+1" + digits
	}

	// US/Canada with a leading 1
	if len(digits) == 11 && digits[0] == '1' {
		return "+" + digits
	}

	return "+" + digits
}

// PhoneDigits returns only the digits of a phone number.
func PhoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LoosePhoneKeys returns the digit-level keys for a phone number: the digits of the
// raw input and the digits of its canonical form. Keys shorter than MinPhoneDigits are dropped.
func LoosePhoneKeys(phone string) []string {
	var keys []string
	raw := PhoneDigits(phone)
	if len(raw) >= MinPhoneDigits {
		keys = append(keys, raw)
	}

	canonical := PhoneDigits(NormalizePhone(phone))
	if len(canonical) >= MinPhoneDigits && canonical != raw {
		keys = append(keys, canonical)
	}

	return keys
}

// NormalizeEmail lowercases and trims an email address.
// Returns "" unless there is text on both sides of the last @.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ""
	}
	if strings.TrimSpace(email[:at]) == "" || strings.TrimSpace(email[at+1:]) == "" {
		return ""
	}
	return email
}

// ExtractDomain extracts the domain from an email address.
func ExtractDomain(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}
