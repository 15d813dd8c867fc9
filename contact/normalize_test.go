package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"(555) 123-4567", "+15551234567"},
		{"+15551234567", "+15551234567"},
		{"555.123.4567", "+15551234567"},
		{"1-555-123-4567", "+15551234567"},
		{"+44 20 7946 0958", "+442079460958"},
		{"020 7946 0958", "+02079460958"},
		{"12345", "+12345"},
		{"  +1 (555) 123 4567  ", "+15551234567"},
		{"+", ""},
		{"+ - ()", ""},
		{"call me", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizePhone(tt.input), "NormalizePhone(%q)", tt.input)
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	inputs := []string{
		"(555) 123-4567",
		"+1 555 123 4567",
		"15551234567",
		"+44 20 7946 0958",
		"07946 0958",
		"12345",
		"+5551234567",
	}

	for _, input := range inputs {
		once := NormalizePhone(input)
		assert.NotEmpty(t, once, input)
		assert.Equal(t, once, NormalizePhone(once), "not idempotent for %q", input)
	}
}

func TestPhoneFormattingDifferences(t *testing.T) {
	a := "(555) 123-4567"
	b := "+15551234567"

	assert.Equal(t, NormalizePhone(a), NormalizePhone(b))
	assert.Equal(t, PhoneDigits(NormalizePhone(a)), PhoneDigits(b))
}

func TestPhoneDigits(t *testing.T) {
	assert.Equal(t, "5551234567", PhoneDigits("(555) 123-4567"))
	assert.Equal(t, "15551234567", PhoneDigits("+1-555-123-4567"))
	assert.Equal(t, "", PhoneDigits("n/a"))
}

func TestLoosePhoneKeys(t *testing.T) {
	assert.Equal(t, []string{"5551234567", "15551234567"}, LoosePhoneKeys("555-123-4567"))
	assert.Equal(t, []string{"15551234567"}, LoosePhoneKeys("+1 555 123 4567"))
	assert.Equal(t, []string{"5551234567"}, LoosePhoneKeys("+5551234567"))
	assert.Empty(t, LoosePhoneKeys("x123"))
	assert.Empty(t, LoosePhoneKeys(""))
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Foo@Bar.com", "foo@bar.com"},
		{"  alice.smith@example.com ", "alice.smith@example.com"},
		{"ALICE@EXAMPLE.COM", "alice@example.com"},
		{"not-an-email", ""},
		{"", ""},
		{"   ", ""},
		{"@", ""},
		{" @ ", ""},
		{"x@", ""},
		{"@x", ""},
		{"sam @ ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeEmail(tt.input), "NormalizeEmail(%q)", tt.input)
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		email    string
		expected string
	}{
		{"alice@example.com", "example.com"},
		{"bob@acme.co.uk", "acme.co.uk"},
		{"invalid", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ExtractDomain(tt.email))
	}
}
