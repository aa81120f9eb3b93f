package types

import (
	"fmt"
	"regexp"
	"strings"
)

// Medicare represents an Australian Medicare card number (10 digits)
// Format: NNNNNNNNCI where:
// - NNNNNNNN: 8-digit card number, first digit in the range 2-6
// - C: checksum digit
// - I: issue number
type Medicare string

var medicareRegex = regexp.MustCompile(`^\d{10}$`)

// ParseMedicare validates and parses a Medicare number, ignoring spaces
func ParseMedicare(s string) (Medicare, error) {
	s = strings.ReplaceAll(s, " ", "")
	if !medicareRegex.MatchString(s) {
		return "", fmt.Errorf("medicare number must be exactly 10 digits")
	}

	m := Medicare(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid medicare checksum")
	}

	return m, nil
}

// String returns the string representation
func (m Medicare) String() string {
	return string(m)
}

// Formatted returns the conventional display grouping "NNNN NNNNN N"
func (m Medicare) Formatted() string {
	if len(m) != 10 {
		return string(m)
	}
	return fmt.Sprintf("%s %s %s", m[:4], m[4:9], m[9:])
}

// Masked returns a masked version for display (first 4 digits visible)
func (m Medicare) Masked() string {
	if len(m) < 10 {
		return "**********"
	}
	return string(m)[:4] + "******"
}

// IsValid validates the Medicare checksum
func (m Medicare) IsValid() bool {
	if len(m) != 10 {
		return false
	}

	digits := make([]int, 10)
	for i, c := range m {
		if c < '0' || c > '9' {
			return false
		}
		digits[i] = int(c - '0')
	}

	// First digit of a valid card number is 2-6
	if digits[0] < 2 || digits[0] > 6 {
		return false
	}

	// Checksum over the first 8 digits
	weights := []int{1, 3, 7, 9, 1, 3, 7, 9}

	sum := 0
	for i := 0; i < 8; i++ {
		sum += digits[i] * weights[i]
	}

	return sum%10 == digits[8]
}
