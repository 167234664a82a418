package flora

import (
	"fmt"
	"strconv"
	"strings"
)

// CurrencySymbol is the display prefix for all monetary amounts.
const CurrencySymbol = "S/"

// Cents is a monetary amount in integer minor units (1/100). All price
// arithmetic happens in Cents so that summing many small lines stays
// exact; amounts only become decimal strings at the wire and display
// boundaries.
type Cents int64

// ParseCents parses a decimal string such as "2.50", "3" or "0.1" into
// minor units. At most two fraction digits are accepted.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > 2 {
		return 0, fmt.Errorf("too many decimal places in %q", s)
	}
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	frac, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}

	c := Cents(whole*100 + frac)
	if neg {
		c = -c
	}
	return c, nil
}

// Decimal renders the amount as a plain decimal string with exactly
// two fraction digits, e.g. 1550 -> "15.50".
func (c Cents) Decimal() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Format renders the amount for display with the currency prefix.
func (c Cents) Format() string {
	return CurrencySymbol + c.Decimal()
}

// UnmarshalJSON accepts either a JSON number literal or a quoted
// decimal string. Decoding goes through the literal text, never
// through a float, so "2.50" and 2.50 both land on exactly 250.
func (c *Cents) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		*c = 0
		return nil
	}
	parsed, err := ParseCents(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalJSON emits the amount as a JSON number literal in major
// units, matching what the order service stores in its sheet.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.Decimal()), nil
}
