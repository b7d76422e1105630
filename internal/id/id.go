package id

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Normalize returns the comparison key for an identifier: trimmed and upper-cased.
func Normalize(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// NormalizeName returns the comparison key for a party name: lower-cased
// with runs of whitespace collapsed to one space.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Tokens splits a free-text reference note into normalized identifier
// candidates. Letters, digits, '-' and '_' form tokens; everything else separates.
// "Payment for inv-1001, thanks" -> ["PAYMENT", "FOR", "INV-1001", "THANKS"]
func Tokens(note string) []string {
	fields := strings.FieldsFunc(note, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_')
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		// Trailing dashes come from notes like "INV-1001- paid".
		f = strings.Trim(f, "-_")
		if f != "" {
			tokens = append(tokens, Normalize(f))
		}
	}
	return tokens
}

// References reports whether note refers to the identifier id, either as the
// whole note or as one of its tokens.
func References(note, id string) bool {
	key := Normalize(id)
	if key == "" {
		return false
	}
	if Normalize(note) == key {
		return true
	}
	for _, tok := range Tokens(note) {
		if tok == key {
			return true
		}
	}
	return false
}

// FormatSim returns a simulated identifier like "SIM-INV-1042".
func FormatSim(kind string, seq int) string {
	return fmt.Sprintf("SIM-%s-%04d", kind, seq)
}

// ParseSim parses "SIM-INV-1042" into kind and sequence.
func ParseSim(id string) (kind string, seq int, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 || parts[0] != "SIM" {
		return "", 0, fmt.Errorf("invalid simulated ID format: %q", id)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, fmt.Errorf("invalid sequence in simulated ID %q: %w", id, err)
	}
	return parts[1], seq, nil
}
