package engine

import "strings"

// Rule is a birth/survival rule over Moore neighbor counts. Both sets are
// stored as 9-bit masks; bit n set means neighbor count n is a member.
type Rule struct {
	birth    uint16
	survival uint16
}

// Conway returns the classic B3/S23 rule.
func Conway() Rule {
	return Rule{birth: 1 << 3, survival: 1<<2 | 1<<3}
}

// ParseRule parses a rule string of the form B<digits>/S<digits>.
// Digits may be unsorted, duplicated or space-separated; the parsed rule
// serializes back to canonical form (sorted ascending, deduplicated).
func ParseRule(s string) (Rule, error) {
	compact := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	parts := strings.Split(compact, "/")
	if len(parts) != 2 {
		return Rule{}, ErrInvalidRuleString
	}
	birth, err := parseDigits(parts[0], 'B', 'b')
	if err != nil {
		return Rule{}, err
	}
	survival, err := parseDigits(parts[1], 'S', 's')
	if err != nil {
		return Rule{}, err
	}
	return Rule{birth: birth, survival: survival}, nil
}

func parseDigits(part string, marker, lower byte) (uint16, error) {
	if len(part) == 0 || (part[0] != marker && part[0] != lower) {
		return 0, ErrInvalidRuleString
	}
	var mask uint16
	for i := 1; i < len(part); i++ {
		c := part[i]
		if c < '0' || c > '8' {
			return 0, ErrInvalidRuleString
		}
		mask |= 1 << (c - '0')
	}
	return mask, nil
}

// String renders the canonical B<digits>/S<digits> form.
func (r Rule) String() string {
	var b strings.Builder
	b.WriteByte('B')
	writeDigits(&b, r.birth)
	b.WriteString("/S")
	writeDigits(&b, r.survival)
	return b.String()
}

func writeDigits(b *strings.Builder, mask uint16) {
	for n := 0; n <= 8; n++ {
		if mask&(1<<n) != 0 {
			b.WriteByte(byte('0' + n))
		}
	}
}

// Born reports whether a dead cell with n live neighbors comes to life.
func (r Rule) Born(n int) bool { return n >= 0 && n <= 8 && r.birth&(1<<n) != 0 }

// Survives reports whether a live cell with n live neighbors stays alive.
func (r Rule) Survives(n int) bool { return n >= 0 && n <= 8 && r.survival&(1<<n) != 0 }
