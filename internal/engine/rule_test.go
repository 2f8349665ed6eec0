package engine

import (
	"errors"
	"testing"
)

func TestParseRuleCanonicalRoundTrip(t *testing.T) {
	for _, s := range []string{"B3/S23", "B36/S23", "B2/S", "B/S012345678"} {
		r, err := ParseRule(s)
		if err != nil {
			t.Fatalf("ParseRule(%q): %v", s, err)
		}
		if got := r.String(); got != s {
			t.Fatalf("round trip of %q: got %q", s, got)
		}
	}
}

func TestParseRuleNormalizes(t *testing.T) {
	cases := map[string]string{
		"B33/S2 3":  "B3/S23",
		"b3/s23":    "B3/S23",
		" B63/S32 ": "B36/S23",
		"B888/S":    "B8/S",
	}
	for in, want := range cases {
		r, err := ParseRule(in)
		if err != nil {
			t.Fatalf("ParseRule(%q): %v", in, err)
		}
		if got := r.String(); got != want {
			t.Fatalf("ParseRule(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseRuleRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "B3", "B3/23", "3/S23", "B3/S23/B1", "B9/S23", "Bx/S23", "B3-S23"} {
		if _, err := ParseRule(s); !errors.Is(err, ErrInvalidRuleString) {
			t.Fatalf("ParseRule(%q): expected ErrInvalidRuleString, got %v", s, err)
		}
	}
}

func TestConwayMembership(t *testing.T) {
	r := Conway()
	if !r.Born(3) || r.Born(2) || r.Born(0) {
		t.Fatalf("birth set wrong: %s", r)
	}
	if !r.Survives(2) || !r.Survives(3) || r.Survives(4) || r.Survives(0) {
		t.Fatalf("survival set wrong: %s", r)
	}
}
