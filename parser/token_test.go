package parser

import (
	"testing"

	"github.com/beevik/linkasm/scan"
)

func TestParseIntegerSignedAndUnsigned(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"5", 5},
		{"-1", -1},
		{"+7", 7},
	}
	for _, c := range cases {
		v, _, err := ParseInteger(scan.New(1, c.in))
		if err != nil {
			t.Errorf("ParseInteger(%q) error: %v", c.in, err)
			continue
		}
		if v != c.want {
			t.Errorf("ParseInteger(%q) = %d, want %d", c.in, v, c.want)
		}
	}
}

func TestParseIntegerRejectsNonDigits(t *testing.T) {
	if _, _, err := ParseInteger(scan.New(1, "x")); err == nil {
		t.Errorf("expected an error parsing a non-digit as an integer")
	}
}

func TestParseIdentifier(t *testing.T) {
	name, rest, err := ParseIdentifier(scan.New(1, "MAIN rest"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "MAIN" {
		t.Errorf("name = %q, want MAIN", name)
	}
	if rest.Str != " rest" {
		t.Errorf("remain = %q, want ' rest'", rest.Str)
	}
}

func TestParseRegisterRejectsOutOfRange(t *testing.T) {
	if _, _, ok := ParseRegister(scan.New(1, "r8")); ok {
		t.Errorf("r8 should not be a valid register")
	}
	if _, _, ok := ParseRegister(scan.New(1, "r10")); ok {
		t.Errorf("r10 should not parse as a register (trailing digit)")
	}
	reg, rest, ok := ParseRegister(scan.New(1, "r3,"))
	if !ok || reg != 3 || rest.Str != "," {
		t.Errorf("ParseRegister(r3,) = %d, %q, %v", reg, rest.Str, ok)
	}
}
