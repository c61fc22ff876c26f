// Package ident classifies reserved words and validates label and macro
// names. All rules here are pure predicates; callers turn a false result
// into a diagnostic with whatever line context they have.
package ident

import (
	"github.com/beevik/linkasm/isa"
)

var directives = map[string]bool{
	".data":   true,
	".string": true,
	".entry":  true,
	".extern": true,
	".mat":    true,
}

var reserved map[string]bool

func init() {
	reserved = make(map[string]bool, len(directives)+16)
	for k := range directives {
		reserved[k] = true
	}
	for _, m := range isa.Mnemonics() {
		reserved[m] = true
	}
	reserved["mcro"] = true
	reserved["mcroend"] = true
}

// IsReserved reports whether s is one of the 16 mnemonics, the 5
// directives, or the macro keywords mcro/mcroend, and therefore may not be
// used as a label or macro name.
func IsReserved(s string) bool {
	return reserved[s]
}

// IsDirective reports whether s names one of the `.data/.string/.entry/
// .extern/.mat` directives.
func IsDirective(s string) bool {
	return directives[s]
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9')
}

// IsValidLabel reports whether s is a legal, non-reserved label name:
// starts with a letter, continues with letters/digits only (no
// underscore), at most MaxLabelLen characters, and not a reserved word.
func IsValidLabel(s string, limits isa.Limits) bool {
	if s == "" || len(s) > limits.MaxLabelLen || IsReserved(s) {
		return false
	}
	if !isAlpha(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isAlnum(s[i]) {
			return false
		}
	}
	return true
}

// IsValidMacroName reports whether s is a legal, non-reserved macro name:
// same rule as a label, but an underscore is permitted after the first
// letter.
func IsValidMacroName(s string, limits isa.Limits) bool {
	if s == "" || len(s) > limits.MaxLabelLen || IsReserved(s) {
		return false
	}
	if !isAlpha(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isAlnum(c) && c != '_' {
			return false
		}
	}
	return true
}

// IsRegisterName reports whether s is one of r0..r7.
func IsRegisterName(s string) bool {
	if len(s) != 2 || s[0] != 'r' {
		return false
	}
	return s[1] >= '0' && s[1] <= '7'
}
