// Package parser implements the shared lexing, directive, and instruction
// parsing used by both pass 1 (sizing) and pass 2 (emission). There is
// exactly one instruction parser; pass 1 reads only its size, pass 2
// reads its full decoding, so the two passes can never disagree.
package parser

import (
	"fmt"
	"strconv"

	"github.com/beevik/linkasm/ident"
	"github.com/beevik/linkasm/scan"
)

// ParseInteger reads an optionally-signed decimal integer.
func ParseInteger(line scan.Line) (value int, remain scan.Line, err error) {
	start := line
	neg := false
	if line.StartsWithChar('+') || line.StartsWithChar('-') {
		neg = line.StartsWithChar('-')
		line = line.Consume(1)
	}
	digits, rest := line.ConsumeWhile(scan.Digit)
	if digits.IsEmpty() {
		return 0, start, fmt.Errorf("expected an integer, found '%s'", start.Str)
	}
	v, convErr := strconv.Atoi(digits.Str)
	if convErr != nil {
		return 0, start, fmt.Errorf("invalid integer '%s'", digits.Str)
	}
	if neg {
		v = -v
	}
	return v, rest, nil
}

// ParseIdentifier reads an identifier token: a letter followed by letters,
// digits, or underscores.
func ParseIdentifier(line scan.Line) (name string, remain scan.Line, err error) {
	if !line.StartsWith(scan.Alpha) {
		return "", line, fmt.Errorf("expected an identifier, found '%s'", firstWord(line))
	}
	tok, rest := line.ConsumeWhile(scan.IdentChar)
	return tok.Str, rest, nil
}

// ParseRegister reads a register operand "rN" (N in 0..7), requiring that
// the token not continue with further identifier characters (so "r10" or
// "rx" is rejected as a register, not silently truncated).
func ParseRegister(line scan.Line) (reg int, remain scan.Line, ok bool) {
	tok, rest := line.ConsumeWhile(scan.IdentChar)
	if !ident.IsRegisterName(tok.Str) {
		return 0, line, false
	}
	return int(tok.Str[1] - '0'), rest, true
}

func firstWord(line scan.Line) string {
	tok, _ := line.ConsumeWhile(scan.WordChar)
	if tok.IsEmpty() {
		return line.Str
	}
	return tok.Str
}
