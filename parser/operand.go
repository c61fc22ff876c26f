package parser

import (
	"fmt"

	"github.com/beevik/linkasm/isa"
	"github.com/beevik/linkasm/scan"
)

// Operand is the decoded form of one side of an instruction.
type Operand struct {
	Present   bool
	Mode      isa.Mode
	Immediate int    // valid when Mode == IMMEDIATE
	Reg       int    // valid when Mode == REGISTER
	Label     string // valid when Mode == DIRECT or MATRIX
	RowReg    int    // valid when Mode == MATRIX
	ColReg    int    // valid when Mode == MATRIX
}

// parseMatrixSuffix detects and consumes a "[rX][rY]" suffix immediately
// following a direct-label operand, upgrading it to matrix addressing.
// Detection happens strictly after the label is parsed, so the parser
// never backtracks past more than this one suffix.
func parseMatrixSuffix(line scan.Line) (row, col int, remain scan.Line, ok bool) {
	if !line.StartsWithChar('[') {
		return 0, 0, line, false
	}
	l := line.Consume(1)
	row, l, regOK := ParseRegister(l)
	if !regOK || !l.StartsWithChar(']') {
		return 0, 0, line, false
	}
	l = l.Consume(1)
	if !l.StartsWithChar('[') {
		return 0, 0, line, false
	}
	l = l.Consume(1)
	col, l, regOK = ParseRegister(l)
	if !regOK || !l.StartsWithChar(']') {
		return 0, 0, line, false
	}
	l = l.Consume(1)
	return row, col, l, true
}

// ParseOperand parses a single operand expression and determines its
// addressing mode.
func ParseOperand(line scan.Line) (op Operand, remain scan.Line, err error) {
	switch {
	case line.StartsWithChar('#'):
		v, rest, perr := ParseInteger(line.Consume(1))
		if perr != nil {
			return Operand{}, line, fmt.Errorf("invalid immediate operand: %v", perr)
		}
		return Operand{Present: true, Mode: isa.IMMEDIATE, Immediate: v}, rest, nil

	default:
		if reg, rest, ok := ParseRegister(line); ok {
			return Operand{Present: true, Mode: isa.REGISTER, Reg: reg}, rest, nil
		}

		name, rest, perr := ParseIdentifier(line)
		if perr != nil {
			return Operand{}, line, fmt.Errorf("invalid operand '%s'", firstWord(line))
		}
		if row, col, rest2, ok := parseMatrixSuffix(rest); ok {
			return Operand{Present: true, Mode: isa.MATRIX, Label: name, RowReg: row, ColReg: col}, rest2, nil
		}
		return Operand{Present: true, Mode: isa.DIRECT, Label: name}, rest, nil
	}
}
