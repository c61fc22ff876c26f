package parser

import (
	"testing"

	"github.com/beevik/linkasm/isa"
	"github.com/beevik/linkasm/scan"
)

func TestParseOperandImmediate(t *testing.T) {
	op, rest, err := ParseOperand(scan.New(1, "#5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Mode != isa.IMMEDIATE || op.Immediate != 5 || !rest.IsEmpty() {
		t.Errorf("operand = %+v, rest = %q", op, rest.Str)
	}
}

func TestParseOperandRegister(t *testing.T) {
	op, _, err := ParseOperand(scan.New(1, "r4"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Mode != isa.REGISTER || op.Reg != 4 {
		t.Errorf("operand = %+v", op)
	}
}

func TestParseOperandDirect(t *testing.T) {
	op, rest, err := ParseOperand(scan.New(1, "LABEL, r1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Mode != isa.DIRECT || op.Label != "LABEL" {
		t.Errorf("operand = %+v", op)
	}
	if rest.Str != ", r1" {
		t.Errorf("remain = %q", rest.Str)
	}
}

func TestParseOperandMatrixUpgrade(t *testing.T) {
	op, rest, err := ParseOperand(scan.New(1, "M[r1][r2], r3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Mode != isa.MATRIX || op.Label != "M" || op.RowReg != 1 || op.ColReg != 2 {
		t.Errorf("operand = %+v", op)
	}
	if rest.Str != ", r3" {
		t.Errorf("remain = %q", rest.Str)
	}
}

func TestParseOperandMatrixRequiresLabelFirst(t *testing.T) {
	// A bracket with no preceding label is not a valid operand at all.
	if _, _, err := ParseOperand(scan.New(1, "[r1][r2]")); err == nil {
		t.Errorf("expected an error for a bracket suffix with no label")
	}
}
