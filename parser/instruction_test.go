package parser

import (
	"testing"

	"github.com/beevik/linkasm/isa"
	"github.com/beevik/linkasm/scan"
)

func TestParseInstructionRegReg(t *testing.T) {
	d, err := ParseInstruction(scan.New(1, "mov r3, r5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Opcode.Name != "mov" || d.Src.Mode != isa.REGISTER || d.Dst.Mode != isa.REGISTER {
		t.Errorf("decoded = %+v", d)
	}
	if Size(d) != 2 {
		t.Errorf("Size(mov r,r) = %d, want 2", Size(d))
	}
}

func TestParseInstructionZeroOperand(t *testing.T) {
	d, err := ParseInstruction(scan.New(1, "stop"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Size(d) != 1 {
		t.Errorf("Size(stop) = %d, want 1", Size(d))
	}
}

func TestParseInstructionRejectsIllegalAddressingMode(t *testing.T) {
	if _, err := ParseInstruction(scan.New(1, "mov r1, #5")); err == nil {
		t.Errorf("mov with immediate destination should be rejected")
	}
	if _, err := ParseInstruction(scan.New(1, "jmp #5")); err == nil {
		t.Errorf("jmp with immediate destination should be rejected")
	}
	if _, err := ParseInstruction(scan.New(1, "lea r1, r2")); err == nil {
		t.Errorf("lea with register source should be rejected")
	}
}

func TestParseInstructionMissingComma(t *testing.T) {
	if _, err := ParseInstruction(scan.New(1, "mov r1 r2")); err == nil {
		t.Errorf("missing comma between operands should be an error")
	}
}

func TestSizeMatrixOperand(t *testing.T) {
	d, err := ParseInstruction(scan.New(1, "mov M[r1][r2], r3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// first word + (symbol word + reg-pair word) + dst register word = 4.
	if Size(d) != 4 {
		t.Errorf("Size(matrix src) = %d, want 4", Size(d))
	}
}

func TestSizeUnknownOpcode(t *testing.T) {
	if _, err := ParseInstruction(scan.New(1, "frobnicate r1")); err == nil {
		t.Errorf("unknown mnemonic should be rejected")
	}
}
