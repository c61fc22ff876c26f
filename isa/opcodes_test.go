package isa

import "testing"

func TestLookupKnownAndUnknown(t *testing.T) {
	op, ok := Lookup("mov")
	if !ok || op.Code != 0 || op.Argc != 2 {
		t.Errorf("Lookup(mov) = %+v, %v", op, ok)
	}
	if _, ok := Lookup("nope"); ok {
		t.Errorf("Lookup(nope) should not be found")
	}
}

func TestLegalModesAllows(t *testing.T) {
	mov, _ := Lookup("mov")
	if mov.DstOK.Allows(IMMEDIATE) {
		t.Errorf("mov destination should not allow immediate")
	}
	if !mov.SrcOK.Allows(IMMEDIATE) {
		t.Errorf("mov source should allow immediate")
	}

	lea, _ := Lookup("lea")
	if lea.SrcOK.Allows(IMMEDIATE) || lea.SrcOK.Allows(REGISTER) {
		t.Errorf("lea source should be label-only")
	}
	if !lea.SrcOK.Allows(DIRECT) || !lea.SrcOK.Allows(MATRIX) {
		t.Errorf("lea source should allow direct and matrix")
	}

	jmp, _ := Lookup("jmp")
	if jmp.DstOK.Allows(IMMEDIATE) || jmp.DstOK.Allows(REGISTER) {
		t.Errorf("jmp destination should be label-only")
	}

	prn, _ := Lookup("prn")
	if !prn.DstOK.Allows(IMMEDIATE) {
		t.Errorf("prn destination should allow immediate")
	}

	cmp, _ := Lookup("cmp")
	if !cmp.SrcOK.Allows(IMMEDIATE) || !cmp.DstOK.Allows(IMMEDIATE) {
		t.Errorf("cmp should allow immediate on either side")
	}
}

func TestMnemonicsCount(t *testing.T) {
	if got := len(Mnemonics()); got != 16 {
		t.Errorf("len(Mnemonics()) = %d, want 16", got)
	}
}
