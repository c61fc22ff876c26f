package symtab

import (
	"testing"

	"github.com/beevik/linkasm/diag"
)

func TestDefineAndLookup(t *testing.T) {
	tab := New()
	var errs diag.Bag
	if !tab.Define("MAIN", 100, Code, 1, &errs) {
		t.Fatalf("Define should succeed on first use")
	}
	sym, found := tab.Lookup("MAIN")
	if !found || sym.Value != 100 || !sym.IsDefined() {
		t.Errorf("Lookup(MAIN) = %+v, %v", sym, found)
	}
}

func TestDefineDuplicateIsError(t *testing.T) {
	tab := New()
	var errs diag.Bag
	tab.Define("MAIN", 100, Code, 1, &errs)
	if tab.Define("MAIN", 200, Code, 2, &errs) {
		t.Errorf("redefining MAIN should fail")
	}
	if errs.OK() {
		t.Errorf("expected a duplicate-label diagnostic")
	}
}

func TestDefineExternThenDefineIsError(t *testing.T) {
	tab := New()
	var errs diag.Bag
	tab.Define("X", 0, Extern, 1, &errs)
	if tab.Define("X", 5, Code, 2, &errs) {
		t.Errorf("defining an extern symbol should fail")
	}
	if errs.OK() {
		t.Errorf("expected an error defining an extern symbol")
	}
}

func TestMarkEntryBeforeDefinition(t *testing.T) {
	tab := New()
	var errs diag.Bag
	tab.MarkEntry("LATER", 1, &errs)
	if !errs.OK() {
		t.Fatalf("MarkEntry on an unseen name should not itself error")
	}
	tab.Define("LATER", 50, Code, 2, &errs)
	sym, _ := tab.Lookup("LATER")
	if !sym.IsEntry() || sym.Value != 50 {
		t.Errorf("entry placeholder was not upgraded correctly: %+v", sym)
	}
}

func TestMarkEntryOnExternIsError(t *testing.T) {
	tab := New()
	var errs diag.Bag
	tab.Define("X", 0, Extern, 1, &errs)
	if tab.MarkEntry("X", 2, &errs) {
		t.Errorf("marking an extern symbol as entry should fail")
	}
	if errs.OK() {
		t.Errorf("expected an extern/entry conflict diagnostic")
	}
}

func TestMarkEntryIdempotent(t *testing.T) {
	tab := New()
	var errs diag.Bag
	tab.Define("MAIN", 100, Code, 1, &errs)
	if !tab.MarkEntry("MAIN", 2, &errs) {
		t.Fatalf("first MarkEntry should succeed")
	}
	if !tab.MarkEntry("MAIN", 3, &errs) {
		t.Errorf("marking entry twice should be idempotent, not an error")
	}
	if !errs.OK() {
		t.Errorf("idempotent MarkEntry should not record a diagnostic")
	}
}

func TestRelocateDataOnlyAffectsDataSymbols(t *testing.T) {
	tab := New()
	var errs diag.Bag
	tab.Define("CODE_LBL", 100, Code, 1, &errs)
	tab.Define("DATA_LBL", 3, Data, 2, &errs)
	tab.RelocateData(104)

	code, _ := tab.Lookup("CODE_LBL")
	data, _ := tab.Lookup("DATA_LBL")
	if code.Value != 100 {
		t.Errorf("RelocateData should not touch CODE symbols, got %d", code.Value)
	}
	if data.Value != 107 {
		t.Errorf("RelocateData(104) on DATA offset 3 = %d, want 107", data.Value)
	}
}

func TestForeachPreservesInsertionOrder(t *testing.T) {
	tab := New()
	var errs diag.Bag
	tab.Define("B", 1, Code, 1, &errs)
	tab.Define("A", 2, Code, 2, &errs)

	var order []string
	tab.Foreach(func(s Symbol) { order = append(order, s.Name) })
	if len(order) != 2 || order[0] != "B" || order[1] != "A" {
		t.Errorf("Foreach order = %v, want [B A]", order)
	}
}
