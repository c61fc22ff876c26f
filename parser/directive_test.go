package parser

import (
	"testing"

	"github.com/beevik/linkasm/scan"
)

func TestParseDataList(t *testing.T) {
	vals, err := ParseDataList(scan.New(1, "7, -1, 3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{7, -1, 3}
	if len(vals) != len(want) {
		t.Fatalf("vals = %v, want %v", vals, want)
	}
	for i := range want {
		if vals[i] != want[i] {
			t.Errorf("vals[%d] = %d, want %d", i, vals[i], want[i])
		}
	}
}

func TestParseDataListRequiresAtLeastOne(t *testing.T) {
	if _, err := ParseDataList(scan.New(1, "")); err == nil {
		t.Errorf("empty .data list should be an error")
	}
}

func TestParseQuotedString(t *testing.T) {
	bytes, err := ParseQuotedString(scan.New(1, `"ab\"c"`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(bytes) != `ab"c` {
		t.Errorf("bytes = %q, want %q", bytes, `ab"c`)
	}
}

func TestParseQuotedStringUnterminated(t *testing.T) {
	if _, err := ParseQuotedString(scan.New(1, `"abc`)); err == nil {
		t.Errorf("unterminated string should be an error")
	}
}

func TestParseMatrixDecl(t *testing.T) {
	decl, err := ParseMatrixDecl(scan.New(1, "[2][2] 1,2,3,4"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decl.Rows != 2 || decl.Cols != 2 || len(decl.Inits) != 4 {
		t.Errorf("decl = %+v", decl)
	}
}

func TestParseMatrixDeclTooManyInits(t *testing.T) {
	if _, err := ParseMatrixDecl(scan.New(1, "[1][1] 1,2")); err == nil {
		t.Errorf("too many initializers should be an error")
	}
}

func TestParseMatrixDeclNonPositiveDims(t *testing.T) {
	if _, err := ParseMatrixDecl(scan.New(1, "[0][2]")); err == nil {
		t.Errorf("zero dimension should be an error")
	}
}
