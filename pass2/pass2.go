// Package pass2 implements the second assembler pass: it re-parses each
// instruction with the same shared parser pass 1 used for sizing, emits
// the final word stream with correct A/R/E tagging, and records external
// use-sites and entry addresses.
package pass2

import (
	"github.com/beevik/linkasm/diag"
	"github.com/beevik/linkasm/image"
	"github.com/beevik/linkasm/isa"
	"github.com/beevik/linkasm/parser"
	"github.com/beevik/linkasm/scan"
	"github.com/beevik/linkasm/symtab"
)

// Extern is one recorded external use-site: a symbol name and the
// absolute address of the operand word that references it.
type Extern struct {
	Name string
	Addr int
}

// Entry is one exported symbol and its final address.
type Entry struct {
	Name string
	Addr int
}

// Result is the final code image and the externs/entries needed by the
// output writers.
type Result struct {
	Code    *image.Image
	Externs []Extern
	Entries []Entry
	Errs    *diag.Bag
}

// Run executes pass 2. baseErrs is pass 1's error bag; pass 2 borrows it so
// the driver can present one unified diagnostic report.
func Run(lines []string, limits isa.Limits, symbols *symtab.Table, baseErrs *diag.Bag) *Result {
	errs := &diag.Bag{}
	errs.Merge(baseErrs)

	code := &image.Image{}
	var externs []Extern
	ic := limits.ICStart

	for i, raw := range lines {
		row := i + 1
		text := scan.StripComment(raw)
		line := scan.New(row, text).ConsumeWhitespace()
		if line.IsEmpty() {
			continue
		}

		rest := skipLabel(line)
		rest = rest.ConsumeWhitespace()
		if rest.IsEmpty() || rest.StartsWithChar('.') {
			continue
		}

		decoded, err := parser.ParseInstruction(rest)
		if err != nil {
			// Already reported by pass 1; pass 2 only emits for
			// statements pass 1 considered well-formed.
			continue
		}

		ic = emit(code, decoded, symbols, ic, row, &externs, errs)
	}

	var entries []Entry
	symbols.Foreach(func(sym symtab.Symbol) {
		if !sym.IsEntry() {
			return
		}
		if sym.IsExternal() {
			errs.Addf(sym.DefLine, "entry symbol '%s' cannot also be extern", sym.Name)
			return
		}
		if !sym.IsDefined() {
			errs.Addf(sym.DefLine, "entry symbol '%s' is undefined", sym.Name)
			return
		}
		entries = append(entries, Entry{Name: sym.Name, Addr: sym.Value})
	})

	return &Result{Code: code, Externs: externs, Entries: entries, Errs: errs}
}

// skipLabel consumes a leading "NAME:" label, if present, without
// re-validating it (pass 1 already did).
func skipLabel(line scan.Line) scan.Line {
	if !line.StartsWith(scan.Alpha) {
		return line
	}
	_, rest := line.ConsumeWhile(scan.IdentChar)
	if !rest.StartsWithChar(':') {
		return line
	}
	return rest.Consume(1)
}

// emit writes every word for one instruction and returns the updated IC.
// The IC is incremented inside push so that an extern use-site address
// always matches the word actually written.
func emit(code *image.Image, d parser.Decoded, symbols *symtab.Table, ic, row int, externs *[]Extern, errs *diag.Bag) int {
	push := func(w int) {
		code.Push(uint16(w), row)
		ic++
	}

	push(isa.FirstWord(d.Opcode.Code, d.Src.Mode, d.Src.Present, d.Dst.Mode, d.Dst.Present))

	if d.Argc == 2 && d.Src.Mode == isa.REGISTER && d.Dst.Mode == isa.REGISTER {
		push(isa.WordRegPair(d.Src.Reg, d.Dst.Reg))
		return ic
	}

	emitSymbol := func(name string) {
		sym, found := symbols.Lookup(name)
		switch {
		case !found:
			errs.Addf(row, "undefined symbol '%s'", name)
			push(isa.WordExtern())
		case sym.IsExternal():
			*externs = append(*externs, Extern{Name: name, Addr: ic})
			push(isa.WordExtern())
		default:
			push(isa.WordRelocatable(sym.Value))
		}
	}

	if d.Src.Present {
		switch d.Src.Mode {
		case isa.IMMEDIATE:
			checkRange(d.Src.Immediate, row, errs)
			push(isa.WordImmediate(d.Src.Immediate))
		case isa.REGISTER:
			push(isa.WordRegSrc(d.Src.Reg))
		case isa.DIRECT:
			emitSymbol(d.Src.Label)
		case isa.MATRIX:
			emitSymbol(d.Src.Label)
			push(isa.WordRegPair(d.Src.RowReg, d.Src.ColReg))
		}
	}

	if d.Dst.Present {
		switch d.Dst.Mode {
		case isa.IMMEDIATE:
			checkRange(d.Dst.Immediate, row, errs)
			push(isa.WordImmediate(d.Dst.Immediate))
		case isa.REGISTER:
			push(isa.WordRegDst(d.Dst.Reg))
		case isa.DIRECT:
			emitSymbol(d.Dst.Label)
		case isa.MATRIX:
			emitSymbol(d.Dst.Label)
			push(isa.WordRegPair(d.Dst.RowReg, d.Dst.ColReg))
		}
	}

	return ic
}

func checkRange(v, row int, errs *diag.Bag) {
	if v < -128 || v > 255 {
		errs.Addf(row, "immediate value %d out of 8-bit range, truncated", v)
	}
}
