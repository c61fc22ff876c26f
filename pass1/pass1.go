// Package pass1 implements the first assembler pass: it lexes/parses each
// statement, assigns addresses to labels, sizes instructions, accumulates
// the data image, and records most static errors.
package pass1

import (
	"fmt"

	"github.com/beevik/linkasm/diag"
	"github.com/beevik/linkasm/ident"
	"github.com/beevik/linkasm/image"
	"github.com/beevik/linkasm/isa"
	"github.com/beevik/linkasm/nameset"
	"github.com/beevik/linkasm/parser"
	"github.com/beevik/linkasm/scan"
	"github.com/beevik/linkasm/symtab"
)

// Result is everything pass 2 needs: the symbol table (with data labels
// already relocated) and the final instruction counter. The data image
// itself is fully resolved in pass 1 (no symbol references appear inside
// .data/.string/.mat), so it's returned ready for the writer. Code is a
// placeholder image reserved word-for-word by instruction size alone, kept
// only so the caller can check it against pass 2's emitted code length.
type Result struct {
	Symbols *symtab.Table
	Code    *image.Image
	Data    *image.Image
	ICFinal int
	Errs    *diag.Bag
}

// Run executes pass 1 over the already macro-expanded source lines.
func Run(lines []string, limits isa.Limits, names *nameset.Set) *Result {
	symbols := symtab.New()
	code := &image.Image{}
	data := &image.Image{}
	errs := &diag.Bag{}

	ic := limits.ICStart
	dc := 0

	// A label on a line by itself (as the macro preprocessor emits for a
	// labeled macro invocation) attaches to whatever statement follows it
	// rather than erroring immediately.
	var pendingLabel string
	hasPending := false

	for i, raw := range lines {
		row := i + 1
		text := scan.StripComment(raw)
		line := scan.New(row, text).ConsumeWhitespace()
		if line.IsEmpty() {
			continue
		}

		label, rest, hasLabel, labelErr := parseLabel(line, limits)
		if labelErr != nil {
			errs.Addf(row, "%v", labelErr)
			continue
		}

		rest = rest.ConsumeWhitespace()

		if hasLabel && hasPending {
			errs.Addf(row, "label '%s' not followed by a statement", pendingLabel)
			hasPending = false
		}

		if hasLabel && rest.IsEmpty() {
			pendingLabel = label
			hasPending = true
			continue
		}

		if !hasLabel && hasPending {
			label = pendingLabel
			hasLabel = true
			hasPending = false
		}

		if rest.IsEmpty() {
			continue
		}

		if rest.StartsWithChar('.') {
			handleDirective(rest, label, hasLabel, row, names, symbols, data, &dc, errs)
		} else {
			ic += handleInstruction(rest, label, hasLabel, row, ic, names, symbols, code, errs)
		}
	}

	if hasPending {
		errs.Addf(len(lines), "label '%s' not followed by a statement", pendingLabel)
	}

	symbols.RelocateData(ic)
	return &Result{Symbols: symbols, Code: code, Data: data, ICFinal: ic, Errs: errs}
}

func parseLabel(line scan.Line, limits isa.Limits) (label string, remain scan.Line, has bool, err error) {
	if !line.StartsWith(scan.Alpha) {
		return "", line, false, nil
	}
	tok, rest := line.ConsumeWhile(scan.IdentChar)
	if !rest.StartsWithChar(':') {
		return "", line, false, nil
	}
	rest = rest.Consume(1)

	if ident.IsReserved(tok.Str) {
		return "", line, true, fmt.Errorf("label '%s' is a reserved word", tok.Str)
	}
	if !ident.IsValidLabel(tok.Str, limits) {
		return "", line, true, fmt.Errorf("invalid label name '%s'", tok.Str)
	}
	return tok.Str, rest, true, nil
}

// defineSymbol checks the shared macro/label namespace before delegating
// to the symbol table, because a macro name collision can't be detected by
// the symbol table alone (macro bodies aren't stored there).
func defineSymbol(names *nameset.Set, symbols *symtab.Table, name string, value int, kind symtab.Attr, row int, errs *diag.Bag) {
	if _, found := symbols.Lookup(name); !found && names.Contains(name) {
		errs.Addf(row, "identifier '%s' already in use", name)
		return
	}
	names.Add(name)
	symbols.Define(name, value, kind, row, errs)
}

// pushWord stores v as a raw data word, masked to 8 bits: data words hold
// values directly, unlike operand words which pack an 8-bit payload plus
// ARE bits.
func pushWord(img *image.Image, v int, row int) {
	img.Push(uint16(v&0xFF), row)
}

func handleDirective(rest scan.Line, label string, hasLabel bool, row int, names *nameset.Set, symbols *symtab.Table, data *image.Image, dc *int, errs *diag.Bag) {
	tok, after := rest.ConsumeWhile(scan.WordChar)
	after = after.ConsumeWhitespace()

	switch tok.Str {
	case ".data":
		if hasLabel {
			defineSymbol(names, symbols, label, *dc, symtab.Data, row, errs)
		}
		values, err := parser.ParseDataList(after)
		if err != nil {
			errs.Addf(row, "%v", err)
			return
		}
		for _, v := range values {
			pushWord(data, v, row)
		}
		*dc += len(values)

	case ".string":
		if hasLabel {
			defineSymbol(names, symbols, label, *dc, symtab.Data, row, errs)
		}
		bytes, err := parser.ParseQuotedString(after)
		if err != nil {
			errs.Addf(row, "%v", err)
			return
		}
		for _, b := range bytes {
			pushWord(data, int(b), row)
		}
		pushWord(data, 0, row)
		*dc += len(bytes) + 1

	case ".mat":
		if hasLabel {
			defineSymbol(names, symbols, label, *dc, symtab.Data, row, errs)
		}
		decl, err := parser.ParseMatrixDecl(after)
		if err != nil {
			errs.Addf(row, "%v", err)
			return
		}
		cells := decl.Rows * decl.Cols
		for i := 0; i < cells; i++ {
			if i < len(decl.Inits) {
				pushWord(data, decl.Inits[i], row)
			} else {
				pushWord(data, 0, row)
			}
		}
		*dc += cells

	case ".extern":
		name, afterName, err := parser.ParseIdentifier(after)
		if err != nil {
			errs.Addf(row, "%v", err)
			return
		}
		if !afterName.ConsumeWhitespace().IsEmpty() {
			errs.Addf(row, "unexpected text after .extern operand")
			return
		}
		defineSymbol(names, symbols, name, 0, symtab.Extern, row, errs)

	case ".entry":
		name, afterName, err := parser.ParseIdentifier(after)
		if err != nil {
			errs.Addf(row, "%v", err)
			return
		}
		if !afterName.ConsumeWhitespace().IsEmpty() {
			errs.Addf(row, "unexpected text after .entry operand")
			return
		}
		symbols.MarkEntry(name, row, errs)

	default:
		errs.Addf(row, "unknown directive '%s'", tok.Str)
	}
}

// handleInstruction reserves placeholder words for one instruction and
// returns how many words it occupies, so the caller can advance IC.
func handleInstruction(rest scan.Line, label string, hasLabel bool, row int, ic int, names *nameset.Set, symbols *symtab.Table, code *image.Image, errs *diag.Bag) int {
	if hasLabel {
		defineSymbol(names, symbols, label, ic, symtab.Code, row, errs)
	}

	decoded, err := parser.ParseInstruction(rest)
	if err != nil {
		errs.Addf(row, "%v", err)
		return 0
	}
	size := parser.Size(decoded)
	for i := 0; i < size; i++ {
		code.Push(0, row)
	}
	return size
}
