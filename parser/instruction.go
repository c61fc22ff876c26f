package parser

import (
	"fmt"

	"github.com/beevik/linkasm/isa"
	"github.com/beevik/linkasm/scan"
)

// Decoded is the fully-parsed form of one instruction statement: its
// opcode, operand count, and per-side operand data. Pass 1 uses only
// Size(d); pass 2 uses the whole struct to emit words. Both passes reach
// it through ParseInstruction, so they can never disagree.
type Decoded struct {
	Opcode isa.Opcode
	Argc   int
	Src    Operand
	Dst    Operand
}

// ParseInstruction parses a mnemonic and its operands starting at line.
// It validates operand count and per-side addressing-mode legality against
// the opcode table, but does not touch the symbol table — addressing mode
// is determined purely by operand syntax, so sizing never needs labels to
// be resolved.
func ParseInstruction(line scan.Line) (Decoded, error) {
	mnemonicTok, rest := line.ConsumeWhile(scan.IdentChar)
	if mnemonicTok.IsEmpty() {
		return Decoded{}, fmt.Errorf("invalid opcode '%s'", firstWord(line))
	}

	op, ok := isa.Lookup(mnemonicTok.Str)
	if !ok {
		return Decoded{}, fmt.Errorf("invalid opcode '%s'", mnemonicTok.Str)
	}

	rest = rest.ConsumeWhitespace()
	d := Decoded{Opcode: op, Argc: op.Argc}

	switch op.Argc {
	case 0:
		if !rest.IsEmpty() {
			return Decoded{}, fmt.Errorf("unexpected operand after '%s'", op.Name)
		}

	case 1:
		if rest.IsEmpty() {
			return Decoded{}, fmt.Errorf("missing operand for '%s'", op.Name)
		}
		dst, remain, err := ParseOperand(rest)
		if err != nil {
			return Decoded{}, err
		}
		remain = remain.ConsumeWhitespace()
		if !remain.IsEmpty() {
			return Decoded{}, fmt.Errorf("unexpected text after operand of '%s'", op.Name)
		}
		if !op.DstOK.Allows(dst.Mode) {
			return Decoded{}, fmt.Errorf("addressing mode not allowed on operand of '%s'", op.Name)
		}
		d.Dst = dst

	case 2:
		if rest.IsEmpty() {
			return Decoded{}, fmt.Errorf("missing source operand for '%s'", op.Name)
		}
		src, remain, err := ParseOperand(rest)
		if err != nil {
			return Decoded{}, err
		}
		remain = remain.ConsumeWhitespace()
		if !remain.StartsWithChar(',') {
			return Decoded{}, fmt.Errorf("missing comma between operands of '%s'", op.Name)
		}
		remain = remain.Consume(1).ConsumeWhitespace()
		if remain.IsEmpty() {
			return Decoded{}, fmt.Errorf("missing destination operand for '%s'", op.Name)
		}
		dst, remain2, err := ParseOperand(remain)
		if err != nil {
			return Decoded{}, err
		}
		remain2 = remain2.ConsumeWhitespace()
		if !remain2.IsEmpty() {
			return Decoded{}, fmt.Errorf("unexpected text after operands of '%s'", op.Name)
		}
		if !op.SrcOK.Allows(src.Mode) {
			return Decoded{}, fmt.Errorf("addressing mode not allowed on source of '%s'", op.Name)
		}
		if !op.DstOK.Allows(dst.Mode) {
			return Decoded{}, fmt.Errorf("addressing mode not allowed on destination of '%s'", op.Name)
		}
		d.Src = src
		d.Dst = dst
	}

	return d, nil
}

// Size computes the word count an instruction occupies, including the
// reg-reg packing exception: a two-operand instruction with both sides
// REGISTER collapses its two extra words into one packed word.
func Size(d Decoded) int {
	words := 1
	if d.Argc == 2 && d.Src.Mode == isa.REGISTER && d.Dst.Mode == isa.REGISTER {
		return words + 1
	}
	if d.Src.Present {
		words += d.Src.Mode.ExtraWords()
	}
	if d.Dst.Present {
		words += d.Dst.Mode.ExtraWords()
	}
	return words
}
