package isa

// LegalModes is a bitmask of addressing modes allowed on one side of an
// instruction's operand list.
type LegalModes int

const (
	LegalImmediate LegalModes = 1 << IMMEDIATE
	LegalDirect    LegalModes = 1 << DIRECT
	LegalMatrix    LegalModes = 1 << MATRIX
	LegalRegister  LegalModes = 1 << REGISTER

	legalLabelOnly = LegalDirect | LegalMatrix
	legalWritable  = LegalDirect | LegalMatrix | LegalRegister
	legalAny       = LegalImmediate | LegalDirect | LegalMatrix | LegalRegister
)

// Allows reports whether m is permitted by the mask.
func (lm LegalModes) Allows(m Mode) bool {
	return lm&(1<<uint(m)) != 0
}

// Opcode describes one of the 16 machine instructions: its numeric code,
// how many operands it takes, and which addressing modes are legal on
// each side. A zero-operand instruction leaves both masks empty.
type Opcode struct {
	Name   string
	Code   int
	Argc   int
	SrcOK  LegalModes
	DstOK  LegalModes
}

var opcodeTable = []Opcode{
	{Name: "mov", Code: 0, Argc: 2, SrcOK: legalAny, DstOK: legalWritable},
	{Name: "cmp", Code: 1, Argc: 2, SrcOK: legalAny, DstOK: legalAny},
	{Name: "add", Code: 2, Argc: 2, SrcOK: legalAny, DstOK: legalWritable},
	{Name: "sub", Code: 3, Argc: 2, SrcOK: legalAny, DstOK: legalWritable},
	{Name: "lea", Code: 4, Argc: 2, SrcOK: legalLabelOnly, DstOK: legalWritable},
	{Name: "clr", Code: 5, Argc: 1, DstOK: legalWritable},
	{Name: "not", Code: 6, Argc: 1, DstOK: legalWritable},
	{Name: "inc", Code: 7, Argc: 1, DstOK: legalWritable},
	{Name: "dec", Code: 8, Argc: 1, DstOK: legalWritable},
	{Name: "jmp", Code: 9, Argc: 1, DstOK: legalLabelOnly},
	{Name: "bne", Code: 10, Argc: 1, DstOK: legalLabelOnly},
	{Name: "red", Code: 11, Argc: 1, DstOK: legalWritable},
	{Name: "prn", Code: 12, Argc: 1, DstOK: legalAny},
	{Name: "jsr", Code: 13, Argc: 1, DstOK: legalLabelOnly},
	{Name: "rts", Code: 14, Argc: 0},
	{Name: "stop", Code: 15, Argc: 0},
}

var opcodeByName map[string]*Opcode

func init() {
	opcodeByName = make(map[string]*Opcode, len(opcodeTable))
	for i := range opcodeTable {
		opcodeByName[opcodeTable[i].Name] = &opcodeTable[i]
	}
}

// Lookup returns the opcode descriptor for a mnemonic, or false if the
// name isn't an instruction.
func Lookup(name string) (Opcode, bool) {
	op, ok := opcodeByName[name]
	if !ok {
		return Opcode{}, false
	}
	return *op, true
}

// Mnemonics returns every recognized instruction name.
func Mnemonics() []string {
	names := make([]string, len(opcodeTable))
	for i, op := range opcodeTable {
		names[i] = op.Name
	}
	return names
}
