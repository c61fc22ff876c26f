// Package isa defines the 10-bit word machine: its opcode table, addressing
// modes, A/R/E tagging, and the pure bit-packing helpers used to build
// instruction words. Pass 1 uses it for sizing; pass 2 uses it for emission;
// both must call the same helpers so sizing and emission never diverge.
package isa

// Limits holds the assembler's fixed architectural parameters. They are
// exposed as a struct (rather than bare constants) so the CLI can override
// them for testing without a config file.
type Limits struct {
	ICStart        int // first address of program code
	MemoryCapacity int // total addressable words, 0..MemoryCapacity-1
	MaxLabelLen    int // maximum characters in a label or macro name
	MaxLineLen     int // maximum characters in a source line
}

// DefaultLimits returns the limits specified for this architecture.
func DefaultLimits() Limits {
	return Limits{
		ICStart:        100,
		MemoryCapacity: 256,
		MaxLabelLen:    30,
		MaxLineLen:     80,
	}
}
