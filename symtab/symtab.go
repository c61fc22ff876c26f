// Package symtab implements the assembler's symbol table: name to
// {address, kind, definition line}, with entry-marking and end-of-pass-1
// data relocation.
package symtab

import "github.com/beevik/linkasm/diag"

// Attr is a bitmask describing a symbol's current state.
type Attr int

const (
	Code   Attr = 1 << 0
	Data   Attr = 1 << 1
	Extern Attr = 1 << 2
	Entry  Attr = 1 << 3
)

// Symbol is a snapshot of one name's state in the table.
type Symbol struct {
	Name    string
	Value   int
	Attrs   Attr
	DefLine int
}

// IsDefined reports whether the symbol has a local CODE or DATA definition.
func (s Symbol) IsDefined() bool {
	return s.Attrs&(Code|Data) != 0
}

// IsExternal reports whether the symbol was declared with .extern.
func (s Symbol) IsExternal() bool {
	return s.Attrs&Extern != 0
}

// IsEntry reports whether the symbol was marked with .entry.
func (s Symbol) IsEntry() bool {
	return s.Attrs&Entry != 0
}

// Table is the assembler's symbol table. Insertion order is preserved so
// that entries output is deterministic.
type Table struct {
	order  []string
	byName map[string]*Symbol
}

// New returns an empty symbol table.
func New() *Table {
	return &Table{byName: make(map[string]*Symbol)}
}

func (t *Table) insert(name string) *Symbol {
	sym := &Symbol{Name: name}
	t.byName[name] = sym
	t.order = append(t.order, name)
	return sym
}

// Define records name as CODE, DATA, or EXTERN at value, originating on
// source line line. It reports false (with a diagnostic added to errs) if the
// definition conflicts with a prior one:
//   - defining something already declared EXTERN is illegal
//   - redefining something already CODE or DATA is a duplicate label
//
// A symbol previously seen only via .entry (placeholder, ENTRY only) is
// upgraded in place to also carry kind and value.
func (t *Table) Define(name string, value int, kind Attr, line int, errs *diag.Bag) bool {
	sym, found := t.byName[name]
	if !found {
		sym = t.insert(name)
		sym.Attrs = kind
		sym.Value = value
		sym.DefLine = line
		return true
	}

	if sym.Attrs&Extern != 0 {
		errs.Addf(line, "cannot define external symbol '%s'", name)
		return false
	}
	if sym.IsDefined() {
		errs.Addf(line, "duplicate label '%s', previously defined on line %d", name, sym.DefLine)
		return false
	}

	// Present so far only as an ENTRY placeholder; fill in its definition.
	sym.Attrs |= kind
	sym.Value = value
	sym.DefLine = line
	return true
}

// MarkEntry marks name as an entry symbol, inserting a placeholder if it
// hasn't been seen yet. Marking an already-extern symbol as an entry is an
// error. Marking an already-entry symbol again is idempotent.
func (t *Table) MarkEntry(name string, line int, errs *diag.Bag) bool {
	sym, found := t.byName[name]
	if !found {
		sym = t.insert(name)
		sym.Attrs = Entry
		sym.DefLine = line
		return true
	}

	if sym.Attrs&Extern != 0 {
		errs.Addf(line, "symbol '%s' cannot be both extern and entry", name)
		return false
	}
	sym.Attrs |= Entry
	return true
}

// Lookup returns a snapshot of name's current state, or false if the name
// has never been seen.
func (t *Table) Lookup(name string) (Symbol, bool) {
	sym, found := t.byName[name]
	if !found {
		return Symbol{}, false
	}
	return *sym, true
}

// IsExternal reports whether name is currently known and declared extern.
func (t *Table) IsExternal(name string) bool {
	sym, found := t.byName[name]
	return found && sym.Attrs&Extern != 0
}

// RelocateData adds icFinal to the value of every DATA symbol. Must be
// invoked exactly once, at the end of pass 1.
func (t *Table) RelocateData(icFinal int) {
	for _, name := range t.order {
		sym := t.byName[name]
		if sym.Attrs&Data != 0 {
			sym.Value += icFinal
		}
	}
}

// Foreach iterates all symbols in insertion order.
func (t *Table) Foreach(fn func(Symbol)) {
	for _, name := range t.order {
		fn(*t.byName[name])
	}
}
