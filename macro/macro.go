// Package macro implements the line-oriented macro preprocessor: it
// expands `mcro ... mcroend` blocks into an intermediate source stream,
// sharing the single identifier namespace with labels via a nameset.Set.
package macro

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/linkasm/diag"
	"github.com/beevik/linkasm/ident"
	"github.com/beevik/linkasm/isa"
	"github.com/beevik/linkasm/nameset"
)

const (
	kwStart = "mcro"
	kwEnd   = "mcroend"
)

type state int

const (
	outside state = iota
	insideMacro
)

// Expand reads source from r, expands macro invocations, and writes the
// resulting intermediate text to w. names is the shared identifier set
// (macro names collide with label names in the same namespace). On any
// error, Expand returns false; the caller is responsible for discarding
// whatever it already wrote to w and removing any partial intermediate
// file on preprocessor failure.
func Expand(r io.Reader, w io.Writer, names *nameset.Set, limits isa.Limits, errs *diag.Bag) bool {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 64*1024)

	bodies := make(map[string][]string)

	st := outside
	var curName string
	var curBody []string
	row := 0
	ok := true

	for scanner.Scan() {
		row++
		text := scanner.Text()
		if len(text) > limits.MaxLineLen {
			errs.Addf(row, "line exceeds maximum length of %d characters", limits.MaxLineLen)
			ok = false
			continue
		}

		trimmed := strings.TrimSpace(text)

		switch st {
		case outside:
			if isBlankOrComment(trimmed) {
				fmt.Fprintln(w, text)
				continue
			}

			if isStart, name, nameErr := matchStart(trimmed); isStart {
				if nameErr != nil {
					errs.Addf(row, "%v", nameErr)
					ok = false
					continue
				}
				if !ident.IsValidMacroName(name, limits) {
					errs.Addf(row, "invalid macro name '%s'", name)
					ok = false
					continue
				}
				if !names.Add(name) {
					errs.Addf(row, "identifier '%s' already in use", name)
					ok = false
					continue
				}
				st = insideMacro
				curName = name
				curBody = nil
				continue
			}

			if trimmed == kwEnd {
				errs.Addf(row, "'%s' without matching '%s'", kwEnd, kwStart)
				ok = false
				continue
			}

			// A label may prefix a macro invocation on the same line
			// ("START: hello"); split it off so the label still gets
			// its own statement in the expanded output.
			label, stmt, hasLabel := splitLabel(trimmed)
			if body, isMacro := bodies[stmt]; isMacro {
				if hasLabel {
					fmt.Fprintln(w, label+":")
				}
				for _, l := range body {
					fmt.Fprintln(w, l)
				}
				continue
			}

			fmt.Fprintln(w, text)

		case insideMacro:
			if trimmed == kwStart || strings.HasPrefix(trimmed, kwStart+" ") {
				errs.Addf(row, "nested macro definition")
				ok = false
				continue
			}
			if trimmed == kwEnd {
				bodies[curName] = curBody
				st = outside
				continue
			}
			if isBlankOrComment(trimmed) {
				continue
			}
			curBody = append(curBody, trimmed)
		}
	}

	if st == insideMacro {
		errs.Addf(row, "unclosed macro '%s' at end of input", curName)
		ok = false
	}

	return ok && errs.OK()
}

func isBlankOrComment(trimmed string) bool {
	if trimmed == "" {
		return true
	}
	return trimmed[0] == ';'
}

// splitLabel splits a leading "NAME:" label off trimmed, if present.
func splitLabel(trimmed string) (label, rest string, has bool) {
	if trimmed == "" || !isAlpha(trimmed[0]) {
		return "", trimmed, false
	}
	j := 0
	for j < len(trimmed) && isIdentByte(trimmed[j]) {
		j++
	}
	if j >= len(trimmed) || trimmed[j] != ':' {
		return "", trimmed, false
	}
	return trimmed[:j], strings.TrimSpace(trimmed[j+1:]), true
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentByte(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9') || c == '_'
}

// matchStart reports whether trimmed begins a "mcro <name>" definition
// header. If the first token is "mcro" but the rest of the line isn't
// exactly one name, isStart is still true and err describes the problem.
func matchStart(trimmed string) (isStart bool, name string, err error) {
	fields := strings.Fields(trimmed)
	if len(fields) == 0 || fields[0] != kwStart {
		return false, "", nil
	}
	if len(fields) != 2 {
		return true, "", fmt.Errorf("'%s' requires exactly one macro name", kwStart)
	}
	return true, fields[1], nil
}
