package parser

import (
	"fmt"

	"github.com/beevik/linkasm/scan"
)

// ParseDataList parses a non-empty comma-separated list of signed decimal
// integers, as used by the .data directive.
func ParseDataList(line scan.Line) ([]int, error) {
	values := []int{}
	rest := line.ConsumeWhitespace()
	for {
		if rest.IsEmpty() {
			return nil, fmt.Errorf("expected an integer")
		}
		v, remain, err := ParseInteger(rest)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		remain = remain.ConsumeWhitespace()
		if remain.IsEmpty() {
			break
		}
		if !remain.StartsWithChar(',') {
			return nil, fmt.Errorf("expected ',' or end of line, found '%s'", firstWord(remain))
		}
		rest = remain.Consume(1).ConsumeWhitespace()
	}
	if len(values) == 0 {
		return nil, fmt.Errorf(".data requires at least one value")
	}
	return values, nil
}

// ParseQuotedString parses a double-quoted string literal honoring \" and
// \\ escapes, returning the unescaped byte content (without the
// terminating 0 word the .string directive appends).
func ParseQuotedString(line scan.Line) ([]byte, error) {
	l := line.ConsumeWhitespace()
	if !l.StartsWithChar('"') {
		return nil, fmt.Errorf("expected a quoted string, found '%s'", firstWord(l))
	}
	s := l.Str
	var out []byte
	i := 1
	for i < len(s) {
		c := s[i]
		switch {
		case c == '"':
			// Closing quote: only trailing whitespace/comment may follow.
			rest := l.Consume(i + 1).ConsumeWhitespace()
			if !rest.IsEmpty() {
				return nil, fmt.Errorf("unexpected text after string literal")
			}
			return out, nil
		case c == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\'):
			out = append(out, s[i+1])
			i += 2
		default:
			out = append(out, c)
			i++
		}
	}
	return nil, fmt.Errorf("unterminated string literal")
}

// MatrixDecl is the parsed form of a .mat declaration's dimensions and
// optional initializer list.
type MatrixDecl struct {
	Rows, Cols int
	Inits      []int
}

// ParseMatrixDecl parses "[rows][cols]" followed by an optional
// comma-separated initializer list, as used by the .mat directive.
func ParseMatrixDecl(line scan.Line) (MatrixDecl, error) {
	l := line.ConsumeWhitespace()
	rows, l, err := parseBracketedInt(l)
	if err != nil {
		return MatrixDecl{}, err
	}
	cols, l, err := parseBracketedInt(l)
	if err != nil {
		return MatrixDecl{}, err
	}
	if rows <= 0 || cols <= 0 {
		return MatrixDecl{}, fmt.Errorf(".mat rows and cols must be positive, got [%d][%d]", rows, cols)
	}

	l = l.ConsumeWhitespace()
	decl := MatrixDecl{Rows: rows, Cols: cols}
	if l.IsEmpty() {
		return decl, nil
	}

	for {
		v, remain, err := ParseInteger(l)
		if err != nil {
			return MatrixDecl{}, err
		}
		decl.Inits = append(decl.Inits, v)
		remain = remain.ConsumeWhitespace()
		if remain.IsEmpty() {
			break
		}
		if !remain.StartsWithChar(',') {
			return MatrixDecl{}, fmt.Errorf("expected ',' or end of line in .mat initializers")
		}
		l = remain.Consume(1).ConsumeWhitespace()
	}

	if len(decl.Inits) > rows*cols {
		return MatrixDecl{}, fmt.Errorf(".mat has %d initializers but only %d cells", len(decl.Inits), rows*cols)
	}
	return decl, nil
}

func parseBracketedInt(line scan.Line) (int, scan.Line, error) {
	if !line.StartsWithChar('[') {
		return 0, line, fmt.Errorf("expected '[', found '%s'", firstWord(line))
	}
	l := line.Consume(1)
	v, l, err := ParseInteger(l)
	if err != nil {
		return 0, line, fmt.Errorf("expected an integer inside '[]': %v", err)
	}
	if !l.StartsWithChar(']') {
		return 0, line, fmt.Errorf("expected ']'")
	}
	return v, l.Consume(1), nil
}
