// Package objwriter renders a finished assembly (code, data, entries,
// externs) into the custom base-4 text formats: the object file, the
// entries file, and the externs file.
package objwriter

import (
	"bufio"
	"fmt"
	"io"

	"github.com/beevik/linkasm/image"
	"github.com/beevik/linkasm/pass2"
)

// digitAlphabet maps base-4 digit values 0..3 to their printed character.
const digitAlphabet = "abcd"

// wordDigits is the fixed width of a printed 10-bit word: 4^5 = 1024.
const wordDigits = 5

// EncodeBase4 renders v in base 4 using the a,b,c,d alphabet. If width is
// greater than zero the result is left-padded with 'a' to that width;
// otherwise the result is trimmed to its minimal non-empty representation.
func EncodeBase4(v int, width int) string {
	if v < 0 {
		v = 0
	}
	digits := []byte{digitAlphabet[0]}
	if v > 0 {
		digits = nil
		for v > 0 {
			digits = append([]byte{digitAlphabet[v%4]}, digits...)
			v /= 4
		}
	}
	for len(digits) < width {
		digits = append([]byte{digitAlphabet[0]}, digits...)
	}
	return string(digits)
}

// Config controls address-field formatting. AddrWidth is the fixed width
// used for header lengths and addresses; 0 means trimmed.
type Config struct {
	AddrWidth int
}

// WriteObject writes the header line and one "<addr> <word>" line per code
// word, then per data word, to w. Code addresses start at startAddr; data
// addresses start immediately after the code region.
func WriteObject(w io.Writer, code, data *image.Image, startAddr int, cfg Config) error {
	bw := bufio.NewWriter(w)

	codeLen := code.Len()
	dataLen := data.Len()
	if _, err := fmt.Fprintf(bw, "%s %s\n",
		EncodeBase4(codeLen, cfg.AddrWidth), EncodeBase4(dataLen, cfg.AddrWidth)); err != nil {
		return err
	}

	addr := startAddr
	for _, word := range code.Words() {
		if _, err := fmt.Fprintf(bw, "%s %s\n",
			EncodeBase4(addr, cfg.AddrWidth), EncodeBase4(int(word.Value), wordDigits)); err != nil {
			return err
		}
		addr++
	}

	addr = startAddr + codeLen
	for _, word := range data.Words() {
		if _, err := fmt.Fprintf(bw, "%s %s\n",
			EncodeBase4(addr, cfg.AddrWidth), EncodeBase4(int(word.Value), wordDigits)); err != nil {
			return err
		}
		addr++
	}

	return bw.Flush()
}

// WriteEntries writes one "<name> <addr>" line per entry. The caller must
// skip the call entirely when entries is empty: the entries file is only
// written when non-empty.
func WriteEntries(w io.Writer, entries []pass2.Entry, cfg Config) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s %s\n", e.Name, EncodeBase4(e.Addr, cfg.AddrWidth)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteExterns writes one "<name> <addr>" line per use-site, in the order
// they were recorded during pass 2. A symbol referenced more than once
// appears once per use-site.
func WriteExterns(w io.Writer, externs []pass2.Extern, cfg Config) error {
	bw := bufio.NewWriter(w)
	for _, e := range externs {
		if _, err := fmt.Fprintf(bw, "%s %s\n", e.Name, EncodeBase4(e.Addr, cfg.AddrWidth)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
