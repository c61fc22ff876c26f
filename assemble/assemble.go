// Package assemble drives one source file through the full pipeline:
// macro preprocessing, pass 1, pass 2, and the output writers.
package assemble

import (
	"bytes"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/beevik/linkasm/diag"
	"github.com/beevik/linkasm/isa"
	"github.com/beevik/linkasm/macro"
	"github.com/beevik/linkasm/nameset"
	"github.com/beevik/linkasm/objwriter"
	"github.com/beevik/linkasm/pass1"
	"github.com/beevik/linkasm/pass2"
)

// Options configures one assembly run.
type Options struct {
	Limits    isa.Limits
	AddrWidth int // forwarded to objwriter.Config; 0 means trimmed addresses
	Log       *logrus.Logger
}

// Outcome reports the result of assembling one base name.
type Outcome struct {
	Base string
	OK   bool
	Errs *diag.Bag
}

// File assembles base+".as" and, on success, writes base+".ob" and
// conditionally base+".ent"/base+".ext". The intermediate base+".am" is
// written after a successful preprocessor stage and removed if
// preprocessing itself fails.
func File(base string, opts Options) Outcome {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	flog := log.WithField("file", base)

	srcPath := base + ".as"
	amPath := base + ".am"

	src, err := os.Open(srcPath)
	if err != nil {
		wrapped := errors.Wrapf(err, "cannot open '%s'", srcPath)
		flog.WithError(wrapped).Error("cannot open source file")
		errs := &diag.Bag{}
		errs.Addf(0, "%v", wrapped)
		return Outcome{Base: base, OK: false, Errs: errs}
	}
	defer src.Close()

	flog.Debug("expanding macros")
	names := nameset.New()
	var amBuf bytes.Buffer
	errs := &diag.Bag{}
	if !macro.Expand(src, &amBuf, names, opts.Limits, errs) {
		os.Remove(amPath)
		flog.Warn("macro preprocessing failed")
		return Outcome{Base: base, OK: false, Errs: errs}
	}

	if err := os.WriteFile(amPath, amBuf.Bytes(), 0o644); err != nil {
		wrapped := errors.Wrapf(err, "cannot write '%s'", amPath)
		flog.WithError(wrapped).Error("cannot write intermediate file")
		errs.Addf(0, "%v", wrapped)
		return Outcome{Base: base, OK: false, Errs: errs}
	}

	lines := splitLines(amBuf.String())

	flog.Debug("running pass 1")
	p1 := pass1.Run(lines, opts.Limits, names)
	if final := p1.ICFinal + p1.Data.Len(); final > opts.Limits.MemoryCapacity {
		p1.Errs.Addf(0, "program requires %d words, exceeds memory capacity of %d", final, opts.Limits.MemoryCapacity)
	}

	flog.Debug("running pass 2")
	p2 := pass2.Run(lines, opts.Limits, p1.Symbols, p1.Errs)

	if p1.Code.Len() != p2.Code.Len() {
		p2.Errs.Addf(0, "internal error: pass 1 reserved %d code words but pass 2 emitted %d",
			p1.Code.Len(), p2.Code.Len())
	}

	if !p2.Errs.OK() {
		flog.Warn("assembly failed, no artifacts written")
		removeArtifacts(base)
		return Outcome{Base: base, OK: false, Errs: p2.Errs}
	}

	flog.Debug("writing output artifacts")
	cfg := objwriter.Config{AddrWidth: opts.AddrWidth}

	if err := writeFile(base+".ob", func(w *os.File) error {
		return objwriter.WriteObject(w, p2.Code, p1.Data, opts.Limits.ICStart, cfg)
	}); err != nil {
		p2.Errs.Addf(0, "%v", errors.Wrap(err, "cannot write object file"))
		removeArtifacts(base)
		return Outcome{Base: base, OK: false, Errs: p2.Errs}
	}

	if len(p2.Entries) > 0 {
		if err := writeFile(base+".ent", func(w *os.File) error {
			return objwriter.WriteEntries(w, p2.Entries, cfg)
		}); err != nil {
			p2.Errs.Addf(0, "%v", errors.Wrap(err, "cannot write entries file"))
			removeArtifacts(base)
			return Outcome{Base: base, OK: false, Errs: p2.Errs}
		}
	}

	if len(p2.Externs) > 0 {
		if err := writeFile(base+".ext", func(w *os.File) error {
			return objwriter.WriteExterns(w, p2.Externs, cfg)
		}); err != nil {
			p2.Errs.Addf(0, "%v", errors.Wrap(err, "cannot write externs file"))
			removeArtifacts(base)
			return Outcome{Base: base, OK: false, Errs: p2.Errs}
		}
	}

	flog.Info("assembly succeeded")
	return Outcome{Base: base, OK: true, Errs: p2.Errs}
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(f)
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func removeArtifacts(base string) {
	os.Remove(base + ".ob")
	os.Remove(base + ".ent")
	os.Remove(base + ".ext")
}
