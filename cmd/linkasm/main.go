// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command linkasm assembles one or more source files for the pedagogical
// 10-bit instruction set into object, entries, and externs files.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/beevik/linkasm/assemble"
	"github.com/beevik/linkasm/isa"
)

func main() {
	app := &cli.App{
		Name:      "linkasm",
		Usage:     "assemble source files for the 10-bit instruction set",
		ArgsUsage: "<base1> [<base2> ...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "trace each pipeline stage",
			},
			&cli.IntFlag{
				Name:  "addr-width",
				Usage: "fixed width for base-4 addresses (0 = trimmed)",
				Value: 0,
			},
			&cli.IntFlag{
				Name:  "ic-start",
				Usage: "first address of program code",
				Value: isa.DefaultLimits().ICStart,
			},
			&cli.IntFlag{
				Name:  "memory-capacity",
				Usage: "total addressable words",
				Value: isa.DefaultLimits().MemoryCapacity,
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("at least one source file is required", 1)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if c.Bool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	limits := isa.DefaultLimits()
	limits.ICStart = c.Int("ic-start")
	limits.MemoryCapacity = c.Int("memory-capacity")

	opts := assemble.Options{
		Limits:    limits,
		AddrWidth: c.Int("addr-width"),
		Log:       log,
	}

	failed := false
	for _, arg := range c.Args().Slice() {
		base := strings.TrimSuffix(arg, ".as")
		outcome := assemble.File(base, opts)
		outcome.Errs.Fprint(os.Stderr, base+".as")
		if !outcome.OK {
			failed = true
		}
	}

	if failed {
		return cli.Exit("", 1)
	}
	return nil
}
