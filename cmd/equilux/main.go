// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command equilux computes sunrise, sunset, daylight and darkness for an
// observer and reports the equilux, the day closest to equal daylight and
// darkness, together with the sunrise and sunset closest to due east and
// due west for each half of a year.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"time"
	_ "time/tzdata"

	"cloudeng.io/cmdutil"
	"cloudeng.io/cmdutil/subcmd"
)

const cmdSpec = `name: equilux
summary: compute sunrise, sunset, daylight and darkness for an observer and search for the equilux and the sunrise and sunset closest to due east and due west. The report command is run if no command is given.
commands:
  - name: report
    summary: report the equinox, the equilux and the sunrise and sunset closest to due east and west for each half of a year.
  - name: table
    summary: print the sunrise, sunset, daylight and darkness for every day from start through end.
    arguments:
      - <start>
      - <end>
  - name: search
    summary: print the day from start through end with the smallest, or with --max the largest, value of the named column.
    arguments:
      - <column>
      - <start>
      - <end>
  - name: equinox
    summary: print the next equinox and solstice after the specified date, or after now.
    arguments:
      - "[date]"
`

func newCommandSet(out io.Writer) *subcmd.CommandSetYAML {
	cmdSet := subcmd.MustFromYAML(cmdSpec)
	cmds := &commands{out: out, now: time.Now}
	cmdSet.Set("report").MustRunnerAndFlags(cmds.report,
		subcmd.MustRegisteredFlagSet(&reportFlags{}))
	cmdSet.Set("table").MustRunnerAndFlags(cmds.table,
		subcmd.MustRegisteredFlagSet(&tableFlags{}))
	cmdSet.Set("search").MustRunnerAndFlags(cmds.search,
		subcmd.MustRegisteredFlagSet(&searchFlags{}))
	cmdSet.Set("equinox").MustRunnerAndFlags(cmds.equinox,
		subcmd.MustRegisteredFlagSet(&equinoxFlags{}))
	return cmdSet
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"report"}
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newCommandSet(os.Stdout).DispatchWithArgs(ctx, os.Args[0], args...)
	cancel()
	if err != nil {
		cmdutil.Exit("%v", err)
	}
}
