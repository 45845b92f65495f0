package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	cmd, ok := commands[os.Args[1]]
	if !ok {
		if os.Args[1] == "-h" || os.Args[1] == "-help" || os.Args[1] == "help" {
			usage(os.Stdout)
			return
		}
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}

	env, err := setup(os.Args[1], os.Args[2:], cmd.flags)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "suntrack %s: %v\n", os.Args[1], err)
		os.Exit(2)
	}
	if err := cmd.run(context.Background(), env); err != nil {
		env.logger.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `suntrack – daily sunrise, sunset and day length

Usage:
  suntrack day    [flags]   # solar events for one date
  suntrack series [flags]   # one row per day over a range
  suntrack stats  [flags]   # min/max/avg of a column over a range
  suntrack events [flags]   # solstices and equinoxes in a range
  suntrack locate [flags]   # the day a timestamp falls on

Common flags:
  -config string   YAML config file (defaults from $SUNTRACK_CONFIG)
  -lat float       latitude in degrees (north positive)
  -lon float       longitude in degrees (east positive, west negative)
  -tz string       IANA time zone the days are counted in
  -from, -to       range as YYYY-MM-DD (default: today +/- window.days)
  -format string   text, json, yaml (series also: csv, parquet)
  -out string      output path; .gz and .zst are compressed

Run "suntrack <subcommand> -h" for the flags of each subcommand.
`)
}
