// Command xrkdump parses an AIM XRK/XRZ log file and prints a summary of
// its channels, laps, and metadata.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/scottsmith/xrklog"
)

func main() {
	table := flag.Bool("table", false, "also print the merged channel table's column count and row count")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: xrkdump [-table] <file.xrk|file.xrz>")
		os.Exit(2)
	}

	path := flag.Arg(0)

	var resyncs int

	lf, err := xrklog.Parse(path, xrklog.WithProgress(func(consumed, total int64) {
		log.Printf("xrkdump: %s: %d/%d bytes", path, consumed, total)
	}))
	if err != nil {
		log.Fatalf("xrkdump: %v", err)
	}

	fmt.Printf("%s\n", path)
	fmt.Printf("  driver:  %v\n", lf.Metadata["Driver"])
	fmt.Printf("  venue:   %v\n", lf.Metadata["Venue"])
	fmt.Printf("  laps:    %d\n", lf.Laps.Len())
	fmt.Printf("  channels: %d\n", len(lf.Channels))

	resyncs = lf.Stats.ResyncCount
	if resyncs > 0 {
		fmt.Printf("  resyncs: %d\n", resyncs)
	}

	for _, w := range lf.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w.String())
	}

	names := make([]string, 0, len(lf.Channels))
	for name := range lf.Channels {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		ch := lf.Channels[name]
		fmt.Printf("  %-32s %8d rows  %s\n", name, ch.Len(), ch.Descriptor.Units)
	}

	if *table {
		tbl, err := lf.GetChannelsAsTable()
		if err != nil {
			log.Fatalf("xrkdump: merge: %v", err)
		}

		fmt.Printf("merged table: %d rows, %d columns\n", len(tbl.Timecodes), len(tbl.Columns))
	}
}
