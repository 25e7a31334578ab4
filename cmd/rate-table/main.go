// ABOUTME: Rate table inspection tool
// ABOUTME: Prints the supported rates and how requested rates normalize
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/retroplayer/audiobridge/pkg/bridge"
)

var ratesFlag = flag.String("rates", "", "Comma separated rate table (default: built-in table)")

func parseRates(s string) ([]int, error) {
	var rates []int
	for _, part := range strings.Split(s, ",") {
		r, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid rate %q: %w", part, err)
		}
		rates = append(rates, r)
	}
	return rates, nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: rate-table [-rates r1,r2,...] [rate ...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	table := bridge.DefaultRateTable()
	if *ratesFlag != "" {
		rates, err := parseRates(*ratesFlag)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if table, err = bridge.NewRateTable(rates); err != nil {
			log.Fatalf("%v", err)
		}
	}

	fmt.Println("=== Supported Rates ===")
	for _, r := range table.Rates() {
		fmt.Printf("  %d Hz\n", r)
	}

	if flag.NArg() == 0 {
		return
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REQUESTED\tNORMALIZED\tSUPPORTED")
	for _, arg := range flag.Args() {
		rate, err := strconv.Atoi(arg)
		if err != nil || rate <= 0 {
			fmt.Fprintf(w, "%s\t-\tinvalid\n", arg)
			continue
		}
		n := table.Normalize(rate)
		supported := "yes"
		if n != rate {
			supported = "no (resampling required)"
		}
		fmt.Fprintf(w, "%d\t%d\t%s\n", rate, n, supported)
	}
	w.Flush()
}
