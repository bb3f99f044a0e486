// dcchart renders the divide & conquer benchmark results CSV into a
// two-panel complexity analysis figure (PNG).
//
// Panel A compares measured running time (with error bars) against the
// normalized theoretical curve on linear axes. Panel B compares measured
// comparison counts against the raw theoretical curve on log-log axes. A
// caption strip underneath reports the mean measured/theoretical efficiency.
//
// Run with no flags to read dc_analysis_results.csv and write
// dc_complexity_analysis.png in the working directory.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iafilius/ComplexityCharts/src/analysis"
	"github.com/iafilius/ComplexityCharts/src/logging"
)

func main() {
	var input string
	var out string
	var logLevel string
	flag.StringVar(&input, "input", "dc_analysis_results.csv", "Path to the benchmark results CSV")
	flag.StringVar(&out, "out", "dc_complexity_analysis.png", "Output PNG path")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()
	logging.SetLogLevel(logLevel)

	if err := run(input, out); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(input, out string) error {
	rows, err := analysis.LoadMeasurements(input)
	if err != nil {
		return err
	}
	logging.Debugf("loaded %d measurement rows from %s (n=%d..%d)",
		len(rows), input, rows[0].GridSize, rows[len(rows)-1].GridSize)
	fig, err := renderFigure(rows)
	if err != nil {
		return err
	}
	if err := savePNG(fig, out); err != nil {
		return err
	}
	fmt.Printf("Divide & Conquer complexity analysis plot saved as %s\n", out)
	return nil
}
