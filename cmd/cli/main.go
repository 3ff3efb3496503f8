// Command cli runs one analysis over a CSV or XLSX file and prints the
// result as JSON. Useful for scripting and for inspecting the engine
// without the web surface.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"tablelens/adapters/source"
	"tablelens/adapters/stats/engine"
	"tablelens/domain/analysis"
)

func main() {
	var (
		file      = flag.String("file", "", "CSV or XLSX input file (required)")
		kind      = flag.String("type", "basic_stats", "analysis type")
		columns   = flag.String("columns", "", "comma-separated column names")
		left      = flag.String("left", "", "left-side columns for canonical correlation")
		right     = flag.String("right", "", "right-side columns for canonical correlation")
		xColumn   = flag.String("x", "", "ordering column for ordered-series analyses")
		algorithm = flag.String("algorithm", "", "change point algorithm")
		bins      = flag.Int("bins", 0, "histogram bin count (0 = default)")
	)
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	snapshot, err := source.NewFileReader(*file).Read()
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}
	store := source.NewMemoryStore()
	store.Put(snapshot)

	req := analysis.Request{
		Type:         analysis.Type(*kind),
		Table:        snapshot.Name,
		Columns:      splitColumns(*columns),
		LeftColumns:  splitColumns(*left),
		RightColumns: splitColumns(*right),
		XColumn:      *xColumn,
		BinCount:     *bins,
	}
	req.ChangePoint.Algorithm = analysis.ChangePointAlgorithm(*algorithm)

	result, err := engine.New(store).Run(context.Background(), req)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Println(string(out))
}

func splitColumns(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
