// Command dataflowctl loads, validates and prints a catalog file: a
// versioned, JSON-encoded list of Source/Sink/View dataflows (spec.md
// §4.2, §4.3). It owns no store of its own — every run reads one file,
// decodes it, and reports.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/streamkit-io/relexpr/catalog"
	"github.com/streamkit-io/relexpr/internal/plog"
	"github.com/streamkit-io/relexpr/internal/render"
)

func main() {
	var catalogPath string
	var help bool
	var verbose bool
	var useColor bool
	var describeName string

	flag.StringVar(&catalogPath, "catalog", "", "catalog JSON file path")
	flag.BoolVar(&help, "h", false, "show help")
	flag.BoolVar(&verbose, "verbose", false, "verbose mode (log decode progress)")
	flag.BoolVar(&useColor, "color", true, "colorize output")
	flag.StringVar(&describeName, "describe", "", "print the relation expr tree for a single named view")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [catalog_path]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Loads and validates a dataflow catalog file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s catalog.json                  # Print a table of every entry\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -describe report catalog.json # Print one view's relation expr tree\n", os.Args[0])
	}
	flag.Parse()

	if help {
		flag.Usage()
		os.Exit(0)
	}

	if catalogPath == "" && flag.NArg() > 0 {
		catalogPath = flag.Arg(0)
	}
	if catalogPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	logger := plog.Default(verbose)

	if _, err := os.Stat(catalogPath); os.IsNotExist(err) {
		logger.Errorf("catalog file does not exist: %s", catalogPath)
		os.Exit(1)
	}

	data, err := os.ReadFile(catalogPath)
	if err != nil {
		logger.Errorf("failed to read %s: %v", catalogPath, err)
		os.Exit(1)
	}

	logger.Debugf("decoding %d bytes from %s", len(data), catalogPath)
	cat, err := catalog.Decode(data)
	if err != nil {
		logger.Errorf("failed to decode catalog: %v", err)
		os.Exit(1)
	}
	logger.Debugf("decoded catalog version %d with %d entries", cat.Version, len(cat.Entries))

	if describeName != "" {
		describeView(cat, describeName, useColor, logger)
		return
	}

	fmt.Print(render.CatalogTable(cat.Entries))
}

func describeView(cat catalog.Catalog, name string, useColor bool, logger *plog.Logger) {
	for _, d := range cat.Entries {
		if d.Name() != name {
			continue
		}
		if d.Kind.String() != "view" {
			logger.Errorf("%q is a %s, not a view", name, d.Kind)
			os.Exit(1)
		}
		fmt.Printf("%s %s\n", name, render.RelationTypeString(d.Typ()))
		fmt.Print(render.NewExprRenderer(useColor).RenderRelationExpr(d.ViewRelationExpr))
		return
	}
	logger.Errorf("no entry named %q in catalog", name)
	os.Exit(1)
}
