// Command digest parses a delimited or .xlsx file and prints its statistical
// digest to stdout. Development tool for inspecting what the summary
// generator will hand to a text-generation collaborator.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"datalens/adapters/excel"
	"datalens/app"
	"datalens/domain/table"
	"datalens/internal/ingest"
)

func main() {
	var (
		path      = flag.String("file", "", "path to a .csv/.tsv/.txt/.xlsx file")
		delimiter = flag.String("delimiter", "", "field delimiter (empty = auto-detect)")
		noHeader  = flag.Bool("no-header", false, "treat the first row as data")
	)
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := ingest.DefaultConfig()
	cfg.Delimiter = *delimiter
	cfg.HasHeader = !*noHeader

	service := app.NewDatasetService()

	var ds table.Dataset
	var err error
	if strings.EqualFold(filepath.Ext(*path), ".xlsx") {
		ds, err = excel.NewReader(*path).ReadDataset(cfg.HasHeader)
	} else {
		file, openErr := os.Open(*path)
		if openErr != nil {
			log.Fatalf("failed to open %s: %v", *path, openErr)
		}
		defer file.Close()
		ds, err = service.ParseUpload(file, *path, cfg)
	}
	if err != nil {
		log.Fatalf("failed to parse %s: %v", *path, err)
	}

	fmt.Print(service.Digest(ds))
}
