package main

import (
	"fmt"
	"os"

	"agrisight/internal/catalog"
	"agrisight/internal/config"
	"agrisight/internal/pipeline"
	"agrisight/internal/server"
	"agrisight/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	index := map[string]string{}
	if cat, err := catalog.LoadDir(cfg.CatalogDir); err == nil && cat.Len() > 0 {
		index = cat.ReverseIndex()
		for _, w := range cat.Warnings() {
			fmt.Fprintf(os.Stderr, "catalog warning: %s\n", w)
		}
	} else {
		fmt.Fprintln(os.Stderr, "warning: no catalog loaded, all rows will classify as Other")
	}

	analyzer := pipeline.NewAnalyzer(cfg, index)
	if db, err := storage.Open(cfg.DBPath); err == nil {
		analyzer.DB = db
		defer db.Close()
	} else {
		fmt.Fprintf(os.Stderr, "warning: run history disabled: %v\n", err)
	}

	srv := server.New(analyzer)
	fmt.Printf("analysis server listening on %s\n", cfg.HTTPAddr)
	must(srv.Router().Run(cfg.HTTPAddr))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
