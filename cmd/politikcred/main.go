package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"politikcred/internal/assets"
	"politikcred/internal/config"
	"politikcred/internal/pipeline"
	"politikcred/internal/sources"
	"politikcred/internal/storage"
	"politikcred/internal/store"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	ctx := context.Background()

	cmd := os.Args[1]
	switch cmd {
	case "populate":
		registry, err := assets.Load(cfg.AssetsConfigPath)
		must(err)
		supabase := store.NewSupabase(cfg)
		adapters := sources.Defaults(cfg, logger)
		svc := pipeline.NewService(cfg, adapters, supabase, registry, db, logger)
		summary, err := svc.Run(ctx)
		must(err)
		fmt.Printf("populate done fetched=%d after_dedup=%d inserted=%d failed=%d\n",
			summary.TotalFetched, summary.TotalAfterDedup, summary.TotalInserted, len(summary.FailedRecords))
		for _, f := range summary.FailedRecords {
			fmt.Printf("  failed: %s (%s): %s\n", f.Name, f.Source, f.Error)
		}
	case "assets:update":
		must(cfg.RequireStore())
		registry, err := assets.Load(cfg.AssetsConfigPath)
		must(err)
		supabase := store.NewSupabase(cfg)
		updater := assets.NewUpdateService(supabase, registry, logger)
		updated, err := updater.UpdateAll(ctx)
		must(err)
		fmt.Printf("assets update done updated=%d\n", updated)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			*out = filepath.Join(cfg.OutputDir, "politicians.xlsx")
		}
		rows, err := db.ListSnapshot()
		must(err)
		if len(rows) == 0 {
			must(fmt.Errorf("no snapshot rows; run populate first"))
		}
		must(pipeline.ExportSnapshotToXLSX(rows, *out))
		fmt.Printf("exported %d rows to %s\n", len(rows), *out)
	case "snapshot:stats":
		stats, err := db.Stats()
		must(err)
		fmt.Printf("snapshot total=%d\n", stats.Total)
		fmt.Printf("  by orientation: %v\n", stats.ByOrientation)
		fmt.Printf("  by tier: %v\n", stats.ByTier)
		fmt.Printf("  by source: %v\n", stats.BySource)
	case "runs:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 10, "number of runs to show")
		_ = fs.Parse(os.Args[2:])
		runs, err := db.ListRuns(*limit)
		must(err)
		for _, r := range runs {
			fmt.Printf("%s trace=%s counts=%s timings=%s\n", r.CreatedAt, r.TraceID, r.CountsJSON, r.TimingsJSON)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: politikcred <command>")
	fmt.Println("commands:")
	fmt.Println("  populate")
	fmt.Println("  assets:update")
	fmt.Println("  export:xlsx [--out=./out/politicians.xlsx]")
	fmt.Println("  snapshot:stats")
	fmt.Println("  runs:list [--limit=10]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
