package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"labelpress/internal/config"
	"labelpress/internal/pipeline"
	"labelpress/internal/render"
	"labelpress/internal/settings"
	"labelpress/internal/storage"
	"labelpress/internal/tableio"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cmd := os.Args[1]
	switch cmd {
	case "generate":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "input .xlsx or .csv path")
		output := fs.String("out", "", "output pdf path")
		size := fs.String("size", "", "label size 2x1|3x1")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}

		table, err := loadTable(*input)
		must(err)

		labelSize := *size
		if labelSize == "" {
			labelSize = cfg.DefaultLabelSize
		}
		fetcher := render.NewHTTPFetcher(time.Duration(cfg.FetchTimeoutMs)*time.Millisecond, cfg.FetchRateLimit)
		gen := render.NewGenerator(db.SettingsSnapshot(logger), labelSize, fetcher, render.NewCodeRenderer(), logger)
		res, err := gen.Generate(context.Background(), table)
		must(err)

		out := *output
		if out == "" {
			out = filepath.Join(cfg.OutputDir, fmt.Sprintf("labels_%s.pdf", time.Now().Format("20060102_150405")))
		}
		must(os.MkdirAll(filepath.Dir(out), 0o755))
		must(os.WriteFile(out, res.PDF, 0o644))
		must(db.InsertRun("cli", "generate", string(res.Format), res.Rows, res.Pages))
		fmt.Printf("generate done format=%s rows=%d pages=%d output=%s\n", res.Format, res.Rows, res.Pages, out)
	case "validate":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "input .xlsx or .csv path")
		report := fs.String("out", "", "optional xlsx report path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}

		table, err := loadTable(*input)
		must(err)

		pipe := pipeline.New(db.SettingsSnapshot(logger))
		result, err := pipe.Validate(table)
		must(err)
		must(db.InsertRun("cli", "validate", string(result.Format), result.TotalRows, 0))

		fmt.Printf("validate done format=%s rows=%d matched=%d unmatched=%d\n",
			result.Format, result.TotalRows, result.MatchedCount, result.UnmatchedCount)
		for _, row := range result.UnmatchedRows {
			fmt.Printf("  row %d: %s\n", row.RowNumber, row.ItemName)
		}
		for _, s := range result.Suggestions {
			fmt.Printf("  suggestion: %s\n", s)
		}
		if strings.TrimSpace(*report) != "" {
			must(pipeline.ExportReportToXLSX(result, *report))
			fmt.Printf("report written to %s\n", *report)
		}
	case "settings:show":
		doc, err := json.MarshalIndent(db.SettingsSnapshot(logger), "", "  ")
		must(err)
		fmt.Println(string(doc))
	case "settings:import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "settings json path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}
		body, err := os.ReadFile(*file)
		must(err)
		cfgDoc, err := settings.Parse(body)
		must(err)
		canonical, err := json.Marshal(cfgDoc)
		must(err)
		must(db.SaveSettingsJSON(canonical))
		fmt.Printf("settings imported: %d product types, %d rules\n", len(cfgDoc.ProductTypes), len(cfgDoc.ShorteningRules))
	case "settings:export":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output json path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}
		doc, err := json.MarshalIndent(db.SettingsSnapshot(logger), "", "  ")
		must(err)
		must(os.WriteFile(*out, doc, 0o644))
		fmt.Printf("settings exported to %s\n", *out)
	case "runs":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 20, "max records")
		_ = fs.Parse(os.Args[2:])
		runs, err := db.ListRuns(*limit)
		must(err)
		for _, r := range runs {
			fmt.Printf("%d\t%s\t%s\t%s\trows=%d pages=%d\t%s\n", r.ID, r.CreatedAt, r.Kind, r.Format, r.Rows, r.Pages, r.TraceID)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func loadTable(path string) (*tableio.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tableio.Load(path, f)
}

func usage() {
	fmt.Println("usage: labelpress <command>")
	fmt.Println("commands:")
	fmt.Println("  generate --input=orders.xlsx [--out=labels.pdf] [--size=2x1|3x1]")
	fmt.Println("  validate --input=orders.xlsx [--out=report.xlsx]")
	fmt.Println("  settings:show")
	fmt.Println("  settings:import --file=settings.json")
	fmt.Println("  settings:export --out=settings.json")
	fmt.Println("  runs [--limit=20]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
