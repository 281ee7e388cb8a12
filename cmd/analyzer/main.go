package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"ceo-tweet-analyzer/internal/logger"
	"ceo-tweet-analyzer/internal/prolog"
	"ceo-tweet-analyzer/internal/storage"
	"ceo-tweet-analyzer/internal/store"
	"ceo-tweet-analyzer/internal/trace"

	"github.com/joho/godotenv"
)

func main() {
	var (
		handle       = flag.String("handle", "", "CEO's Twitter/X handle (without @)")
		ticker       = flag.String("ticker", "", "Stock ticker symbol (e.g. TSLA)")
		days         = flag.Int("days", 90, "Number of days to analyze, looking back from today")
		output       = flag.String("output", "table", "Output format: table, json or both")
		prologExport = flag.String("prolog-export", "", "Path to export Prolog facts")
		save         = flag.Bool("save", false, "Append the result to the results file")
		configPath   = flag.String("config", "config.yaml", "Path to config file")
	)
	flag.Parse()

	if *handle == "" || *ticker == "" {
		fmt.Fprintln(os.Stderr, "usage: analyzer -handle <handle> -ticker <ticker> [-days N] [-output table|json|both]")
		os.Exit(2)
	}

	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	ctx := context.Background()
	defer func() { _ = trace.Shutdown(ctx) }()

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		// A missing default config file means a dry run against mocks.
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = store.Default()
	}

	result, err := runAnalysis(ctx, cfg, *handle, *ticker, *days)
	if err != nil {
		logger.ErrorWithErr(ctx, "Analysis run failed", err, "handle", *handle, "ticker", *ticker)
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}

	switch *output {
	case "json":
		printJSON(result)
	case "both":
		printResults(result)
		printJSON(result)
	default:
		printResults(result)
	}

	exportPath := *prologExport
	if exportPath == "" {
		exportPath = cfg.Output.PrologExport
	}
	if exportPath != "" {
		if err := prolog.Export(result, exportPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to export Prolog facts: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported Prolog facts to %s\n", exportPath)
	}

	if *save {
		st := storage.NewStore(cfg.Output.ResultsFile)
		if err := st.Append(result); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save results: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Results saved to %s\n", cfg.Output.ResultsFile)
	}
}
