package main

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/trade-extract/internal/extract"
	"github.com/zombor/trade-extract/internal/scanning"
	"github.com/zombor/trade-extract/internal/statement"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Check for version flag before parsing other flags
	for _, arg := range args {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			return 0
		}
	}

	fs := ff.NewFlagSet("trade-extract")
	var (
		inputPath     = fs.StringLong("input", "pdfs", "Directory of settlement documents (.pdf, or extracted .txt)")
		workPath      = fs.StringLong("work", "txt-dump/in", "Directory for normalized document text")
		outputPath    = fs.StringLong("output", "csv_dump", "Directory for purchase tables")
		format        = fs.StringLong("format", statement.FormatCSV, "Output format: 'csv' or 'xlsx'")
		profilePath   = fs.StringLong("profile", "", "YAML extraction profile (boilerplate, cutoff, dispatch_marker)")
		ledgerPath    = fs.StringLong("ledger", "trade-extract.db", "Processing ledger file path")
		skipProcessed = fs.BoolLong("skip-processed", "Skip documents whose content was already processed")
		showHistory   = fs.BoolLong("history", "Print the processing ledger and exit")
		logLevel      = fs.StringLong("log-level", "info", "Log level: debug, info, warn or error")
		showVersion   = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix("TRADE_EXTRACT"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		return 0
	}

	slog.SetDefault(newLogger(os.Stderr, *logLevel))

	profile, err := extract.LoadProfile(*profilePath)
	if err != nil {
		slog.Error("Failed to load profile", "path", *profilePath, "error", err)
		return 1
	}

	db, err := statement.NewBoltDB(*ledgerPath)
	if err != nil {
		slog.Error("Failed to open ledger", "path", *ledgerPath, "error", err)
		return 1
	}
	defer db.Close()

	if *showHistory {
		docs, err := db.ListDocuments()
		if err != nil {
			slog.Error("Failed to read ledger", "error", err)
			return 1
		}
		printHistory(os.Stdout, docs)
		return 0
	}

	writer, err := statement.NewWriter(*format)
	if err != nil {
		slog.Error("Invalid output format", "format", *format, "valid", "csv or xlsx")
		return 1
	}

	input, err := statement.OpenDocumentDir(*inputPath)
	if err != nil {
		slog.Error("Failed to open input directory", "path", *inputPath, "error", err)
		return 1
	}
	work, err := statement.OpenDocumentDir(*workPath)
	if err != nil {
		slog.Error("Failed to open working directory", "path", *workPath, "error", err)
		return 1
	}
	output, err := statement.OpenDocumentDir(*outputPath)
	if err != nil {
		slog.Error("Failed to open output directory", "path", *outputPath, "error", err)
		return 1
	}

	scanner := scanning.NewFitz()
	defer scanner.Close()

	service := statement.NewService(db, scanner, work, output, writer, profile)
	service.SkipProcessed(*skipProcessed)

	slog.Info("Processing documents", "input", *inputPath, "output", *outputPath, "format", *format)
	summary, err := service.ProcessAll(input)
	slog.Info("Done",
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"rows", summary.Rows,
	)
	if err != nil {
		return 1
	}
	return 0
}

// newLogger builds a text logger for the named level, falling back to info
func newLogger(w io.Writer, levelName string) *slog.Logger {
	var level slog.Level
	invalid := false
	switch strings.ToLower(levelName) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
		invalid = true
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	if invalid {
		logger.Warn("Invalid log level, defaulting to info", "level", levelName)
	}
	return logger
}

func printHistory(w io.Writer, docs []*statement.Document) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROCESSED\tDOCUMENT\tLAYOUT\tROWS\tSTATUS\tOUTPUT\tERROR")
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			d.ProcessedAt.Format(time.RFC3339), d.Identifier, d.Layout, d.Rows, d.Status, d.OutputFile, d.Error)
	}
	tw.Flush()
}
