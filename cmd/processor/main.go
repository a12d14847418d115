package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tmdblens/internal/config"
	"tmdblens/internal/dataprocessing"
	"tmdblens/internal/exporter"
	"tmdblens/internal/files"
	"tmdblens/internal/infrastructure"
	"tmdblens/internal/validation"
	"tmdblens/pkg/contracts"
	"tmdblens/pkg/contracts/domain"
)

const (
	cleanTableFile  = "movies_clean.csv"
	genreSharesFile = "genre_shares.csv"
	runReportFile   = "run_report.json"
	workbookFile    = "run_summary.xlsx"
)

func main() {
	inPath := flag.String("in", "", "input CSV file or directory (defaults to the configured data directory)")
	outDir := flag.String("out", "", "output directory for cleaned tables and reports (defaults to the configured reports directory)")
	extended := flag.Bool("extended", false, "include per-year and per-genre median breakdowns in the summary")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx, _ := infrastructure.EnsureRunID(context.Background())

	if *inPath == "" {
		*inPath = cfg.Paths.DataDir
	}
	if *outDir == "" {
		*outDir = cfg.Paths.ReportsDir
	}

	logger.InfoContext(ctx, "starting movie metadata processing",
		slog.String("version", contracts.Version),
		slog.String("input", *inPath),
		slog.String("output_dir", *outDir),
		slog.Bool("extended_summary", *extended))

	if err := run(ctx, logger, cfg, *inPath, *outDir, *extended); err != nil {
		logger.ErrorContext(ctx, "processing failed",
			slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, inPath, outDir string, extended bool) error {
	fileValidator := validation.NewFileValidator(logger)
	if err := fileValidator.ValidateOutputDirectory(outDir); err != nil {
		return err
	}

	inputs, err := resolveInputs(logger, fileValidator, inPath)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d CSV files\n", len(inputs))
	if len(inputs) == 0 {
		return fmt.Errorf("no CSV files found at %s", inPath)
	}

	processor := dataprocessing.NewProcessor(logger, dataprocessing.ProcessorConfig{
		Filter: dataprocessing.FilterConfig{
			MinBudgetAdj:   cfg.Pipeline.MinBudgetAdj,
			MinRevenueAdj:  cfg.Pipeline.MinRevenueAdj,
			MaxReleaseYear: cfg.Pipeline.MaxReleaseYear,
		},
	})

	table, stats, err := processAll(ctx, logger, processor, inputs)
	if err != nil {
		return err
	}

	summarizerConfig := dataprocessing.DefaultSummarizerConfig()
	if extended {
		summarizerConfig = dataprocessing.ExtendedSummarizerConfig()
	}
	summarizerConfig.TopCategories = cfg.Pipeline.TopCategories
	summarizer := dataprocessing.NewSummarizer(logger, summarizerConfig)
	summary := summarizer.Summarize(ctx, table)

	report := buildReport(ctx, describeSource(inputs), stats, summary)

	tableExporter := exporter.NewTableExporter(logger)
	if err := tableExporter.ExportTable(filepath.Join(outDir, cleanTableFile), table); err != nil {
		return err
	}

	genreShares := dataprocessing.RankedShares(table, dataprocessing.SelectGenres, cfg.Pipeline.TopCategories)
	if err := tableExporter.ExportCategoryShares(filepath.Join(outDir, genreSharesFile), genreShares); err != nil {
		return err
	}

	reportExporter := exporter.NewReportExporter(logger)
	if err := reportExporter.WriteJSON(filepath.Join(outDir, runReportFile), report); err != nil {
		return err
	}
	if err := reportExporter.WriteWorkbook(filepath.Join(outDir, workbookFile), report); err != nil {
		return err
	}

	logger.InfoContext(ctx, "processing complete",
		slog.Int("files", len(inputs)),
		slog.Int("rows_retained", stats.Retained),
		slog.String("output_dir", outDir))
	fmt.Printf("Processing complete: %d files, %d movies retained\n", len(inputs), stats.Retained)
	return nil
}

// resolveInputs expands inPath into the ordered list of CSV files to process.
// A file path is validated and used as-is; a directory is scanned for CSV
// files sorted by name.
func resolveInputs(logger *slog.Logger, fileValidator *validation.FileValidator, inPath string) ([]string, error) {
	info, err := os.Stat(inPath)
	if err != nil {
		return nil, fmt.Errorf("input path %s: %w", inPath, err)
	}

	if !info.IsDir() {
		if err := fileValidator.ValidateInputFile(inPath, ".csv"); err != nil {
			return nil, err
		}
		return []string{inPath}, nil
	}

	discovery := files.NewDiscovery("")
	found, err := discovery.FindCSVFiles(inPath)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(found))
	for _, f := range found {
		if err := fileValidator.ValidateInputFile(f.Path, ".csv"); err != nil {
			logger.Warn("skipping invalid input file",
				slog.String("path", f.Path),
				slog.String("error", err.Error()))
			continue
		}
		paths = append(paths, f.Path)
	}
	return paths, nil
}

// processAll runs the pipeline over each input file, merges the cleaned
// tables and accumulates the run statistics. Duplicate IDs across files are
// removed the same way as within a file: the first occurrence wins.
func processAll(ctx context.Context, logger *slog.Logger, processor *dataprocessing.Processor, inputs []string) (domain.Table, domain.PipelineStats, error) {
	var combined domain.Table
	var stats domain.PipelineStats

	for i, path := range inputs {
		fmt.Printf("Processing file %d of %d: %s\n", i+1, len(inputs), filepath.Base(path))

		result, err := processor.ProcessFile(ctx, path)
		if err != nil {
			return nil, stats, fmt.Errorf("processing %s: %w", path, err)
		}

		combined = append(combined, result.Table...)
		stats.RowsRead += result.Stats.RowsRead
		stats.ParseErrors += result.Stats.ParseErrors
		stats.ConversionErrors += result.Stats.ConversionErrors
		stats.DuplicatesRemoved += result.Stats.DuplicatesRemoved
		stats.ValidityExcluded += result.Stats.ValidityExcluded
	}

	assembler := dataprocessing.NewAssembler(logger)
	combined, crossFileDuplicates := assembler.Assemble(ctx, combined)
	stats.DuplicatesRemoved += crossFileDuplicates
	stats.Retained = len(combined)

	return combined, stats, nil
}

// buildReport assembles the audit record for this run.
func buildReport(ctx context.Context, source string, stats domain.PipelineStats, summary *domain.TableSummary) *domain.RunReport {
	return &domain.RunReport{
		RunID:       infrastructure.RunID(ctx),
		Source:      source,
		Stats:       stats,
		Summary:     summary,
		GeneratedAt: time.Now().UTC(),
	}
}

// describeSource names the input set in the run report: the single file, or
// a comma-separated list of file names for multi-file runs.
func describeSource(inputs []string) string {
	names := make([]string, len(inputs))
	for i, p := range inputs {
		names[i] = filepath.Base(p)
	}
	return strings.Join(names, ",")
}
