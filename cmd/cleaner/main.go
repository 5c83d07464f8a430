// Package main provides the cleaner command that validates and
// normalizes trip CSV files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"triptools/internal/cleaner"
	"triptools/internal/config"
	"triptools/internal/logger"
	"triptools/internal/models"
	"triptools/internal/report"
	"triptools/internal/tripcsv"
)

func main() {
	configPath := flag.String("config", "", "Path to optional YAML config file")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: cleaner [-config file] <input_csv> [output_csv]")
		fmt.Println("\nCleans and validates trip CSV files:")
		fmt.Println("  - Validates date format and sorts by date")
		fmt.Println("  - Ensures proper quoting for place names")
		fmt.Println("  - Normalizes the optional type column")
		fmt.Println("  - Removes invalid rows")
		flag.PrintDefaults()
		os.Exit(1)
	}

	inputPath := flag.Arg(0)

	outputPath := flag.Arg(1)
	if outputPath == "" {
		outputPath = defaultOutputPath(inputPath)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level)

	log.Info(fmt.Sprintf("📂 Reading: %s", inputPath))

	table, err := tripcsv.Load(inputPath)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Failed to read CSV: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("Found %d rows", len(table.Records)))

	processor := cleaner.NewProcessor()

	result, err := processor.Clean(table)
	if err != nil {
		log.Error(fmt.Sprintf("❌ %v", err))
		os.Exit(1)
	}

	for _, notice := range result.Notices {
		log.Warn("⚠️  dropping " + notice.String())
	}

	log.Info(fmt.Sprintf("✅ Kept %d of %d rows, sorted by date", len(result.Rows), result.ReadCount))

	if err := result.Output.Save(outputPath); err != nil {
		log.Error(fmt.Sprintf("❌ Failed to write CSV: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Cleaned CSV written to: %s", outputPath))

	printSummary(result)
}

// defaultOutputPath derives `<stem>_clean<ext>` next to the input file.
func defaultOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(inputPath, ext)

	return stem + "_clean" + ext
}

func printSummary(result *cleaner.Result) {
	var summary report.Summary

	summary.AddCount("Rows read:", result.ReadCount)
	summary.AddCount("Rows kept:", len(result.Rows))
	summary.AddCount("Rows dropped:", len(result.Notices))

	if len(result.Rows) > 0 {
		summary.Add("Date range:", result.DateFrom+" to "+result.DateTo)
	} else {
		summary.Add("Date range:", "(no valid rows)")
	}

	if result.HasType {
		summary.AddCount("Car legs:", result.ByMode[models.ModeCar])
		summary.AddCount("Flight legs:", result.ByMode[models.ModeFlight])
	}

	summary.Print("📊 Cleaning Summary")
}
