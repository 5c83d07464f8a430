// Package main provides the tripmap command that geocodes trip stops and
// renders an animated HTML map.
package main

import (
	"flag"
	"fmt"
	"os"

	"triptools/internal/cleaner"
	"triptools/internal/config"
	"triptools/internal/geocode"
	"triptools/internal/logger"
	"triptools/internal/mapbuild"
	"triptools/internal/models"
	"triptools/internal/report"
	"triptools/internal/route"
	"triptools/internal/tripcsv"

	"github.com/joho/godotenv"
)

// apiKeyEnv names the optional routing-provider API key. Without it the
// free OSRM instance is used.
const apiKeyEnv = "ORS_API_KEY"

func main() {
	configPath := flag.String("config", "", "Path to optional YAML config file")
	noAnimate := flag.Bool("no-animate", false, "Skip the animation script, produce a static map")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: tripmap [-config file] [-no-animate] <input_csv> [output_html]")
		fmt.Println("\nCSV file should have columns: date, place (optional: type)")
		flag.PrintDefaults()
		os.Exit(1)
	}

	inputPath := flag.Arg(0)

	outputPath := flag.Arg(1)
	if outputPath == "" {
		outputPath = "trip_map.html"
	}

	// .env is optional; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level)

	log.Info("🚀 Starting trip map build")
	log.Info(fmt.Sprintf("📍 Source: %s", inputPath))

	// Phase 1: load and normalize the CSV.
	table, err := tripcsv.Load(inputPath)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Failed to read CSV: %v", err))
		os.Exit(1)
	}

	result, err := cleaner.NewProcessor().Clean(table)
	if err != nil {
		log.Error(fmt.Sprintf("❌ %v", err))
		os.Exit(1)
	}

	for _, notice := range result.Notices {
		log.Warn("⚠️  dropping " + notice.String())
	}

	rows := result.Rows

	log.Info(fmt.Sprintf("Processing %d locations...", len(rows)))

	// Phase 2: geocode each place; failures drop the row, never the run.
	geocoder := geocode.NewNominatim(&cfg.Geocoder)
	valid := resolveCoordinates(rows, geocoder, log)

	if len(valid) == 0 {
		log.Error("❌ No valid locations found")
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ %d locations successfully geocoded", len(valid)))

	// Phase 3: resolve car legs and assemble segments.
	apiKey := os.Getenv(apiKeyEnv)
	resolver := route.NewResolver(&cfg.Routing, apiKey, log)

	log.Info(fmt.Sprintf("🚗 Routing provider: %s", resolver.Provider()))

	segments := mapbuild.BuildSegments(valid, resolver)

	// Phase 4: render and save.
	html, err := mapbuild.Render(valid, segments, cfg.Map.Zoom)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Failed to render map: %v", err))
		os.Exit(1)
	}

	if !*noAnimate {
		animated, injErr := mapbuild.InjectAnimation(html, segments, mapbuild.MapVar)
		if injErr != nil {
			log.Warn(fmt.Sprintf("⚠️  Animation disabled: %v", injErr))
		} else {
			html = animated
		}
	}

	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		log.Error(fmt.Sprintf("❌ Failed to write map: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Map saved to: %s", outputPath))

	printSummary(len(rows), valid, segments, resolver, outputPath)
}

// resolveCoordinates geocodes every row in order, keeping only the ones
// the provider could resolve.
func resolveCoordinates(rows []models.Row, geocoder geocode.Geocoder, log *logger.Logger) []models.Row {
	var valid []models.Row

	for i := range rows {
		row := rows[i]

		fmt.Printf("[%d/%d] Geocoding: %s... ", i+1, len(rows), row.Place)

		loc, err := geocoder.Geocode(row.Place)

		switch {
		case err != nil:
			fmt.Println("✗ error")
			log.Warn("geocoding failed", "place", row.Place, "error", err)
		case loc == nil:
			fmt.Println("✗ not found")
		default:
			fmt.Printf("✓ (%.4f, %.4f)\n", loc.Coord.Lat, loc.Coord.Lng)

			row.Coord = &loc.Coord
			row.Address = loc.Address
			valid = append(valid, row)
		}
	}

	return valid
}

func printSummary(total int, valid []models.Row, segments []models.Segment, resolver *route.Resolver, outputPath string) {
	carLegs := 0

	for _, seg := range segments {
		if seg.Mode == models.ModeCar {
			carLegs++
		}
	}

	var summary report.Summary

	summary.AddCount("Locations read:", total)
	summary.AddCount("Geocoded:", len(valid))
	summary.AddCount("Failed:", total-len(valid))
	summary.AddCount("Segments:", len(segments))
	summary.AddCount("Car legs:", carLegs)
	summary.AddCount("Route fallbacks:", resolver.Fallbacks())
	summary.Add("Provider:", resolver.Provider())
	summary.Add("Output:", outputPath)

	summary.Print("📊 Trip Map Summary")
}
