package main

import (
	"fmt"
	"os"

	"racefeed/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Continuing with defaults and environment variables...\n\n")
	}

	subcommand := os.Args[1]

	switch subcommand {
	case "scrape":
		handleScrape(settings, os.Args[2:])
	case "features":
		handleFeatures(settings, os.Args[2:])
	case "backfill":
		handleBackfill(settings, os.Args[2:])
	case "init":
		handleInit(settings, os.Args[2:])
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("racefeed - race result scraper and normalizer")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  racefeed <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  scrape     Scrape race results for a date range")
	fmt.Println("  features   Export derived features for stored records")
	fmt.Println("  backfill   Fill missing field sizes in the record store")
	fmt.Println("  init       Create the config file and record store")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  RACEFEED_DSN              Path to the record store (default: races.db)")
	fmt.Println("  RACEFEED_OUTPUT_DIR       CSV export directory (default: data/races)")
	fmt.Println("  RACEFEED_FIELD_SIZE_FILE  Bulk field-size lookup file")
	fmt.Println("  RACEFEED_BASE_URL         Results site base URL")
	fmt.Println("  RACEFEED_MAX_ATTEMPTS     Fetch attempt ceiling per race")
}
