package main

import (
	"flag"
	"fmt"
	"os"

	"racefeed/config"
	"racefeed/fieldsize"
	"racefeed/store"
)

func handleBackfill(settings config.Settings, args []string) {
	fs := flag.NewFlagSet("backfill", flag.ExitOnError)
	file := fs.String("file", settings.FieldSizeFile, "Bulk field-size lookup file")
	fs.Parse(args)

	recordStore, err := store.NewStore(settings.DSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open record store: %v\n", err)
		os.Exit(1)
	}
	defer recordStore.Close()

	index, err := fieldsize.NewIndex(*file, recordStore)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load field size index: %v\n", err)
		os.Exit(1)
	}

	updated, err := fieldsize.Backfill(index, recordStore)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: backfill failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Backfilled field size on %d rows\n", updated)
}
