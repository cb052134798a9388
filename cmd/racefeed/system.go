package main

import (
	"flag"
	"fmt"
	"os"

	"racefeed/config"
	"racefeed/store"
)

func handleInit(settings config.Settings, args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("force", false, "Force reinitialization even if files already exist")
	fs.Parse(args)

	fmt.Println("Initializing racefeed storage...")
	fmt.Println()

	initSucceeded := true

	created, err := config.WriteDefaultConfigFile(*force)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ Failed to create config file: %v\n", err)
		initSucceeded = false
	} else {
		configPath, _ := config.ConfigFilePath()
		if created {
			fmt.Printf("  ✓ Config file: %s\n", configPath)
		} else {
			fmt.Printf("  Config file: %s (already exists)\n", configPath)
		}
	}

	if err := os.MkdirAll(settings.OutputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ Failed to create output directory: %v\n", err)
		initSucceeded = false
	} else {
		fmt.Printf("  ✓ Output directory: %s\n", settings.OutputDir)
	}

	recordStore, err := store.NewStore(settings.DSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ Failed to initialize record store: %v\n", err)
		initSucceeded = false
	} else {
		recordStore.Close()
		fmt.Printf("  ✓ Record store: %s\n", settings.DSN)
	}

	fmt.Println()

	if !initSucceeded {
		fmt.Println("✗ Initialization failed")
		os.Exit(1)
	}
	fmt.Println("✓ Storage initialized successfully")
	fmt.Println()
	fmt.Println("You can now scrape results with 'racefeed scrape -from YYYY-MM-DD'")
}
