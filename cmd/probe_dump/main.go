package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ConserveLee/dialogue-skip/internal/config"
	"github.com/ConserveLee/dialogue-skip/internal/engine/detect"
	"github.com/ConserveLee/dialogue-skip/internal/engine/screen"
)

// probe_dump runs the detector on saved screenshots, e.g. ones taken with the
// Probe Inspector, and prints every probe reading.
func main() {
	configPath := flag.String("config", "", "path to config.toml (default: built-in table)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: probe_dump [-config config.toml] screenshot.png...")
		os.Exit(2)
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFromFile(*configPath); err != nil {
			fmt.Printf("Failed to load config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}

	variants := cfg.DetectVariants()
	rule := cfg.DialogueRule()
	fmt.Printf("Probe region: %v\n", detect.Region(variants, rule))

	failed := false
	for _, path := range flag.Args() {
		img, err := screen.LoadImage(path)
		if err != nil {
			fmt.Printf("Failed to load %s: %v\n", path, err)
			failed = true
			continue
		}

		fmt.Printf("\n=== %s (%dx%d) ===\n", path, img.Bounds().Dx(), img.Bounds().Dy())
		fmt.Println(detect.Observe(img, variants, rule))
		fmt.Print(detect.FormatReadings(detect.Readings(img, variants, rule)))
	}
	if failed {
		os.Exit(1)
	}
}
