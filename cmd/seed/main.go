// Command main resets the Startup Connect store to a seed dataset, or exports
// the current state as a YAML dataset.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"startupconnect/internal/config"
	"startupconnect/internal/seed"
	"startupconnect/internal/storage"
	"startupconnect/internal/store"
)

func main() {
	// Parse command line flags
	file := flag.String("file", "", "Load the dataset from a YAML file instead of the built-in sample")
	export := flag.String("export", "", "Write the current state to this YAML file and exit")
	founders := flag.Int("founders", 0, "Number of extra fake founders to add")
	vcs := flag.Int("vcs", 0, "Number of extra fake investors to add")
	fakerSeed := flag.Int64("seed", 42, "Random seed for generated profiles")
	flag.Parse()

	log.Println("🌱 Startup Connect Seeder")
	log.Println("=========================")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageDriver, err)
	}

	st, err := store.Open(ctx, backend,
		store.WithFallbackMode(store.FallbackMode(cfg.SeedFallback)),
		store.WithKeyPrefix(cfg.StorageKeyPrefix),
	)
	if err != nil {
		log.Fatalf("Failed to load store: %v", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("error closing store: %v", err)
		}
	}()

	if *export != "" {
		snap := st.Snapshot()
		if err := seed.WriteFile(*export, snap.Dataset); err != nil {
			log.Fatalf("❌ Export failed: %v", err)
		}
		log.Printf("Exported %d users, %d startups and %d ideas to %s",
			len(snap.Users), len(snap.Startups), len(snap.Ideas), *export)
		return
	}

	ds := seed.Default(time.Now())
	if *file != "" {
		ds, err = seed.LoadFile(*file)
		if err != nil {
			log.Fatalf("❌ Dataset load failed: %v", err)
		}
		log.Printf("Loaded dataset from %s", *file)
	}

	if *founders > 0 || *vcs > 0 {
		seed.NewFactory(*fakerSeed).Extend(&ds, *founders, *vcs)
		log.Printf("Generated %d founders and %d investors (seed %d)", *founders, *vcs, *fakerSeed)
	}

	if err := st.Reset(ctx, ds); err != nil {
		log.Fatalf("❌ Reset failed: %v", err)
	}

	log.Printf("✨ All done! Store now holds %d users, %d startups and %d ideas.",
		len(ds.Users), len(ds.Startups), len(ds.Ideas))
	log.Println("📧 Built-in sample users have the password: demo123")
}
