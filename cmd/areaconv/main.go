// Package main provides areaconv, which converts Merc, Rom and Smaug area
// files into JSON documents.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/mudarea/internal/area"
	"github.com/cory-johannsen/mudarea/internal/config"
	"github.com/cory-johannsen/mudarea/internal/convert"
	"github.com/cory-johannsen/mudarea/internal/observability"
	"github.com/cory-johannsen/mudarea/internal/storage/boltcache"
	"github.com/cory-johannsen/mudarea/internal/storage/postgres"
)

// flagKeys maps command-line flags onto configuration keys. Only flags set
// explicitly override the file and environment.
var flagKeys = map[string]string{
	"dialect":  "import.dialect",
	"encoding": "import.encoding",
	"pattern":  "import.pattern",
	"workers":  "import.workers",
	"cache":    "import.cache_path",
	"store":    "database.enabled",
}

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (optional)")
	outputDir := flag.String("output", ".", "directory JSON documents are written to")
	flag.String("dialect", "rom", "area file dialect: merc, rom or smaug")
	flag.String("encoding", "latin1", "input byte encoding")
	flag.String("pattern", "*.are", "file pattern used for directory arguments")
	flag.Int("workers", 4, "number of files converted concurrently")
	flag.String("cache", "", "bbolt conversion cache file (empty = no cache)")
	flag.Bool("store", false, "record converted areas in the PostgreSQL catalog")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: areaconv [flags] <file.are|dir>...")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	v := config.NewViper()
	if *configPath != "" {
		v.SetConfigFile(*configPath)
		if err := v.ReadInConfig(); err != nil {
			log.Fatalf("reading config: %v", err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			v.Set(key, f.Value.String())
		}
	})
	cfg, err := config.LoadFromViper(v)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	baseLogger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer baseLogger.Sync()
	logger, _ := observability.ForRun(baseLogger, "areaconv")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, *outputDir, flag.Args(), logger); err != nil {
		logger.Fatal("conversion failed", zap.Error(err))
	}
	logger.Info("areaconv finished", zap.Duration("elapsed", time.Since(start)))
}

func run(ctx context.Context, cfg config.Config, outputDir string, args []string, logger *zap.Logger) error {
	dialect, err := area.ParseDialect(cfg.Import.Dialect)
	if err != nil {
		return err
	}
	paths, err := convert.ExpandPaths(args, cfg.Import.Pattern)
	if err != nil {
		return err
	}

	var cache convert.Cache
	if cfg.Import.CachePath != "" {
		c, err := boltcache.Open(cfg.Import.CachePath)
		if err != nil {
			return err
		}
		defer c.Close()
		cache = c
		logger.Debug("conversion cache open", zap.String("path", c.Path()))
	}

	var catalog convert.Catalog
	if cfg.Database.Enabled {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connecting to catalog: %w", err)
		}
		defer pool.Close()
		if err := pool.Health(ctx, 5*time.Second); err != nil {
			return err
		}
		catalog = pool.Areas()
	}

	conv := convert.New(convert.Options{
		Dialect:   dialect,
		Encoding:  cfg.Import.Encoding,
		OutputDir: outputDir,
		Workers:   cfg.Import.Workers,
	}, cache, catalog, logger)

	results, err := conv.Convert(ctx, paths)
	if err != nil {
		return err
	}

	var cached, stored int
	for _, r := range results {
		fmt.Println(r.Output)
		if r.Cached {
			cached++
		}
		if r.Stored {
			stored++
		}
	}
	logger.Info("converted areas",
		zap.Int("files", len(results)),
		zap.Int("cached", cached),
		zap.Int("stored", stored),
	)
	return nil
}
