// Package main provides import-content, which converts a directory of area
// files into zone YAML.
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
	"github.com/cory-johannsen/mudarea/internal/importer"
	"github.com/cory-johannsen/mudarea/internal/importer/areafile"
	"github.com/cory-johannsen/mudarea/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (optional)")
	sourceDir := flag.String("source", "", "path to area file directory")
	outputDir := flag.String("output", "", "path to output zone directory")
	dialect := flag.String("dialect", "", "area file dialect: merc, rom or smaug (overrides config)")
	startRoom := flag.Int("start-room", 0, "vnum of the start room for areas that contain it")
	flag.Parse()

	if *sourceDir == "" || *outputDir == "" {
		fmt.Fprintln(os.Stderr, "usage: import-content -source <dir> -output <dir> [-dialect <d>] [-start-room <vnum>]")
		os.Exit(1)
	}

	v := config.NewViper()
	if *configPath != "" {
		v.SetConfigFile(*configPath)
		if err := v.ReadInConfig(); err != nil {
			log.Fatalf("reading config: %v", err)
		}
	}
	if *dialect != "" {
		v.Set("import.dialect", *dialect)
	}
	if *startRoom != 0 {
		v.Set("import.start_room", *startRoom)
	}
	cfg, err := config.LoadFromViper(v)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	baseLogger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer baseLogger.Sync()
	logger, _ := observability.ForRun(baseLogger, "import-content")

	d, err := area.ParseDialect(cfg.Import.Dialect)
	if err != nil {
		logger.Fatal("invalid dialect", zap.Error(err))
	}
	src := areafile.NewSource(areafile.Options{
		Dialect:   d,
		Encoding:  cfg.Import.Encoding,
		Pattern:   cfg.Import.Pattern,
		Workers:   cfg.Import.Workers,
		StartRoom: cfg.Import.StartRoom,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	if err := importer.New(src, logger).Run(ctx, *sourceDir, *outputDir); err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}
	fmt.Printf("import complete in %s\n", time.Since(start).Round(time.Millisecond))
}
