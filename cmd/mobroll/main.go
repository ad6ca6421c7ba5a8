// Package main provides mobroll, which rolls the hit, mana and damage dice of
// every mobile in an area file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/cory-johannsen/mudarea/internal/area"
	"github.com/cory-johannsen/mudarea/internal/charset"
	"github.com/cory-johannsen/mudarea/internal/config"
	"github.com/cory-johannsen/mudarea/internal/game/dice"
	"github.com/cory-johannsen/mudarea/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (optional)")
	dialectName := flag.String("dialect", "", "area file dialect (overrides config)")
	seed := flag.Uint64("seed", 0, "seed for reproducible rolls (0 = crypto/rand)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: mobroll [-dialect <d>] [-seed <n>] <file.are>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	v := config.NewViper()
	if *configPath != "" {
		v.SetConfigFile(*configPath)
		if err := v.ReadInConfig(); err != nil {
			log.Fatalf("reading config: %v", err)
		}
	}
	if *dialectName != "" {
		v.Set("import.dialect", *dialectName)
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
	logger, _ := observability.ForRun(baseLogger, "mobroll")

	d, err := area.ParseDialect(cfg.Import.Dialect)
	if err != nil {
		logger.Fatal("invalid dialect", zap.Error(err))
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("reading area file", zap.Error(err))
	}
	data, err := charset.Decode(cfg.Import.Encoding, raw)
	if err != nil {
		logger.Fatal("decoding area file", zap.Error(err))
	}
	a, err := area.Parse(data, d, area.WithSource(path), area.WithLogger(logger))
	if err != nil {
		logger.Fatal("parsing area file", zap.Error(err))
	}

	src := dice.NewCryptoSource()
	if *seed != 0 {
		src = dice.NewSeededSource(*seed)
	}
	roller := dice.NewLoggedRoller(src, logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VNUM\tNAME\tHP\tMANA\tDAMAGE")
	for vnum, mob := range a.Mobs.All() {
		stats, err := roller.RollMob(mob)
		if err != nil {
			logger.Warn("skipping mobile", zap.Int("vnum", vnum), zap.Error(err))
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\n", stats.Vnum, mob.Base().Name, stats.HitPoints, stats.Mana, stats.Damage)
	}
	w.Flush()
}
