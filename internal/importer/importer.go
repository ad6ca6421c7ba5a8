package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/mudarea/internal/game/world"
)

// Importer orchestrates content import from a Source to an output directory.
type Importer struct {
	source Source
	logger *zap.Logger
}

// New constructs an Importer backed by the given Source.
//
// Precondition: source must be non-nil. A nil logger discards output.
// Postcondition: returns a non-nil Importer.
func New(source Source, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{source: source, logger: logger}
}

// Run loads zones from sourceDir, validates each zone and the exits between
// them, and writes them as YAML files to outputDir. Each output file is
// named <zone_id>.yaml. Nothing is written unless every zone validates.
//
// Precondition: sourceDir must satisfy the source's layout requirements;
// outputDir must exist or be creatable.
// Postcondition: one zone YAML per zone is written to outputDir, or an error
// is returned.
func (imp *Importer) Run(ctx context.Context, sourceDir, outputDir string) error {
	overall := time.Now()

	t0 := time.Now()
	zones, err := imp.source.Load(ctx, sourceDir)
	if err != nil {
		return fmt.Errorf("loading source: %w", err)
	}
	imp.logger.Info("loaded zones",
		zap.Int("zones", len(zones)),
		zap.Duration("elapsed", time.Since(t0)),
	)

	encoded := make([][]byte, len(zones))
	validated := make([]*world.Zone, len(zones))
	for i, zd := range zones {
		data, err := yaml.Marshal(zd)
		if err != nil {
			return fmt.Errorf("serialising zone %q: %w", zd.Zone.ID, err)
		}
		// Validate output is loadable before writing.
		zone, err := world.LoadZoneFromBytes(data)
		if err != nil {
			return fmt.Errorf("zone %q failed validation: %w", zd.Zone.ID, err)
		}
		imp.warnUnreachable(zone)
		encoded[i] = data
		validated[i] = zone
	}

	atlas, err := world.NewAtlas(validated)
	if err != nil {
		return fmt.Errorf("indexing zones: %w", err)
	}
	if err := atlas.ValidateExits(); err != nil {
		return fmt.Errorf("validating exits: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	for i, zd := range zones {
		if err := ctx.Err(); err != nil {
			return err
		}
		outPath := filepath.Join(outputDir, zd.Zone.ID+".yaml")
		if err := os.WriteFile(outPath, encoded[i], 0644); err != nil {
			return fmt.Errorf("writing zone %q to %s: %w", zd.Zone.ID, outPath, err)
		}
		imp.logger.Info("wrote zone",
			zap.String("path", outPath),
			zap.Int("rooms", len(zd.Zone.Rooms)),
		)
	}

	imp.logger.Info("import complete",
		zap.Int("zones", len(zones)),
		zap.Int("rooms", atlas.RoomCount()),
		zap.Duration("elapsed", time.Since(overall)),
	)
	return nil
}

func (imp *Importer) warnUnreachable(zone *world.Zone) {
	unreachable, err := zone.UnreachableRooms()
	if err != nil {
		imp.logger.Warn("reachability check failed", zap.String("zone", zone.ID), zap.Error(err))
		return
	}
	if len(unreachable) > 0 {
		imp.logger.Warn("rooms unreachable from start room",
			zap.String("zone", zone.ID),
			zap.String("start_room", zone.StartRoom),
			zap.Strings("rooms", unreachable),
		)
	}
}
