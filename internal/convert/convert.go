// Package convert turns area files into JSON documents, optionally caching
// the output and recording it in the area catalog.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/mudarea/internal/area"
	"github.com/cory-johannsen/mudarea/internal/charset"
	"github.com/cory-johannsen/mudarea/internal/export"
	"github.com/cory-johannsen/mudarea/internal/game/dice"
	"github.com/cory-johannsen/mudarea/internal/storage/boltcache"
	"github.com/cory-johannsen/mudarea/internal/storage/postgres"
)

// Cache stores converted documents by content key.
type Cache interface {
	Get(key []byte) ([]byte, bool, error)
	Put(key, value []byte) error
}

// Catalog records converted areas.
type Catalog interface {
	Save(ctx context.Context, rec postgres.AreaRecord, rooms []postgres.RoomRow) (postgres.AreaRecord, error)
	GetBySource(ctx context.Context, source string) (postgres.AreaRecord, error)
}

// Options configures a Converter.
type Options struct {
	Dialect   area.Dialect
	Encoding  string
	OutputDir string
	Workers   int
}

// Result describes the conversion of one file.
type Result struct {
	Source  string
	Output  string
	Cached  bool
	Stored  bool
	Rooms   int
	Mobs    int
	Objects int
}

// Converter runs conversions. Cache and Catalog are optional.
type Converter struct {
	opts    Options
	cache   Cache
	catalog Catalog
	logger  *zap.Logger
}

// New constructs a Converter. cache and catalog may be nil; a nil logger
// discards output.
//
// Precondition: opts.OutputDir must name a directory that exists or can be created.
func New(opts Options, cache Cache, catalog Catalog, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Encoding == "" {
		opts.Encoding = "latin1"
	}
	return &Converter{opts: opts, cache: cache, catalog: catalog, logger: logger}
}

// Convert converts every path concurrently and returns one Result per path,
// in input order. The first failure cancels the remaining work.
//
// Postcondition: on success len(results) == len(paths).
func (c *Converter) Convert(ctx context.Context, paths []string) ([]Result, error) {
	outputs := make(map[string]string, len(paths))
	for _, path := range paths {
		name := export.FileName(path)
		if prev, dup := outputs[name]; dup {
			return nil, fmt.Errorf("%s and %s would both be written to %s", prev, path, name)
		}
		outputs[name] = path
	}
	if err := os.MkdirAll(c.opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", c.opts.OutputDir, err)
	}

	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := c.convertFile(ctx, path)
			if err != nil {
				return fmt.Errorf("converting %s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Converter) convertFile(ctx context.Context, path string) (Result, error) {
	log := c.logger.With(zap.String("source", path))
	res := Result{Source: path, Output: filepath.Join(c.opts.OutputDir, export.FileName(path))}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("reading: %w", err)
	}
	key := boltcache.Key(c.opts.Dialect, c.opts.Encoding, raw)

	if doc, ok := c.cached(key, log); ok {
		current, err := c.catalogCurrent(ctx, path, key)
		if err != nil {
			return Result{}, err
		}
		if current {
			if _, err := export.WriteDocument(c.opts.OutputDir, path, doc); err != nil {
				return Result{}, err
			}
			res.Cached = true
			log.Info("converted from cache", zap.String("output", res.Output))
			return res, nil
		}
	}

	data, err := charset.Decode(c.opts.Encoding, raw)
	if err != nil {
		return Result{}, err
	}
	a, err := area.Parse(data, c.opts.Dialect, area.WithSource(path), area.WithLogger(c.logger))
	if err != nil {
		return Result{}, err
	}
	checkMobDice(a, log)

	doc, err := export.Marshal(a)
	if err != nil {
		return Result{}, err
	}
	if _, err := export.WriteDocument(c.opts.OutputDir, path, doc); err != nil {
		return Result{}, err
	}
	res.Rooms, res.Mobs, res.Objects = a.Rooms.Len(), a.Mobs.Len(), a.Objects.Len()

	if c.cache != nil {
		if err := c.cache.Put(key, doc); err != nil {
			log.Warn("caching converted area", zap.Error(err))
		}
	}
	if c.catalog != nil {
		saved, err := c.catalog.Save(ctx, postgres.NewAreaRecord(a, doc, key), postgres.RoomRows(a))
		if err != nil {
			return Result{}, fmt.Errorf("storing in catalog: %w", err)
		}
		res.Stored = true
		log.Debug("stored in catalog", zap.Stringer("area_id", saved.ID))
	}

	log.Info("converted",
		zap.String("output", res.Output),
		zap.Int("rooms", res.Rooms),
		zap.Int("mobs", res.Mobs),
		zap.Int("objects", res.Objects),
	)
	return res, nil
}

func (c *Converter) cached(key []byte, log *zap.Logger) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	doc, ok, err := c.cache.Get(key)
	if err != nil {
		log.Warn("reading conversion cache", zap.Error(err))
		return nil, false
	}
	return doc, ok
}

// catalogCurrent reports whether a cached document can be used as is: true
// when no catalog is configured or the catalog already holds this content.
func (c *Converter) catalogCurrent(ctx context.Context, source string, key []byte) (bool, error) {
	if c.catalog == nil {
		return true, nil
	}
	rec, err := c.catalog.GetBySource(ctx, source)
	if errors.Is(err, postgres.ErrAreaNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking catalog: %w", err)
	}
	return bytes.Equal(rec.ContentHash, key), nil
}

// checkMobDice warns about mobiles whose dice cannot be rolled and logs the
// expected hit points of the rest.
func checkMobDice(a *area.Area, log *zap.Logger) {
	for vnum, mob := range a.Mobs.All() {
		var hit area.Dice
		switch m := mob.(type) {
		case *area.RomMob:
			hit = m.Hit
		case *area.MercMob:
			hit = m.Hit
		}
		if err := dice.Validate(hit); err != nil {
			log.Warn("mobile has unrollable hit dice", zap.Int("vnum", vnum), zap.Error(err))
			continue
		}
		log.Debug("mobile hit points", zap.Int("vnum", vnum), zap.Float64("average", dice.Average(hit)))
	}
}
