// Package areafile imports Merc, Rom and Smaug area files as zones.
package areafile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/mudarea/internal/area"
	"github.com/cory-johannsen/mudarea/internal/charset"
	"github.com/cory-johannsen/mudarea/internal/importer"
)

var _ importer.Source = (*Source)(nil)

// Options configures a Source.
type Options struct {
	// Dialect is the area file format of every file in the directory.
	Dialect area.Dialect
	// Encoding names the character set the files were written in.
	Encoding string
	// Pattern selects files within the source directory, e.g. "*.are".
	Pattern string
	// Workers bounds the number of files parsed concurrently.
	Workers int
	// StartRoom overrides the start room vnum of any area that defines it.
	StartRoom int
}

// Source implements importer.Source for a flat directory of area files:
//
//	sourceDir/
//	  midgaard.are
//	  newthalos.are
//	  ...
type Source struct {
	opts   Options
	logger *zap.Logger
}

// NewSource constructs a Source. A nil logger discards output.
//
// Precondition: opts.Encoding must be accepted by charset.Lookup.
func NewSource(opts Options, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Encoding == "" {
		opts.Encoding = "latin1"
	}
	if opts.Pattern == "" {
		opts.Pattern = "*.are"
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Source{opts: opts, logger: logger}
}

// Load parses every matching file under sourceDir and returns one ZoneData
// per area that has rooms. Exits into rooms defined by a sibling file are
// kept as external exits; other exits leaving an area are dropped with a
// warning.
//
// Precondition: sourceDir must contain at least one file matching the pattern.
// Postcondition: returns at least one ZoneData or a non-nil error.
func (s *Source) Load(ctx context.Context, sourceDir string) ([]*importer.ZoneData, error) {
	if _, err := os.Stat(sourceDir); err != nil {
		return nil, fmt.Errorf("source directory not accessible: %w", err)
	}
	paths, err := filepath.Glob(filepath.Join(sourceDir, s.opts.Pattern))
	if err != nil {
		return nil, fmt.Errorf("matching %q: %w", s.opts.Pattern, err)
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("no area files matching %q in %s", s.opts.Pattern, sourceDir)
	}

	areas := make([]*area.Area, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, err := s.parseFile(path)
			if err != nil {
				return err
			}
			areas[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	idx := IndexRooms(areas)
	var results []*importer.ZoneData
	for _, a := range areas {
		zd, warnings := ConvertArea(a, idx, s.opts.StartRoom)
		for _, w := range warnings {
			s.logger.Warn(w, zap.String("source", a.Source))
		}
		if zd != nil {
			results = append(results, zd)
		}
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no rooms found in area files under %s", sourceDir)
	}
	return results, nil
}

func (s *Source) parseFile(path string) (*area.Area, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading area file %s: %w", path, err)
	}
	data, err := charset.Decode(s.opts.Encoding, raw)
	if err != nil {
		return nil, fmt.Errorf("decoding area file %s: %w", path, err)
	}
	a, err := area.Parse(data, s.opts.Dialect,
		area.WithSource(path),
		area.WithLogger(s.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing area file %s: %w", path, err)
	}
	return a, nil
}
