package convert_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/mudarea/internal/area"
	"github.com/cory-johannsen/mudarea/internal/convert"
	"github.com/cory-johannsen/mudarea/internal/export"
	"github.com/cory-johannsen/mudarea/internal/storage/postgres"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(key []byte) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[string(key)]
	return v, ok, nil
}

func (m *memCache) Put(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[string(key)] = value
	return nil
}

type memCatalog struct {
	mu    sync.Mutex
	areas map[string]postgres.AreaRecord
	saves int
}

func newMemCatalog() *memCatalog { return &memCatalog{areas: map[string]postgres.AreaRecord{}} }

func (m *memCatalog) Save(_ context.Context, rec postgres.AreaRecord, _ []postgres.RoomRow) (postgres.AreaRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.areas[rec.Source] = rec
	return rec, nil
}

func (m *memCatalog) GetBySource(_ context.Context, source string) (postgres.AreaRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.areas[source]
	if !ok {
		return postgres.AreaRecord{}, postgres.ErrAreaNotFound
	}
	return rec, nil
}

func fixture(name string) string {
	return filepath.Join("..", "area", "testdata", name)
}

func TestConvert_WritesJSON(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	out := t.TempDir()
	conv := convert.New(convert.Options{Dialect: area.Rom, OutputDir: out, Workers: 2}, nil, nil, zap.New(core))

	results, err := conv.Convert(context.Background(), []string{fixture("midgaard.rom.are")})
	require.NoError(t, err)
	require.Len(t, results, 1)
	res := results[0]
	assert.Equal(t, filepath.Join(out, "midgaard.rom.json"), res.Output)
	assert.Equal(t, 2, res.Rooms)
	assert.Equal(t, 2, res.Mobs)
	assert.Equal(t, 4, res.Objects)
	assert.False(t, res.Cached)
	assert.False(t, res.Stored)

	data, err := os.ReadFile(fixture("midgaard.rom.are"))
	require.NoError(t, err)
	a, err := area.Parse(data, area.Rom, area.WithSource(fixture("midgaard.rom.are")))
	require.NoError(t, err)
	want, err := export.Marshal(a)
	require.NoError(t, err)
	got, err := os.ReadFile(res.Output)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	converted := logs.FilterMessage("converted").All()
	require.Len(t, converted, 1)
	assert.Equal(t, int64(2), converted[0].ContextMap()["rooms"])
}

func TestConvert_UsesCache(t *testing.T) {
	cache := newMemCache()
	out := t.TempDir()
	conv := convert.New(convert.Options{Dialect: area.Merc, OutputDir: out}, cache, nil, nil)
	paths := []string{fixture("midgaard.merc.are")}

	first, err := conv.Convert(context.Background(), paths)
	require.NoError(t, err)
	assert.False(t, first[0].Cached)
	assert.Len(t, cache.data, 1)
	written, err := os.ReadFile(first[0].Output)
	require.NoError(t, err)
	require.NoError(t, os.Remove(first[0].Output))

	second, err := conv.Convert(context.Background(), paths)
	require.NoError(t, err)
	assert.True(t, second[0].Cached)
	again, err := os.ReadFile(second[0].Output)
	require.NoError(t, err)
	assert.Equal(t, written, again)
}

func TestConvert_CacheDependsOnDialect(t *testing.T) {
	cache := newMemCache()
	paths := []string{fixture("gate.smaug.are")}

	_, err := convert.New(convert.Options{Dialect: area.Smaug, OutputDir: t.TempDir()}, cache, nil, nil).
		Convert(context.Background(), paths)
	require.NoError(t, err)

	_, err = convert.New(convert.Options{Dialect: area.Rom, OutputDir: t.TempDir()}, cache, nil, nil).
		Convert(context.Background(), paths)
	require.Error(t, err, "a Smaug room does not parse as Rom, so the Smaug entry must not be reused")
}

func TestConvert_CacheDependsOnEncoding(t *testing.T) {
	data, err := os.ReadFile(fixture("midgaard.rom.are"))
	require.NoError(t, err)
	src := filepath.Join(t.TempDir(), "temple.are")
	require.NoError(t, os.WriteFile(src, bytes.Replace(data, []byte("The Temple~"), []byte("Caf\x82 Temple~"), 1), 0644))
	cache := newMemCache()

	first, err := convert.New(convert.Options{Dialect: area.Rom, Encoding: "latin1", OutputDir: t.TempDir()}, cache, nil, nil).
		Convert(context.Background(), []string{src})
	require.NoError(t, err)
	assert.False(t, first[0].Cached)

	second, err := convert.New(convert.Options{Dialect: area.Rom, Encoding: "cp437", OutputDir: t.TempDir()}, cache, nil, nil).
		Convert(context.Background(), []string{src})
	require.NoError(t, err)
	assert.False(t, second[0].Cached)
	got, err := os.ReadFile(second[0].Output)
	require.NoError(t, err)
	assert.Contains(t, string(got), `"name": "Café Temple"`)
	assert.Len(t, cache.data, 2)
}

func TestConvert_StoresInCatalog(t *testing.T) {
	cache, catalog := newMemCache(), newMemCatalog()
	conv := convert.New(convert.Options{Dialect: area.Rom, OutputDir: t.TempDir()}, cache, catalog, nil)
	paths := []string{fixture("midgaard.rom.are")}

	first, err := conv.Convert(context.Background(), paths)
	require.NoError(t, err)
	assert.True(t, first[0].Stored)
	require.Equal(t, 1, catalog.saves)
	rec := catalog.areas[fixture("midgaard.rom.are")]
	assert.Equal(t, "rom", rec.Dialect)
	assert.Equal(t, 2, rec.RoomCount)

	second, err := conv.Convert(context.Background(), paths)
	require.NoError(t, err)
	assert.True(t, second[0].Cached, "catalog already current")
	assert.Equal(t, 1, catalog.saves)

	fresh := newMemCatalog()
	third, err := convert.New(convert.Options{Dialect: area.Rom, OutputDir: t.TempDir()}, cache, fresh, nil).
		Convert(context.Background(), paths)
	require.NoError(t, err)
	assert.False(t, third[0].Cached, "a cache hit is not enough when the catalog lacks the area")
	assert.Equal(t, 1, fresh.saves)
}

func TestConvert_ParseError(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.are")
	require.NoError(t, os.WriteFile(bad, []byte("#ROOMS\n#1\nThe Void~\n"), 0644))

	_, err := convert.New(convert.Options{Dialect: area.Rom, OutputDir: t.TempDir()}, nil, nil, nil).
		Convert(context.Background(), []string{bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
	var perr *area.ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestConvert_DuplicateOutputNames(t *testing.T) {
	_, err := convert.New(convert.Options{Dialect: area.Rom, OutputDir: t.TempDir()}, nil, nil, nil).
		Convert(context.Background(), []string{"a/midgaard.are", "b/midgaard.are"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "midgaard.json")
}
