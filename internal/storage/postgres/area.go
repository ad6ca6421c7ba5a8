package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/mudarea/internal/area"
)

// ErrAreaNotFound is returned when no catalog entry matches a lookup.
var ErrAreaNotFound = errors.New("area not found")

// AreaRecord is one catalog entry: an exported area document plus the
// summary columns used for listing.
type AreaRecord struct {
	ID          uuid.UUID
	Source      string
	Dialect     string
	Name        string
	ContentHash []byte
	Document    []byte
	RoomCount   int
	MobCount    int
	ObjectCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoomRow is the per-room index row stored alongside an area.
type RoomRow struct {
	Vnum      int
	Name      string
	Sector    string
	ExitCount int
}

// NewAreaRecord summarises a parsed area for storage.
//
// Precondition: a must be non-nil; document is its exported JSON.
func NewAreaRecord(a *area.Area, document, contentHash []byte) AreaRecord {
	return AreaRecord{
		Source:      a.Source,
		Dialect:     a.Dialect.String(),
		Name:        a.Name(),
		ContentHash: contentHash,
		Document:    document,
		RoomCount:   a.Rooms.Len(),
		MobCount:    a.Mobs.Len(),
		ObjectCount: a.Objects.Len(),
	}
}

// RoomRows returns the room index rows for a, in file order.
func RoomRows(a *area.Area) []RoomRow {
	rows := make([]RoomRow, 0, a.Rooms.Len())
	for vnum, rec := range a.Rooms.All() {
		room := rec.RoomData()
		rows = append(rows, RoomRow{
			Vnum:      vnum,
			Name:      room.Name,
			Sector:    room.SectorType.String(),
			ExitCount: len(room.Exits),
		})
	}
	return rows
}

// AreaRepository provides area catalog persistence operations.
type AreaRepository struct {
	db *pgxpool.Pool
}

// NewAreaRepository creates an AreaRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewAreaRepository(db *pgxpool.Pool) *AreaRepository {
	return &AreaRepository{db: db}
}

const areaColumns = `id, source, dialect, name, content_hash, document,
		       room_count, mob_count, object_count, created_at, updated_at`

func scanArea(row pgx.Row) (AreaRecord, error) {
	var rec AreaRecord
	err := row.Scan(
		&rec.ID, &rec.Source, &rec.Dialect, &rec.Name, &rec.ContentHash, &rec.Document,
		&rec.RoomCount, &rec.MobCount, &rec.ObjectCount, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Save upserts rec by source and replaces its room rows, in one transaction.
//
// Precondition: rec.Source must be non-empty; rec.Document must be valid JSON.
// Postcondition: Returns the stored record with ID and timestamps set. An
// existing entry for the same source keeps its ID and CreatedAt.
func (r *AreaRepository) Save(ctx context.Context, rec AreaRecord, rooms []RoomRow) (AreaRecord, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return AreaRecord{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	saved, err := scanArea(tx.QueryRow(ctx, `
		INSERT INTO areas (id, source, dialect, name, content_hash, document,
		                   room_count, mob_count, object_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (source) DO UPDATE SET
			dialect = EXCLUDED.dialect,
			name = EXCLUDED.name,
			content_hash = EXCLUDED.content_hash,
			document = EXCLUDED.document,
			room_count = EXCLUDED.room_count,
			mob_count = EXCLUDED.mob_count,
			object_count = EXCLUDED.object_count,
			updated_at = NOW()
		RETURNING `+areaColumns,
		uuid.New(), rec.Source, rec.Dialect, rec.Name, rec.ContentHash, rec.Document,
		rec.RoomCount, rec.MobCount, rec.ObjectCount,
	))
	if err != nil {
		return AreaRecord{}, fmt.Errorf("upserting area %q: %w", rec.Source, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM area_rooms WHERE area_id = $1`, saved.ID); err != nil {
		return AreaRecord{}, fmt.Errorf("clearing rooms of %q: %w", rec.Source, err)
	}

	if len(rooms) > 0 {
		batch := &pgx.Batch{}
		for i, room := range rooms {
			batch.Queue(`
				INSERT INTO area_rooms (area_id, vnum, position, name, sector, exit_count)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				saved.ID, room.Vnum, i, room.Name, room.Sector, room.ExitCount,
			)
		}
		br := tx.SendBatch(ctx, batch)
		for _, room := range rooms {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return AreaRecord{}, fmt.Errorf("inserting room %d of %q: %w", room.Vnum, rec.Source, err)
			}
		}
		if err := br.Close(); err != nil {
			return AreaRecord{}, fmt.Errorf("closing room batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return AreaRecord{}, fmt.Errorf("committing area %q: %w", rec.Source, err)
	}
	return saved, nil
}

// GetBySource retrieves the catalog entry for an area file.
//
// Postcondition: Returns the AreaRecord or ErrAreaNotFound.
func (r *AreaRepository) GetBySource(ctx context.Context, source string) (AreaRecord, error) {
	rec, err := scanArea(r.db.QueryRow(ctx,
		`SELECT `+areaColumns+` FROM areas WHERE source = $1`, source))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AreaRecord{}, ErrAreaNotFound
		}
		return AreaRecord{}, fmt.Errorf("querying area: %w", err)
	}
	return rec, nil
}

// List returns every catalog entry ordered by source.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *AreaRepository) List(ctx context.Context) ([]AreaRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT `+areaColumns+` FROM areas ORDER BY source ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing areas: %w", err)
	}
	defer rows.Close()

	out := make([]AreaRecord, 0)
	for rows.Next() {
		rec, err := scanArea(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning area row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Rooms returns the room rows of an area in file order.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *AreaRepository) Rooms(ctx context.Context, areaID uuid.UUID) ([]RoomRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT vnum, name, sector, exit_count
		FROM area_rooms WHERE area_id = $1 ORDER BY position ASC`,
		areaID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	defer rows.Close()

	out := make([]RoomRow, 0)
	for rows.Next() {
		var row RoomRow
		if err := rows.Scan(&row.Vnum, &row.Name, &row.Sector, &row.ExitCount); err != nil {
			return nil, fmt.Errorf("scanning room row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// FindRoom returns the source of the area that defines vnum.
//
// Postcondition: Returns the source or ErrAreaNotFound.
func (r *AreaRepository) FindRoom(ctx context.Context, vnum int) (string, error) {
	var source string
	err := r.db.QueryRow(ctx, `
		SELECT a.source FROM area_rooms r JOIN areas a ON a.id = r.area_id
		WHERE r.vnum = $1 ORDER BY a.source LIMIT 1`,
		vnum,
	).Scan(&source)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrAreaNotFound
		}
		return "", fmt.Errorf("finding room %d: %w", vnum, err)
	}
	return source, nil
}

// Delete removes the catalog entry for an area file and its rooms.
//
// Postcondition: Returns nil on success, ErrAreaNotFound if nothing matched.
func (r *AreaRepository) Delete(ctx context.Context, source string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM areas WHERE source = $1`, source)
	if err != nil {
		return fmt.Errorf("deleting area: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAreaNotFound
	}
	return nil
}
