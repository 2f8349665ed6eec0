package store

import (
	"context"
	"database/sql"
	errs "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sworgkh/game-of-life-studio/internal/engine"
	"github.com/sworgkh/game-of-life-studio/internal/util"
)

var ErrNoChange = errs.New("no change")

// DB wraps gorm.DB for repositories and exposes Close.
type DB struct {
	gorm *gorm.DB
	sql  *sql.DB
}

func (d *DB) Close() error   { return d.sql.Close() }
func (d *DB) Gorm() *gorm.DB { return d.gorm }

// Open connects to DB per config.
func Open(ctx context.Context, cfg util.Config) (*DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("missing DSN")
	}
	// Postgres-only
	gdb, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sdb.SetConnMaxLifetime(30 * time.Minute)
	sdb.SetMaxOpenConns(10)
	sdb.SetMaxIdleConns(5)
	if err := sdb.PingContext(ctx); err != nil {
		return nil, err
	}
	return &DB{gorm: gdb, sql: sdb}, nil
}

// WithTx executes fn within a database transaction.
func (d *DB) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.gorm.WithContext(ctx).Transaction(fn)
}

// RecordingRepo persists named recordings. It satisfies
// engine.RecordingStore; storage failures propagate unchanged.
type RecordingRepo struct{ db *DB }

func NewRecordingRepo(db *DB) *RecordingRepo { return &RecordingRepo{db: db} }

// SaveRecording upserts a recording by name, replacing any previous frames.
func (r *RecordingRepo) SaveRecording(ctx context.Context, rec engine.Recording) error {
	return r.db.WithTx(ctx, func(tx *gorm.DB) error {
		id := rec.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		if err := tx.Exec(`INSERT INTO recordings(id, name, rule, rows, cols, created_at)
			VALUES (?,?,?,?,?,?)
			ON CONFLICT (name) DO UPDATE SET rule=EXCLUDED.rule, rows=EXCLUDED.rows, cols=EXCLUDED.cols, created_at=EXCLUDED.created_at`,
			id, rec.Name, rec.Rule, rec.Rows, rec.Cols, rec.CreatedAt).Error; err != nil {
			return wrap(err, "insert recording")
		}
		// the row keeps its original id on conflict; resolve it for the frames
		row := tx.Raw(`SELECT id FROM recordings WHERE name = ?`, rec.Name).Row()
		if err := row.Scan(&id); err != nil {
			return wrap(err, "resolve recording id")
		}
		if err := tx.Exec(`DELETE FROM recording_frames WHERE recording_id = ?`, id).Error; err != nil {
			return wrap(err, "clear old frames")
		}
		for i, f := range rec.Frames {
			packed := engine.PackCells(f.Cells)
			if err := tx.Exec(`INSERT INTO recording_frames(recording_id, idx, generation, rows, cols, cells)
				VALUES (?,?,?,?,?,?)`, id, i, f.Generation, f.Rows, f.Cols, packed).Error; err != nil {
				return wrap(err, "insert frame")
			}
		}
		return nil
	})
}

// GetRecording loads a recording by name. Unknown names fail with
// engine.ErrRecordingNotFound.
func (r *RecordingRepo) GetRecording(ctx context.Context, name string) (engine.Recording, error) {
	row := r.db.gorm.WithContext(ctx).Raw(`SELECT id, name, rule, rows, cols, created_at FROM recordings WHERE name = ?`, name).Row()
	var rec engine.Recording
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Rule, &rec.Rows, &rec.Cols, &rec.CreatedAt); err != nil {
		if errs.Is(err, sql.ErrNoRows) {
			return engine.Recording{}, engine.ErrRecordingNotFound
		}
		return engine.Recording{}, wrap(err, "load recording")
	}
	rows, err := r.db.gorm.WithContext(ctx).Raw(`SELECT generation, rows, cols, cells FROM recording_frames WHERE recording_id = ? ORDER BY idx`, rec.ID).Rows()
	if err != nil {
		return engine.Recording{}, wrap(err, "load frames")
	}
	defer rows.Close()
	for rows.Next() {
		var (
			f      engine.Frame
			packed []byte
		)
		if err := rows.Scan(&f.Generation, &f.Rows, &f.Cols, &packed); err != nil {
			return engine.Recording{}, wrap(err, "scan frame")
		}
		cells, err := engine.UnpackCells(packed, f.Rows, f.Cols)
		if err != nil {
			return engine.Recording{}, wrap(err, "unpack frame")
		}
		f.Cells = cells
		rec.Frames = append(rec.Frames, f)
	}
	if err := rows.Err(); err != nil {
		return engine.Recording{}, wrap(err, "iterate frames")
	}
	return rec, nil
}

// ListRecordings returns saved recording summaries, newest first.
func (r *RecordingRepo) ListRecordings(ctx context.Context) ([]engine.RecordingSummary, error) {
	rows, err := r.db.gorm.WithContext(ctx).Raw(`SELECT r.id, r.name, r.rule, r.rows, r.cols, r.created_at,
		(SELECT COUNT(*) FROM recording_frames f WHERE f.recording_id = r.id) AS frames
		FROM recordings r ORDER BY r.created_at DESC`).Rows()
	if err != nil {
		return nil, wrap(err, "list recordings")
	}
	defer rows.Close()
	var out []engine.RecordingSummary
	for rows.Next() {
		var s engine.RecordingSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Rule, &s.Rows, &s.Cols, &s.CreatedAt, &s.Frames); err != nil {
			return nil, wrap(err, "scan recording summary")
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteRecording removes a saved recording and its frames.
func (r *RecordingRepo) DeleteRecording(ctx context.Context, name string) error {
	return r.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM recording_frames WHERE recording_id IN (SELECT id FROM recordings WHERE name = ?)`, name).Error; err != nil {
			return wrap(err, "delete frames")
		}
		return wrap(tx.Exec(`DELETE FROM recordings WHERE name = ?`, name).Error, "delete recording")
	})
}

// SettingsRepo persists the single settings payload.
type SettingsRepo struct{ db *DB }

func NewSettingsRepo(db *DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Save upserts the settings blob.
func (sr *SettingsRepo) Save(ctx context.Context, payload []byte) error {
	return wrap(sr.db.gorm.WithContext(ctx).Exec(`INSERT INTO settings(id, payload, updated_at) VALUES (1, ?, now())
	ON CONFLICT (id) DO UPDATE SET payload=EXCLUDED.payload, updated_at=now()`, payload).Error, "save settings")
}

// Load returns the settings blob, or ok=false when none has been saved.
func (sr *SettingsRepo) Load(ctx context.Context) ([]byte, bool, error) {
	row := sr.db.gorm.WithContext(ctx).Raw(`SELECT payload FROM settings WHERE id = 1`).Row()
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errs.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, wrap(err, "load settings")
	}
	return payload, true, nil
}

// Helper error wrap
func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}
