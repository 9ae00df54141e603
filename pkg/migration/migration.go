// Package migration runs batch-tracked schema migrations.
//
// Migrations register themselves from init functions:
//
//	func init() {
//	    migration.Register("20240101000000_create_shop_table", &CreateShopTable{})
//	}
//
// and are applied by the CLI:
//
//	shopservice migrate
//	shopservice migrate:rollback
//	shopservice migrate:status
package migration

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/shopservice/pkg/logger"
)

// Migration is one reversible schema change.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "schema_migrations" }

type entry struct {
	name string
	m    Migration
}

var registry []entry

// Register adds m to the global registry. Names are timestamp-prefixed and
// sort in the order they must run.
func Register(name string, m Migration) {
	registry = append(registry, entry{name: name, m: m})
}

// Status is one row of Runner.Status.
type Status struct {
	Name  string
	Ran   bool
	Batch int
}

// Runner applies and reverts migrations against one database.
type Runner struct {
	db      *gorm.DB
	entries []entry
}

// New builds a Runner over every registered migration.
func New(db *gorm.DB) *Runner {
	entries := append([]entry(nil), registry...)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
	return &Runner{db: db, entries: entries}
}

func (r *Runner) ensureTable(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&migrationRecord{}); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	return nil
}

func (r *Runner) ran(ctx context.Context) (map[string]migrationRecord, error) {
	var records []migrationRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("migration: read history: %w", err)
	}
	out := make(map[string]migrationRecord, len(records))
	for _, rec := range records {
		out[rec.Name] = rec
	}
	return out, nil
}

// Run applies every pending migration as one new batch and returns the
// names it applied.
func (r *Runner) Run(ctx context.Context) ([]string, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}
	ran, err := r.ran(ctx)
	if err != nil {
		return nil, err
	}

	batch := 1
	for _, rec := range ran {
		if rec.Batch >= batch {
			batch = rec.Batch + 1
		}
	}

	var applied []string
	for _, e := range r.entries {
		if _, ok := ran[e.name]; ok {
			continue
		}
		logger.Info("migration: running", "name", e.name, "batch", batch)

		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := e.m.Up(tx); err != nil {
				return fmt.Errorf("migration: %s up: %w", e.name, err)
			}
			if err := tx.Create(&migrationRecord{Name: e.name, Batch: batch}).Error; err != nil {
				return fmt.Errorf("migration: record %s: %w", e.name, err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}
		applied = append(applied, e.name)
	}

	logger.Info("migration: done", "ran", len(applied), "batch", batch)
	return applied, nil
}

// Rollback reverts the most recent batch, newest first, and returns the
// names it reverted.
func (r *Runner) Rollback(ctx context.Context) ([]string, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}

	var last migrationRecord
	err := r.db.WithContext(ctx).Order("batch desc").Limit(1).Find(&last).Error
	if err != nil {
		return nil, fmt.Errorf("migration: read history: %w", err)
	}
	if last.ID == 0 {
		return nil, nil
	}

	var records []migrationRecord
	if err := r.db.WithContext(ctx).Where("batch = ?", last.Batch).Order("id desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("migration: read batch %d: %w", last.Batch, err)
	}

	byName := make(map[string]Migration, len(r.entries))
	for _, e := range r.entries {
		byName[e.name] = e.m
	}

	var reverted []string
	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return reverted, fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}
		logger.Info("migration: rolling back", "name", rec.Name)

		rec := rec
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return fmt.Errorf("migration: %s down: %w", rec.Name, err)
			}
			return tx.Delete(&rec).Error
		})
		if err != nil {
			return reverted, err
		}
		reverted = append(reverted, rec.Name)
	}
	return reverted, nil
}

// Status lists every registered migration and whether it has run.
func (r *Runner) Status(ctx context.Context) ([]Status, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}
	ran, err := r.ran(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(r.entries))
	for _, e := range r.entries {
		rec, ok := ran[e.name]
		out = append(out, Status{Name: e.name, Ran: ok, Batch: rec.Batch})
	}
	return out, nil
}
