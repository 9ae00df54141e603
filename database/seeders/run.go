// Package seeders fills a fresh database with demo data.
//
//	shopservice seed
package seeders

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/shopservice/pkg/logger"
)

// SeederFunc inserts one set of rows.
type SeederFunc func(ctx context.Context, db *gorm.DB) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder; call it from init.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// RunAll executes every registered seeder in registration order, stopping
// at the first failure. It returns the names that ran.
func RunAll(ctx context.Context, db *gorm.DB) ([]string, error) {
	mu.Lock()
	current := append([]seederEntry(nil), entries...)
	mu.Unlock()

	var ran []string
	for _, e := range current {
		logger.Info("seeder: running", "name", e.name)
		if err := e.fn(ctx, db); err != nil {
			return ran, fmt.Errorf("seeder %q: %w", e.name, err)
		}
		ran = append(ran, e.name)
	}
	return ran, nil
}
