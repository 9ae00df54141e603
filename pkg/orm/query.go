// Package orm is a thin layer over GORM used by the repositories. It adds
// context propagation, per-table query timing, a read-through cache and a
// single not-found error.
package orm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/shashiranjanraj/shopservice/pkg/metrics"
)

// ErrNotFound is returned by First when no row matches.
var ErrNotFound = errors.New("orm: record not found")

// Cacher is satisfied by *cache.Store.
type Cacher interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// DB is the entry point repositories hold on to.
type DB struct {
	gorm  *gorm.DB
	cache Cacher
	ttl   time.Duration
}

type Option func(*DB)

// WithCache enables Query.Cache. A ttl <= 0 leaves caching off.
func WithCache(c Cacher, ttl time.Duration) Option {
	return func(d *DB) {
		if c != nil && ttl > 0 {
			d.cache = c
			d.ttl = ttl
		}
	}
}

func New(db *gorm.DB, opts ...Option) *DB {
	d := &DB{gorm: db}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Gorm exposes the underlying handle for migrations and seeders.
func (d *DB) Gorm() *gorm.DB { return d.gorm }

// Model starts a query against model's table.
func (d *DB) Model(ctx context.Context, model schema.Tabler) *Query {
	return &Query{
		db:    d.gorm.WithContext(ctx).Model(model).Session(&gorm.Session{}),
		ctx:   ctx,
		table: model.TableName(),
		owner: d,
	}
}

// Create inserts v. The table label is taken from v.
func (d *DB) Create(ctx context.Context, v schema.Tabler) error {
	defer metrics.ObserveDBQuery(v.TableName(), "insert", time.Now())
	if err := d.gorm.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("orm: insert %s: %w", v.TableName(), err)
	}
	return nil
}

// Forget drops cached results. Errors are returned but callers usually
// only log them: a stale entry expires with its ttl anyway.
func (d *DB) Forget(ctx context.Context, keys ...string) error {
	if d.cache == nil {
		return nil
	}
	return d.cache.Del(ctx, keys...)
}

// Query is an immutable builder; every method returns a new Query.
type Query struct {
	db    *gorm.DB
	ctx   context.Context
	table string
	owner *DB
}

// with wraps db in a fresh session so later chaining clones the statement
// instead of mutating the one q holds.
func (q *Query) with(db *gorm.DB) *Query {
	next := *q
	next.db = db.Session(&gorm.Session{})
	return &next
}

func (q *Query) Where(query interface{}, args ...interface{}) *Query {
	return q.with(q.db.Where(query, args...))
}

func (q *Query) Select(query interface{}, args ...interface{}) *Query {
	return q.with(q.db.Select(query, args...))
}

func (q *Query) Order(value interface{}) *Query {
	return q.with(q.db.Order(value))
}

// Get loads every matching row into dest (a pointer to a slice).
func (q *Query) Get(dest interface{}) error {
	defer metrics.ObserveDBQuery(q.table, "select", time.Now())
	if err := q.db.Find(dest).Error; err != nil {
		return fmt.Errorf("orm: select %s: %w", q.table, err)
	}
	return nil
}

// First loads the first matching row, ordered by primary key.
func (q *Query) First(dest interface{}) error {
	defer metrics.ObserveDBQuery(q.table, "select", time.Now())
	err := q.db.First(dest).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case err != nil:
		return fmt.Errorf("orm: select %s: %w", q.table, err)
	}
	return nil
}

// Pluck loads a single column of every matching row into dest.
func (q *Query) Pluck(column string, dest interface{}) error {
	defer metrics.ObserveDBQuery(q.table, "select", time.Now())
	if err := q.db.Pluck(column, dest).Error; err != nil {
		return fmt.Errorf("orm: pluck %s.%s: %w", q.table, column, err)
	}
	return nil
}

// Exists reports whether at least one row matches.
func (q *Query) Exists() (bool, error) {
	defer metrics.ObserveDBQuery(q.table, "count", time.Now())
	var n int64
	if err := q.db.Limit(1).Count(&n).Error; err != nil {
		return false, fmt.Errorf("orm: count %s: %w", q.table, err)
	}
	return n > 0, nil
}

// Cache behaves like Get but serves from, and fills, the cache under key.
// Without a configured cache it is exactly Get.
func (q *Query) Cache(key string, dest interface{}) error {
	c := q.owner.cache
	if c == nil {
		return q.Get(dest)
	}

	if c.Get(q.ctx, key, dest) {
		metrics.RecordCache(q.table, true)
		return nil
	}
	metrics.RecordCache(q.table, false)

	if err := q.Get(dest); err != nil {
		return err
	}
	// A failed write only costs the next request a database round trip.
	_ = c.Set(q.ctx, key, dest, q.owner.ttl)
	return nil
}
