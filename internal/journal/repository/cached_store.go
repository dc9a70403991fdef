package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"golang-trade-journal/pkg/cache"
	"golang-trade-journal/pkg/logger"
)

// CacheKeyPrefix namespaces every cached query result.
const CacheKeyPrefix = "journal:"

// Every journal table belongs to exactly one workspace and entity, so the
// table name identifies the (workspace, entity) pair a cached result belongs to.
func tableKey(table string) string {
	return CacheKeyPrefix + table + ":"
}

func genKey(table string) string {
	return CacheKeyPrefix + "gen:" + table
}

// NewCachedStore wraps store with a read-through cache. Writes invalidate
// every cached query of the written table once they succeed by moving the
// table to a new generation. Reads made inside a transaction bypass the cache.
func NewCachedStore(store Store, c cache.Cache, ttl time.Duration, log *logger.Logger) Store {
	return &cachedStore{store: store, cache: c, ttl: ttl, logger: log}
}

type cachedStore struct {
	store  Store
	cache  cache.Cache
	ttl    time.Duration
	logger *logger.Logger
}

func (s *cachedStore) Select(ctx context.Context, q Query) ([]Row, error) {
	gen, ok := s.generation(ctx, q.Table)
	if !ok {
		return s.store.Select(ctx, q)
	}
	key := tableKey(q.Table) + gen + ":" + q.Key()
	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("Cache read failed", logger.StringField("key", key), logger.ErrorField(err))
	} else if ok {
		var rows []Row
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&rows); err == nil {
			return rows, nil
		}
	}

	rows, err := s.store.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, s.cache, key, rows, s.ttl); err != nil {
		s.logger.Warn("Cache write failed", logger.StringField("key", key), logger.ErrorField(err))
	}
	return rows, nil
}

// generation returns the current write generation of table. Cached results
// are keyed by it, so a result read before a write lands under a key no
// later reader uses.
func (s *cachedStore) generation(ctx context.Context, table string) (string, bool) {
	raw, ok, err := s.cache.Get(ctx, genKey(table))
	if err != nil {
		s.logger.Warn("Cache generation read failed", logger.StringField("table", table), logger.ErrorField(err))
		return "", false
	}
	if !ok {
		return "0", true
	}
	return string(raw), true
}

func (s *cachedStore) Insert(ctx context.Context, table, idColumn string, row Row) (Row, error) {
	out, err := s.store.Insert(ctx, table, idColumn, row)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, table)
	return out, nil
}

func (s *cachedStore) Update(ctx context.Context, table string, set Row, filters ...Filter) (int64, error) {
	n, err := s.store.Update(ctx, table, set, filters...)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, table)
	return n, nil
}

func (s *cachedStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	rec := &writeRecorder{tables: make(map[string]struct{})}
	err := s.store.Transaction(ctx, func(tx Store) error {
		rec.Store = tx
		return fn(rec)
	})
	if err != nil {
		return err
	}
	for table := range rec.tables {
		s.invalidate(ctx, table)
	}
	return nil
}

func (s *cachedStore) Lock(ctx context.Context, key string) error {
	return s.store.Lock(ctx, key)
}

func (s *cachedStore) invalidate(ctx context.Context, table string) {
	if _, err := s.cache.Incr(ctx, genKey(table)); err != nil {
		s.logger.Error("Cache generation bump failed", logger.StringField("table", table), logger.ErrorField(err))
	}
	if err := s.cache.DeletePrefix(ctx, tableKey(table)); err != nil {
		s.logger.Error("Cache invalidation failed", logger.StringField("table", table), logger.ErrorField(err))
	}
}

// writeRecorder remembers which tables a transaction wrote to.
type writeRecorder struct {
	Store
	mu     sync.Mutex
	tables map[string]struct{}
}

func (w *writeRecorder) Insert(ctx context.Context, table, idColumn string, row Row) (Row, error) {
	w.mark(table)
	return w.Store.Insert(ctx, table, idColumn, row)
}

func (w *writeRecorder) Update(ctx context.Context, table string, set Row, filters ...Filter) (int64, error) {
	w.mark(table)
	return w.Store.Update(ctx, table, set, filters...)
}

func (w *writeRecorder) mark(table string) {
	w.mu.Lock()
	w.tables[table] = struct{}{}
	w.mu.Unlock()
}
