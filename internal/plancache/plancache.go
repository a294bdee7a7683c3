// Package plancache is an on-disk memoization layer for RelationExpr type
// derivation, keyed by plan.RelationExpr.Hash() (spec.md §4.1's structural
// hashing requirement: "support memoization and plan-cache lookup").
// Adapted from the teacher's storage.BadgerStore: same badger.DB setup,
// same opts tuning for a read-heavy workload, but storing a single
// small value per key instead of datom indices.
package plancache

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/streamkit-io/relexpr/plan"
	"github.com/streamkit-io/relexpr/repr"
)

// Cache memoizes the result of RelationExpr.Typ() across process restarts,
// keyed by the tree's structural hash. A hash collision between
// structurally distinct trees is assumed impossible for FNV-1a over the
// trees this module produces; callers that must be exact can always fall
// back to calling Typ() directly.
type Cache struct {
	db *badger.DB
}

// Open opens (creating if absent) a badger-backed plan cache at path.
func Open(path string) (*Cache, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	// The cache holds many small entries read far more often than
	// written; tuned the way the teacher tunes its own read-heavy store.
	opts.MemTableSize = 64 << 20
	opts.BlockCacheSize = 128 << 20
	opts.IndexCacheSize = 64 << 20
	opts.DetectConflicts = false

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("plancache: failed to open badger: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func cacheKey(r plan.RelationExpr) []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], r.Hash())
	return key[:]
}

type cachedType struct {
	ColumnTypes []cachedColumn `json:"column_types"`
}

type cachedColumn struct {
	Name       string `json:"name"`
	HasName    bool   `json:"has_name"`
	Nullable   bool   `json:"nullable"`
	ScalarType string `json:"scalar_type"`
}

func encodeType(t repr.RelationType) ([]byte, error) {
	w := cachedType{ColumnTypes: make([]cachedColumn, len(t.ColumnTypes))}
	for i, ct := range t.ColumnTypes {
		w.ColumnTypes[i] = cachedColumn{
			Name:       ct.Name,
			HasName:    ct.HasName,
			Nullable:   ct.Nullable,
			ScalarType: ct.ScalarType.String(),
		}
	}
	return json.Marshal(w)
}

func decodeType(data []byte) (repr.RelationType, error) {
	var w cachedType
	if err := json.Unmarshal(data, &w); err != nil {
		return repr.RelationType{}, fmt.Errorf("plancache: corrupt cached type: %w", err)
	}
	cols := make([]repr.ColumnType, len(w.ColumnTypes))
	for i, cw := range w.ColumnTypes {
		st, ok := repr.ParseScalarType(cw.ScalarType)
		if !ok {
			return repr.RelationType{}, fmt.Errorf("plancache: unknown scalar type %q", cw.ScalarType)
		}
		cols[i] = repr.ColumnType{Name: cw.Name, HasName: cw.HasName, Nullable: cw.Nullable, ScalarType: st}
	}
	return repr.RelationType{ColumnTypes: cols}, nil
}

// Typ returns r.Typ(), consulting the cache first. A cache miss computes
// Typ() (which may panic with *plan.InvariantViolation, same as calling
// it directly) and stores the result before returning it.
func (c *Cache) Typ(r plan.RelationExpr) (repr.RelationType, error) {
	key := cacheKey(r)

	var cached *repr.RelationType
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			t, err := decodeType(val)
			if err != nil {
				return err
			}
			cached = &t
			return nil
		})
	})
	if err != nil {
		return repr.RelationType{}, fmt.Errorf("plancache: lookup failed: %w", err)
	}
	if cached != nil {
		return *cached, nil
	}

	typ := r.Typ()
	encoded, err := encodeType(typ)
	if err != nil {
		return repr.RelationType{}, err
	}
	if err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, encoded)
	}); err != nil {
		return repr.RelationType{}, fmt.Errorf("plancache: store failed: %w", err)
	}
	return typ, nil
}

// Invalidate removes any cached type for r's structural hash.
func (c *Cache) Invalidate(r plan.RelationExpr) error {
	return c.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(cacheKey(r))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}
