package caching

import (
	"context"
	"encoding/json"
	"log"
)

// Optimistic coordinates speculative cache writes around a mutation so the
// admin UI sees its change immediately while the database stays
// authoritative. The protocol per mutation:
//
//  1. snapshot the current cached value under every affected key
//  2. speculatively apply the intended change to the cache
//  3. run the mutation against the database
//  4. on failure restore every snapshot exactly as it was
//  5. on success invalidate the affected keys so the next read refetches
//
// Rollback and invalidation are mutually exclusive: exactly one happens.
// Concurrent mutations on the same key are not coordinated beyond
// last-write-wins on the cache; the post-success refetch resolves them.
type Optimistic struct {
	store Store
}

func NewOptimistic(store Store) *Optimistic {
	return &Optimistic{store: store}
}

// CacheWrite is one speculative change to a cached value. Apply receives
// the current cached bytes (nil when absent) and returns the replacement;
// a false second result leaves the entry untouched.
type CacheWrite struct {
	Key   Key
	Apply func(old []byte) ([]byte, bool)
}

// Mutation describes the cache effect of one create/update/delete.
type Mutation struct {
	Writes     []CacheWrite
	Invalidate []Key
}

type snapshot struct {
	key     string
	value   []byte
	present bool
}

// Run executes op under the optimistic protocol.
func (o *Optimistic) Run(ctx context.Context, m Mutation, op func(context.Context) error) error {
	snapshots := make([]snapshot, 0, len(m.Writes))
	applied := true

	for _, write := range m.Writes {
		old, err := o.store.Get(ctx, write.Key.String())
		if err != nil {
			// Cache unavailable: skip the speculative phase entirely and
			// fall through to the plain write-then-invalidate path.
			applied = false
			break
		}
		snapshots = append(snapshots, snapshot{key: write.Key.String(), value: old, present: old != nil})
	}

	if applied {
		for _, write := range m.Writes {
			old, _ := o.store.Get(ctx, write.Key.String())
			next, ok := write.Apply(old)
			if !ok {
				continue
			}
			if err := o.store.Set(ctx, write.Key.String(), next, DefaultTTL); err != nil {
				log.Printf("optimistic apply failed for %s: %v", write.Key, err)
			}
		}
	}

	if err := op(ctx); err != nil {
		if applied {
			o.rollback(ctx, snapshots)
		}
		return err
	}

	raw := make([]string, 0, len(m.Invalidate))
	for _, key := range m.Invalidate {
		raw = append(raw, key.String())
	}
	if err := o.store.Del(ctx, raw...); err != nil {
		log.Printf("cache invalidation failed: %v", err)
	}
	return nil
}

func (o *Optimistic) rollback(ctx context.Context, snapshots []snapshot) {
	for _, snap := range snapshots {
		if !snap.present {
			if err := o.store.Del(ctx, snap.key); err != nil {
				log.Printf("optimistic rollback failed for %s: %v", snap.key, err)
			}
			continue
		}
		if err := o.store.Set(ctx, snap.key, snap.value, DefaultTTL); err != nil {
			log.Printf("optimistic rollback failed for %s: %v", snap.key, err)
		}
	}
}

// AppendToList returns an Apply that appends a placeholder entry to a
// cached list, creating the list when nothing is cached yet.
func AppendToList(placeholder any) func(old []byte) ([]byte, bool) {
	return func(old []byte) ([]byte, bool) {
		var items []json.RawMessage
		if old != nil {
			if err := json.Unmarshal(old, &items); err != nil {
				return nil, false
			}
		}
		entry, err := json.Marshal(placeholder)
		if err != nil {
			return nil, false
		}
		items = append(items, entry)
		next, err := json.Marshal(items)
		if err != nil {
			return nil, false
		}
		return next, true
	}
}

// MergeDetail returns an Apply that merges changed fields over a cached
// detail entry. An absent entry stays absent; there is nothing to merge.
func MergeDetail(fields map[string]any) func(old []byte) ([]byte, bool) {
	return func(old []byte) ([]byte, bool) {
		if old == nil {
			return nil, false
		}
		var current map[string]json.RawMessage
		if err := json.Unmarshal(old, &current); err != nil {
			return nil, false
		}
		for name, value := range fields {
			raw, err := json.Marshal(value)
			if err != nil {
				return nil, false
			}
			current[name] = raw
		}
		next, err := json.Marshal(current)
		if err != nil {
			return nil, false
		}
		return next, true
	}
}

// RemoveFromList returns an Apply that filters the entry with the given id
// out of a cached list. An absent list becomes an empty one, matching the
// delete-then-refetch flow of the admin UI.
func RemoveFromList(id string) func(old []byte) ([]byte, bool) {
	return func(old []byte) ([]byte, bool) {
		var items []json.RawMessage
		if old != nil {
			if err := json.Unmarshal(old, &items); err != nil {
				return nil, false
			}
		}
		filtered := make([]json.RawMessage, 0, len(items))
		for _, item := range items {
			var probe struct {
				ID string `json:"id"`
			}
			if err := json.Unmarshal(item, &probe); err == nil && probe.ID == id {
				continue
			}
			filtered = append(filtered, item)
		}
		next, err := json.Marshal(filtered)
		if err != nil {
			return nil, false
		}
		return next, true
	}
}
