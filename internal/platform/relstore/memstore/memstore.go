// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package memstore is an in-process [relstore.Store].

It backs the package tests and STORE_DRIVER=memory local runs. Unique keys are
enforced with PostgreSQL semantics (a NULL key column never conflicts) so the
idempotence rules of the engine behave exactly as they do against the database.

Failures can be injected per operation and table to exercise partial-failure paths.
*/
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/dishly/internal/platform/relstore"
)

// Op names a store capability for fault injection and call recording.
type Op string

const (
	OpSelect       Op = "select"
	OpInsert       Op = "insert"
	OpUpdate       Op = "update"
	OpDelete       Op = "delete"
	OpUpsertIgnore Op = "upsert_ignore"
	OpUpsert       Op = "upsert"
)

// Call records a single invocation against the store.
type Call struct {
	Op    Op
	Table string
}

type fault struct {
	err       error
	remaining int // <0 means forever
}

// Store is the in-memory relation store.
type Store struct {
	mu      sync.Mutex
	tables  map[string][]relstore.Row
	uniques map[string][][]string
	faults  map[Call]*fault
	calls   []Call
}

// Option configures a [Store].
type Option func(*Store)

// WithUniqueKeys registers unique constraints as table → list of column sets.
func WithUniqueKeys(keys map[string][][]string) Option {
	return func(store *Store) {
		for table, sets := range keys {
			store.uniques[table] = append(store.uniques[table], sets...)
		}
	}
}

// New constructs an empty store.
func New(options ...Option) *Store {
	store := &Store{
		tables:  make(map[string][]relstore.Row),
		uniques: make(map[string][][]string),
		faults:  make(map[Call]*fault),
	}
	for _, option := range options {
		option(store)
	}
	return store
}

// # Fault Injection

// FailOn makes every op on table return err until [Store.Reset] is called.
func (store *Store) FailOn(op Op, table string, err error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.faults[Call{Op: op, Table: table}] = &fault{err: err, remaining: -1}
}

// FailOnce makes the next op on table return err.
func (store *Store) FailOnce(op Op, table string, err error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.faults[Call{Op: op, Table: table}] = &fault{err: err, remaining: 1}
}

// Reset clears injected faults and the call log.
func (store *Store) Reset() {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.faults = make(map[Call]*fault)
	store.calls = nil
}

// Calls returns a copy of the recorded call log.
func (store *Store) Calls() []Call {
	store.mu.Lock()
	defer store.mu.Unlock()
	return append([]Call(nil), store.calls...)
}

// Count returns the number of rows in table matching filter.
func (store *Store) Count(table string, filter relstore.Filter) int {
	store.mu.Lock()
	defer store.mu.Unlock()
	n := 0
	for _, row := range store.tables[table] {
		if matches(row, filter) {
			n++
		}
	}
	return n
}

// # Store Implementation

// Select implements [relstore.Store].
func (store *Store) Select(_ context.Context, table string, filter relstore.Filter, order ...relstore.Order) ([]relstore.Row, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if err := store.enter(OpSelect, table); err != nil {
		return nil, err
	}

	var result []relstore.Row
	for _, row := range store.tables[table] {
		if matches(row, filter) {
			result = append(result, clone(row))
		}
	}

	if len(order) > 0 {
		sort.SliceStable(result, func(i, j int) bool {
			for _, o := range order {
				c := compare(result[i][o.Column], result[j][o.Column])
				if c == 0 {
					continue
				}
				if o.Descending {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}
	return result, nil
}

// Insert implements [relstore.Store]. The whole batch is rejected on any conflict.
func (store *Store) Insert(_ context.Context, table string, rows ...relstore.Row) ([]relstore.Row, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if err := store.enter(OpInsert, table); err != nil {
		return nil, err
	}

	staged := make([]relstore.Row, 0, len(rows))
	for _, row := range rows {
		normalized := normalize(row)
		if store.conflicts(table, normalized, staged) {
			return nil, fmt.Errorf("memstore: insert %s: %w", table, relstore.ErrConflict)
		}
		staged = append(staged, normalized)
	}

	store.tables[table] = append(store.tables[table], staged...)
	result := make([]relstore.Row, len(staged))
	for i, row := range staged {
		result[i] = clone(row)
	}
	return result, nil
}

// Update implements [relstore.Store].
func (store *Store) Update(_ context.Context, table string, filter relstore.Filter, patch relstore.Row) ([]relstore.Row, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if err := store.enter(OpUpdate, table); err != nil {
		return nil, err
	}

	normalized := normalize(patch)
	var result []relstore.Row
	for _, row := range store.tables[table] {
		if !matches(row, filter) {
			continue
		}
		for column, value := range normalized {
			row[column] = value
		}
		result = append(result, clone(row))
	}
	return result, nil
}

// Delete implements [relstore.Store].
func (store *Store) Delete(_ context.Context, table string, filter relstore.Filter) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if err := store.enter(OpDelete, table); err != nil {
		return err
	}

	kept := store.tables[table][:0]
	for _, row := range store.tables[table] {
		if !matches(row, filter) {
			kept = append(kept, row)
		}
	}
	store.tables[table] = kept
	return nil
}

// UpsertIgnoreConflict implements [relstore.Store].
func (store *Store) UpsertIgnoreConflict(_ context.Context, table string, rows []relstore.Row, conflictKeys ...string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if err := store.enter(OpUpsertIgnore, table); err != nil {
		return err
	}

	for _, row := range rows {
		normalized := normalize(row)
		if store.indexOf(table, normalized, conflictKeys) >= 0 {
			continue
		}
		if store.conflicts(table, normalized, nil) {
			return fmt.Errorf("memstore: upsert %s: %w", table, relstore.ErrConflict)
		}
		store.tables[table] = append(store.tables[table], normalized)
	}
	return nil
}

// Upsert implements [relstore.Store].
func (store *Store) Upsert(_ context.Context, table string, rows []relstore.Row, conflictKeys ...string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if err := store.enter(OpUpsert, table); err != nil {
		return err
	}

	for _, row := range rows {
		normalized := normalize(row)
		if i := store.indexOf(table, normalized, conflictKeys); i >= 0 {
			for column, value := range normalized {
				store.tables[table][i][column] = value
			}
			continue
		}
		if store.conflicts(table, normalized, nil) {
			return fmt.Errorf("memstore: upsert %s: %w", table, relstore.ErrConflict)
		}
		store.tables[table] = append(store.tables[table], normalized)
	}
	return nil
}

// # Internals

// enter records the call and returns an injected fault if one is armed.
func (store *Store) enter(op Op, table string) error {
	call := Call{Op: op, Table: table}
	store.calls = append(store.calls, call)

	f, ok := store.faults[call]
	if !ok {
		return nil
	}
	if f.remaining > 0 {
		f.remaining--
		if f.remaining == 0 {
			delete(store.faults, call)
		}
	}
	return f.err
}

// conflicts reports whether row shares any registered unique key with a stored
// row or with a row staged earlier in the same batch.
func (store *Store) conflicts(table string, row relstore.Row, staged []relstore.Row) bool {
	for _, key := range store.uniques[table] {
		if store.indexOf(table, row, key) >= 0 {
			return true
		}
		for _, other := range staged {
			if sameKey(row, other, key) {
				return true
			}
		}
	}
	return false
}

// indexOf finds the stored row sharing key with row.
func (store *Store) indexOf(table string, row relstore.Row, key []string) int {
	if len(key) == 0 {
		return -1
	}
	for i, existing := range store.tables[table] {
		if sameKey(row, existing, key) {
			return i
		}
	}
	return -1
}

func sameKey(a, b relstore.Row, key []string) bool {
	for _, column := range key {
		if a[column] == nil || b[column] == nil {
			return false
		}
		if compare(a[column], b[column]) != 0 {
			return false
		}
	}
	return true
}

func matches(row relstore.Row, filter relstore.Filter) bool {
	for _, condition := range filter {
		value := row[condition.Column]
		switch condition.Operator {
		case relstore.OpIsNil:
			if value != nil {
				return false
			}
		case relstore.OpIn:
			values, _ := condition.Value.([]any)
			found := false
			for _, candidate := range values {
				if value != nil && compare(value, deref(candidate)) == 0 {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			expected := deref(condition.Value)
			if value == nil || expected == nil || compare(value, expected) != 0 {
				return false
			}
		}
	}
	return true
}

// compare orders two column values of the same logical type.
func compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}
	if af, ok := number(a); ok {
		if bf, ok := number(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}

	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// deref unwraps typed pointers so stored values are always plain.
func deref(v any) any {
	switch p := v.(type) {
	case *string:
		if p == nil {
			return nil
		}
		return *p
	case *int:
		if p == nil {
			return nil
		}
		return *p
	case *float64:
		if p == nil {
			return nil
		}
		return *p
	case *time.Time:
		if p == nil {
			return nil
		}
		return *p
	}
	return v
}

func normalize(row relstore.Row) relstore.Row {
	out := make(relstore.Row, len(row))
	for column, value := range row {
		out[column] = deref(value)
	}
	return out
}

func clone(row relstore.Row) relstore.Row {
	out := make(relstore.Row, len(row))
	for column, value := range row {
		out[column] = value
	}
	return out
}
