// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package relstore is the Relation Store Adapter used by every Dishly repository.

The store is reached only through single-statement calls. There is no multi-statement
transaction and no trigger the engine may rely on, so repositories compose
sequences of independent calls and make each call individually safe to repeat.

Capability set:

  - Select: rows matching a filter, optionally ordered.
  - Insert: new rows, returning what was written.
  - Update: patch rows matching a filter, returning the patched rows.
  - Delete: remove rows matching a filter (deleting nothing is not an error).
  - UpsertIgnoreConflict: insert, silently skipping rows that hit the conflict key.
  - Upsert: insert, overwriting rows that hit the conflict key.

Two adapters exist: [PostgresStore] (pgx) and memstore (in-process, used by tests
and by STORE_DRIVER=memory).
*/
package relstore

import (
	"context"
	"errors"
)

// ErrConflict is wrapped by adapters when a write violates a unique constraint.
var ErrConflict = errors.New("relstore: unique constraint violated")

// ErrForeignKey is wrapped by adapters when a write references a missing row.
var ErrForeignKey = errors.New("relstore: foreign key violated")

// Row is a single record keyed by column name.
type Row map[string]any

// Operator is a comparison supported in a [Filter].
type Operator string

const (
	OpEq    Operator = "eq"
	OpIn    Operator = "in"
	OpIsNil Operator = "is_null"
)

// Condition restricts a single column.
type Condition struct {
	Column   string
	Operator Operator
	Value    any
}

// Filter is a conjunction of conditions. An empty filter matches every row.
type Filter []Condition

// Eq matches rows whose column equals value.
func Eq(column string, value any) Condition {
	return Condition{Column: column, Operator: OpEq, Value: value}
}

// In matches rows whose column equals any of values.
//
// An empty value list matches nothing.
func In[T any](column string, values []T) Condition {
	list := make([]any, len(values))
	for i, v := range values {
		list[i] = v
	}
	return Condition{Column: column, Operator: OpIn, Value: list}
}

// IsNil matches rows whose column is NULL.
func IsNil(column string) Condition {
	return Condition{Column: column, Operator: OpIsNil}
}

// Where builds a [Filter] from conditions.
func Where(conditions ...Condition) Filter {
	return Filter(conditions)
}

// Order sorts a [Store.Select] result.
type Order struct {
	Column     string
	Descending bool
}

// Asc sorts by column ascending.
func Asc(column string) Order { return Order{Column: column} }

// Desc sorts by column descending.
func Desc(column string) Order { return Order{Column: column, Descending: true} }

// Store is the minimal relational capability set consumed by repositories.
type Store interface {
	Select(ctx context.Context, table string, filter Filter, order ...Order) ([]Row, error)
	Insert(ctx context.Context, table string, rows ...Row) ([]Row, error)
	Update(ctx context.Context, table string, filter Filter, patch Row) ([]Row, error)
	Delete(ctx context.Context, table string, filter Filter) error
	UpsertIgnoreConflict(ctx context.Context, table string, rows []Row, conflictKeys ...string) error
	Upsert(ctx context.Context, table string, rows []Row, conflictKeys ...string) error
}
