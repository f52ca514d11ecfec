// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package relstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of [pgxpool.Pool] used by [PostgresStore].
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore implements [Store] with one SQL statement per call.
//
// It connects with the service role, so row-level policies do not apply; callers
// that must act on behalf of a user enforce ownership in the service layer.
type PostgresStore struct {
	db Querier
}

// NewPostgresStore constructs a PostgreSQL backed relation store.
func NewPostgresStore(db Querier) *PostgresStore {
	return &PostgresStore{db: db}
}

// Select implements [Store].
func (store *PostgresStore) Select(ctx context.Context, table string, filter Filter, order ...Order) ([]Row, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT * FROM ")
	queryBuilder.WriteString(quoteTable(table))

	where, args := buildWhere(filter, 1)
	queryBuilder.WriteString(where)

	if len(order) > 0 {
		parts := make([]string, 0, len(order))
		for _, o := range order {
			direction := "ASC"
			if o.Descending {
				direction = "DESC"
			}
			parts = append(parts, quoteIdent(o.Column)+" "+direction)
		}
		queryBuilder.WriteString(" ORDER BY ")
		queryBuilder.WriteString(strings.Join(parts, ", "))
	}

	return store.queryRows(ctx, "select", table, queryBuilder.String(), args...)
}

// Insert implements [Store].
func (store *PostgresStore) Insert(ctx context.Context, table string, rows ...Row) ([]Row, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	query, args := buildInsert(table, rows)
	return store.queryRows(ctx, "insert", table, query+" RETURNING *", args...)
}

// Update implements [Store].
func (store *PostgresStore) Update(ctx context.Context, table string, filter Filter, patch Row) ([]Row, error) {
	if len(patch) == 0 {
		return nil, fmt.Errorf("relstore: update %s: empty patch", table)
	}

	columns := sortedColumns(patch)
	sets := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns)+len(filter))
	for i, column := range columns {
		sets = append(sets, fmt.Sprintf("%s = $%d", quoteIdent(column), i+1))
		args = append(args, patch[column])
	}

	where, whereArgs := buildWhere(filter, len(args)+1)
	args = append(args, whereArgs...)

	query := fmt.Sprintf("UPDATE %s SET %s%s RETURNING *", quoteTable(table), strings.Join(sets, ", "), where)
	return store.queryRows(ctx, "update", table, query, args...)
}

// Delete implements [Store].
func (store *PostgresStore) Delete(ctx context.Context, table string, filter Filter) error {
	where, args := buildWhere(filter, 1)
	query := "DELETE FROM " + quoteTable(table) + where
	if _, err := store.db.Exec(ctx, query, args...); err != nil {
		return classify("delete", table, err)
	}
	return nil
}

// UpsertIgnoreConflict implements [Store] with ON CONFLICT DO NOTHING.
func (store *PostgresStore) UpsertIgnoreConflict(ctx context.Context, table string, rows []Row, conflictKeys ...string) error {
	if len(rows) == 0 {
		return nil
	}
	query, args := buildInsert(table, rows)
	query += fmt.Sprintf(" ON CONFLICT (%s) DO NOTHING", joinIdents(conflictKeys))
	if _, err := store.db.Exec(ctx, query, args...); err != nil {
		return classify("upsert_ignore", table, err)
	}
	return nil
}

// Upsert implements [Store] with ON CONFLICT DO UPDATE on every non-key column.
func (store *PostgresStore) Upsert(ctx context.Context, table string, rows []Row, conflictKeys ...string) error {
	if len(rows) == 0 {
		return nil
	}
	query, args := buildInsert(table, rows)

	keys := make(map[string]struct{}, len(conflictKeys))
	for _, key := range conflictKeys {
		keys[key] = struct{}{}
	}

	var sets []string
	for _, column := range sortedColumns(rows[0]) {
		if _, isKey := keys[column]; isKey {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", quoteIdent(column), quoteIdent(column)))
	}

	if len(sets) == 0 {
		query += fmt.Sprintf(" ON CONFLICT (%s) DO NOTHING", joinIdents(conflictKeys))
	} else {
		query += fmt.Sprintf(" ON CONFLICT (%s) DO UPDATE SET %s", joinIdents(conflictKeys), strings.Join(sets, ", "))
	}

	if _, err := store.db.Exec(ctx, query, args...); err != nil {
		return classify("upsert", table, err)
	}
	return nil
}

// # Query Helpers

// queryRows executes a row-returning statement and collects the result as [Row]s.
func (store *PostgresStore) queryRows(ctx context.Context, action, table, query string, args ...any) ([]Row, error) {
	rows, err := store.db.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(action, table, err)
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, classify(action, table, err)
	}

	result := make([]Row, 0, len(maps))
	for _, m := range maps {
		row := Row(m)
		// UUID columns decode as [16]byte; repositories work with strings.
		for column, value := range row {
			if raw, ok := value.([16]byte); ok {
				row[column] = Row{column: raw}.String(column)
			}
		}
		result = append(result, row)
	}
	return result, nil
}

// buildInsert renders a multi-row INSERT. Columns come from the union of all rows;
// a row missing a column gets DEFAULT.
func buildInsert(table string, rows []Row) (string, []any) {
	columnSet := make(map[string]struct{})
	for _, row := range rows {
		for column := range row {
			columnSet[column] = struct{}{}
		}
	}
	columns := make([]string, 0, len(columnSet))
	for column := range columnSet {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	var args []any
	tuples := make([]string, 0, len(rows))
	for _, row := range rows {
		placeholders := make([]string, 0, len(columns))
		for _, column := range columns {
			value, ok := row[column]
			if !ok {
				placeholders = append(placeholders, "DEFAULT")
				continue
			}
			args = append(args, value)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		tuples = append(tuples, "("+strings.Join(placeholders, ", ")+")")
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", quoteTable(table), joinIdents(columns), strings.Join(tuples, ", "))
	return query, args
}

// buildWhere renders a filter as a WHERE clause with placeholders starting at $start.
func buildWhere(filter Filter, start int) (string, []any) {
	if len(filter) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(filter))
	args := make([]any, 0, len(filter))
	for _, condition := range filter {
		column := quoteIdent(condition.Column)
		switch condition.Operator {
		case OpIsNil:
			clauses = append(clauses, column+" IS NULL")
		case OpIn:
			values, _ := condition.Value.([]any)
			if len(values) == 0 {
				clauses = append(clauses, "FALSE")
				continue
			}
			args = append(args, typedList(values))
			clauses = append(clauses, fmt.Sprintf("%s = ANY($%d)", column, start+len(args)-1))
		default:
			args = append(args, condition.Value)
			clauses = append(clauses, fmt.Sprintf("%s = $%d", column, start+len(args)-1))
		}
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// typedList narrows a []any to []string or []int so pgx can encode it as an array.
func typedList(values []any) any {
	strs := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			break
		}
		strs = append(strs, s)
	}
	if len(strs) == len(values) {
		return strs
	}

	ints := make([]int, 0, len(values))
	for _, v := range values {
		n, ok := v.(int)
		if !ok {
			break
		}
		ints = append(ints, n)
	}
	if len(ints) == len(values) {
		return ints
	}

	return values
}

func sortedColumns(row Row) []string {
	columns := make([]string, 0, len(row))
	for column := range row {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}

func quoteTable(table string) string {
	return pgx.Identifier(strings.Split(table, ".")).Sanitize()
}

func quoteIdent(column string) string {
	return pgx.Identifier{column}.Sanitize()
}

func joinIdents(columns []string) string {
	quoted := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = quoteIdent(column)
	}
	return strings.Join(quoted, ", ")
}

// classify wraps a driver error, tagging constraint violations with the package sentinels.
func classify(action, table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("relstore: %s %s: %w (%s)", action, table, ErrConflict, pgErr.ConstraintName)
		case pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("relstore: %s %s: %w (%s)", action, table, ErrForeignKey, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("relstore: %s %s: %w", action, table, err)
}
