// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package relstore

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestBuildWhere(t *testing.T) {
	where, args := buildWhere(Where(
		Eq("dishid", "d1"),
		IsNil("systemsubtype"),
		In("collectionid", []string{"c1", "c2"}),
	), 3)

	assert.Equal(t, ` WHERE "dishid" = $3 AND "systemsubtype" IS NULL AND "collectionid" = ANY($4)`, where)
	assert.Equal(t, []any{"d1", []string{"c1", "c2"}}, args)
}

func TestBuildWhere_EmptyInMatchesNothing(t *testing.T) {
	where, args := buildWhere(Where(In("id", []string{})), 1)
	assert.Equal(t, " WHERE FALSE", where)
	assert.Empty(t, args)

	where, _ = buildWhere(nil, 1)
	assert.Empty(t, where)
}

func TestBuildInsert_MissingColumnsUseDefault(t *testing.T) {
	query, args := buildInsert("recipe.step", []Row{
		{"position": 1, "description": "Boil"},
		{"position": 2},
	})

	assert.Equal(t, `INSERT INTO "recipe"."step" ("description", "position") VALUES ($1, $2), (DEFAULT, $3)`, query)
	assert.Equal(t, []any{"Boil", 1, 2}, args)
}

func TestTypedList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, typedList([]any{"a", "b"}))
	assert.Equal(t, []int{1, 2}, typedList([]any{1, 2}))
	assert.Equal(t, []any{"a", 1}, typedList([]any{"a", 1}))
}

func TestClassify(t *testing.T) {
	unique := classify("insert", "users.profile", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "profile_tag_key"})
	assert.ErrorIs(t, unique, ErrConflict)
	assert.Contains(t, unique.Error(), "profile_tag_key")

	foreign := classify("insert", "recipe.step", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
	assert.ErrorIs(t, foreign, ErrForeignKey)

	cause := errors.New("connection reset")
	other := classify("select", "recipe.dish", cause)
	assert.ErrorIs(t, other, cause)
	assert.NotErrorIs(t, other, ErrConflict)
}

func TestRowDecoding(t *testing.T) {
	row := Row{
		"id":       [16]byte{0x01, 0x8f, 0x2a, 0x3b, 0x4c, 0x5d, 0x7e, 0x6f, 0x80, 0x91, 0xa2, 0xb3, 0xc4, 0xd5, 0xe6, 0xf7},
		"servings": int32(4),
		"amount":   int64(3),
		"reason":   nil,
	}

	assert.Equal(t, "018f2a3b-4c5d-7e6f-8091-a2b3c4d5e6f7", row.String("id"))
	assert.Equal(t, 4, row.Int("servings"))
	assert.Equal(t, 3.0, row.Float("amount"))
	assert.Nil(t, row.StringPtr("reason"))
	assert.Nil(t, row.IntPtr("missing"))
	assert.True(t, row.IsNull("reason"))
	assert.False(t, row.Bool("missing"))
}
