// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/dishly/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  pagination.Params
	}{
		{"defaults", "", pagination.Params{Page: 1, Limit: 20}},
		{"explicit", "?page=3&limit=50", pagination.Params{Page: 3, Limit: 50}},
		{"junk", "?page=abc&limit=x", pagination.Params{Page: 1, Limit: 20}},
		{"non positive", "?page=0&limit=-4", pagination.Params{Page: 1, Limit: 20}},
		{"limit above max", "?limit=1000", pagination.Params{Page: 1, Limit: 20}},
		{"huge page", "?page=100000000000000000&limit=100", pagination.Params{Page: pagination.MaxPage, Limit: 100}},
		{"page beyond int", "?page=99999999999999999999999", pagination.Params{Page: pagination.MaxPage, Limit: 20}},
		{"page below int", "?page=-99999999999999999999999", pagination.Params{Page: 1, Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/comments"+tt.query, nil)
			assert.Equal(t, tt.want, pagination.FromRequest(request))
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, pagination.Params{Page: 3, Limit: 20}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 20}.Offset())
	assert.Equal(t, math.MaxInt, pagination.Params{Page: math.MaxInt, Limit: 100}.Offset())
	assert.Equal(t, (pagination.MaxPage-1)*pagination.MaxLimit, pagination.Params{Page: pagination.MaxPage, Limit: pagination.MaxLimit}.Offset())
}

func TestNewMeta(t *testing.T) {
	assert.Equal(t, pagination.Meta{Page: 2, Limit: 2, Total: 3, TotalPages: 2}, pagination.NewMeta(2, 2, 3))
	assert.Equal(t, pagination.Meta{Page: 1, Limit: 0, Total: 3}, pagination.NewMeta(1, 0, 3))
}
