package shared_test

import (
	"context"
	"testing"

	"frontdesk/infras/otel/mocks"
	"frontdesk/shared"
	"frontdesk/shared/cache"
	"frontdesk/shared/dto"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "negative limit returns 1", total: 100, limit: -5, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
		{name: "limit greater than total", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name     string
		params   dto.QueryParams
		expected []int
	}{
		{name: "no limit returns everything", params: dto.QueryParams{}, expected: items},
		{name: "first page", params: dto.QueryParams{Page: 1, Limit: 2}, expected: []int{1, 2}},
		{name: "last partial page", params: dto.QueryParams{Page: 3, Limit: 2}, expected: []int{5}},
		{name: "page past the end", params: dto.QueryParams{Page: 4, Limit: 2}, expected: []int{}},
		{name: "zero page is treated as first", params: dto.QueryParams{Limit: 3}, expected: []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.Paginate(items, tt.params))
		})
	}
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("550e8400-e29b-41d4-a716-446655440000", "id", "bookings")

	assert.Equal(t, dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    "id",
				Value:    "550e8400-e29b-41d4-a716-446655440000",
				Operator: dto.FilterOperatorEq,
				Table:    "bookings",
			},
		},
	}, result)

	where, args := result.GetWhereClause()
	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:42", shared.BuildCacheKey("room:get", "42"))
	assert.Equal(t, "limiter:10.0.0.1:curl", shared.BuildCacheKey("limiter", "10.0.0.1", "curl"))
	assert.Equal(t, "room:gets", shared.BuildCacheKey("room:gets"))
}

func TestInvalidateCachesWithoutRedis(t *testing.T) {
	c := cache.NewRedisCache(nil, mocks.NewOtel())

	assert.NotPanics(t, func() {
		shared.InvalidateCaches(context.Background(), c, "room:gets")
	})
}

type roomFields struct {
	Number   string   `db:"room_number"`
	Floor    int      `db:"floor"`
	HasAC    bool     `db:"has_ac"`
	Problems []string `db:"problems"`
	Ignored  string
}

type roomUpdate struct {
	Number   *string   `db:"room_number"`
	Floor    *int      `db:"floor"`
	HasAC    *bool     `db:"has_ac"`
	Problems *[]string `db:"problems"`
	Skipped  *string   `db:"-"`
}

func TestTransformFields(t *testing.T) {
	floor := 0
	hasAC := false
	problems := []string{"leaking tap"}
	skipped := "x"

	fields := shared.TransformFields(roomUpdate{Floor: &floor, HasAC: &hasAC, Problems: &problems, Skipped: &skipped})

	assert.Equal(t, map[string]any{
		"floor":    0,
		"has_ac":   false,
		"problems": []string{"leaking tap"},
	}, fields)

	assert.Empty(t, shared.TransformFields(roomUpdate{}))
}

func TestApplyFields(t *testing.T) {
	room := roomFields{Number: "101", Floor: 1, HasAC: true, Ignored: "keep"}

	shared.ApplyFields(&room, map[string]any{
		"floor":    3,
		"has_ac":   false,
		"problems": []string{"no hot water"},
		"unknown":  "value",
		// wrong kind is ignored rather than converted
		"room_number": 7,
	})

	assert.Equal(t, roomFields{Number: "101", Floor: 3, Problems: []string{"no hot water"}, Ignored: "keep"}, room)
}
