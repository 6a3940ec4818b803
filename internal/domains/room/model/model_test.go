package model_test

import (
	"testing"

	"frontdesk/internal/domains/room/model"

	"github.com/stretchr/testify/assert"
)

func TestCategory_MaxGuests(t *testing.T) {
	tests := []struct {
		category model.Category
		expected int
		valid    bool
	}{
		{category: model.CategoryCouple, expected: 2, valid: true},
		{category: model.CategoryDouble, expected: 5, valid: true},
		{category: model.CategoryConnecting, expected: 10, valid: true},
		{category: "Suite", expected: 0, valid: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.category.MaxGuests())
			assert.Equal(t, tt.valid, tt.category.Valid())
		})
	}
}

func TestSort(t *testing.T) {
	rooms := []model.Room{
		{ID: "c", Floor: 2, RoomNumber: "201"},
		{ID: "b", Floor: 1, RoomNumber: "102"},
		{ID: "a", Floor: 1, RoomNumber: "101"},
	}

	model.Sort(rooms)

	assert.Equal(t, "a", rooms[0].ID)
	assert.Equal(t, "b", rooms[1].ID)
	assert.Equal(t, "c", rooms[2].ID)
}

func TestRoom_Clone(t *testing.T) {
	room := model.Room{Problems: []string{"broken lamp"}}

	clone := room.Clone()
	clone.Problems[0] = "fixed"

	assert.Equal(t, "broken lamp", room.Problems[0])
}
