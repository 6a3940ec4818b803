package model

import (
	"cmp"
	"slices"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldRoomNumber  = "room_number"
	FieldFloor       = "floor"
	FieldCategory    = "category"
	FieldBeds        = "beds"
	FieldBathrooms   = "bathrooms"
	FieldHasAC       = "has_ac"
	FieldDescription = "description"
	FieldProblems    = "problems"
)

type Category string

const (
	CategoryDouble     Category = "Double"
	CategoryCouple     Category = "Couple"
	CategoryConnecting Category = "Connecting"
)

var maxGuests = map[Category]int{
	CategoryCouple:     2,
	CategoryDouble:     5,
	CategoryConnecting: 10,
}

// MaxGuests is how many people a booking of this category may bring. Unknown
// categories hold nobody.
func (c Category) MaxGuests() int {
	return maxGuests[c]
}

func (c Category) Valid() bool {
	_, ok := maxGuests[c]

	return ok
}

type Room struct {
	ID          string         `db:"id"`
	RoomNumber  string         `db:"room_number"`
	Floor       int            `db:"floor"`
	Category    Category       `db:"category"`
	Beds        int            `db:"beds"`
	Bathrooms   int            `db:"bathrooms"`
	HasAC       bool           `db:"has_ac"`
	Description string         `db:"description"`
	Problems    pq.StringArray `db:"problems"`
}

func (r Room) Clone() Room {
	r.Problems = slices.Clone(r.Problems)

	return r
}

// Sort orders rooms the way the front desk walks them: by floor, then by room
// number.
func Sort(rooms []Room) {
	slices.SortStableFunc(rooms, func(a, b Room) int {
		if c := cmp.Compare(a.Floor, b.Floor); c != 0 {
			return c
		}

		return cmp.Compare(a.RoomNumber, b.RoomNumber)
	})
}
