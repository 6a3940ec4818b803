package dto

import (
	"strings"

	"frontdesk/internal/domains/room/model"
	"frontdesk/shared"
)

type CreateRoomRequest struct {
	RoomNumber  string   `json:"room_number" validate:"required,notblank,max=10"`
	Floor       int      `json:"floor"       validate:"gte=0"`
	Category    string   `json:"category"    validate:"required,oneof=Double Couple Connecting"`
	Beds        int      `json:"beds"        validate:"gte=1"`
	Bathrooms   int      `json:"bathrooms"   validate:"gte=0"`
	HasAC       bool     `json:"has_ac"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Problems    []string `json:"problems"    validate:"omitempty,dive,notblank"`
}

func (c *CreateRoomRequest) ToModel() model.Room {
	problems := c.Problems
	if problems == nil {
		problems = []string{}
	}

	return model.Room{
		RoomNumber:  strings.TrimSpace(c.RoomNumber),
		Floor:       c.Floor,
		Category:    model.Category(c.Category),
		Beds:        c.Beds,
		Bathrooms:   c.Bathrooms,
		HasAC:       c.HasAC,
		Description: c.Description,
		Problems:    problems,
	}
}

// UpdateRoomRequest is a partial update; only the fields present in the body
// are written.
type UpdateRoomRequest struct {
	RoomNumber  *string   `db:"room_number" json:"room_number" validate:"omitempty,notblank,max=10"`
	Floor       *int      `db:"floor"       json:"floor"       validate:"omitempty,gte=0"`
	Category    *string   `db:"category"    json:"category"    validate:"omitempty,oneof=Double Couple Connecting"`
	Beds        *int      `db:"beds"        json:"beds"        validate:"omitempty,gte=1"`
	Bathrooms   *int      `db:"bathrooms"   json:"bathrooms"   validate:"omitempty,gte=0"`
	HasAC       *bool     `db:"has_ac"      json:"has_ac"`
	Description *string   `db:"description" json:"description" validate:"omitempty,max=500"`
	Problems    *[]string `db:"problems"    json:"problems"    validate:"omitempty,dive,notblank"`
}

type CreateRoomResponse struct {
	ID string `json:"id"`
}

type RoomResponse struct {
	ID          string   `json:"id"`
	RoomNumber  string   `json:"room_number"`
	Floor       int      `json:"floor"`
	Category    string   `json:"category"`
	MaxGuests   int      `json:"max_guests"`
	Beds        int      `json:"beds"`
	Bathrooms   int      `json:"bathrooms"`
	HasAC       bool     `json:"has_ac"`
	Description string   `json:"description"`
	Problems    []string `json:"problems"`
}

func (r *RoomResponse) FromModel(m model.Room) {
	r.ID = m.ID
	r.RoomNumber = m.RoomNumber
	r.Floor = m.Floor
	r.Category = string(m.Category)
	r.MaxGuests = m.Category.MaxGuests()
	r.Beds = m.Beds
	r.Bathrooms = m.Bathrooms
	r.HasAC = m.HasAC
	r.Description = m.Description

	r.Problems = []string(m.Problems)
	if r.Problems == nil {
		r.Problems = []string{}
	}
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

type RoomIDsResponse struct {
	RoomIDs []string `json:"room_ids"`
}

// OverviewResponse splits the inventory for a date range.
type OverviewResponse struct {
	Start            string         `json:"start"`
	End              string         `json:"end"`
	Available        []RoomResponse `json:"available"`
	OccupiedOrBooked []RoomResponse `json:"occupied_or_booked"`
}
