package dto

import (
	"strings"

	"frontdesk/internal/domains/guest/model"
	"frontdesk/shared"
)

type CreateGuestRequest struct {
	Name       string `json:"name"        validate:"required,notblank,max=100"`
	NationalID string `json:"national_id" validate:"required,notblank,max=50"`
	Phone      string `json:"phone"       validate:"omitempty,max=20"`
}

func (c *CreateGuestRequest) ToModel() model.Guest {
	return model.Guest{
		Name:       strings.TrimSpace(c.Name),
		NationalID: strings.TrimSpace(c.NationalID),
		Phone:      strings.TrimSpace(c.Phone),
	}
}

type UpdateGuestRequest struct {
	Name       *string `db:"name"        json:"name"        validate:"omitempty,notblank,max=100"`
	NationalID *string `db:"national_id" json:"national_id" validate:"omitempty,notblank,max=50"`
	Phone      *string `db:"phone"       json:"phone"       validate:"omitempty,max=20"`
}

type CreateGuestResponse struct {
	ID string `json:"id"`
}

type GuestResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	NationalID string `json:"national_id"`
	Phone      string `json:"phone"`
}

func (r *GuestResponse) FromModel(m model.Guest) {
	r.ID = m.ID
	r.Name = m.Name
	r.NationalID = m.NationalID
	r.Phone = m.Phone
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		r.Guests[i].FromModel(mod)
	}
}
