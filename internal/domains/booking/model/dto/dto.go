package dto

import (
	"strings"
	"time"

	"frontdesk/internal/domains/booking/model"
	"frontdesk/shared"
	"frontdesk/shared/constant"
	"frontdesk/shared/daterange"
)

const (
	ScopeAll     = "all"
	ScopeCurrent = "current"
	ScopeFuture  = "future"
	ScopePast    = "past"
)

type CreateBookingRequest struct {
	RoomID         string `json:"room_id"          validate:"required"`
	GuestName      string `json:"guest_name"       validate:"required,notblank,max=100"`
	NationalID     string `json:"national_id"      validate:"required,notblank,max=50"`
	Phone          string `json:"phone"            validate:"omitempty,max=20"`
	NumberOfPeople int    `json:"number_of_people" validate:"gte=1"`
	TotalAmount    int64  `json:"total_amount"     validate:"gte=0,lte=1000000000000"`
	PaidAmount     int64  `json:"paid_amount"      validate:"gte=0,lte=1000000000000"`
	BookingDate    string `json:"booking_date"     validate:"required,date"`
	DurationDays   int    `json:"duration_days"    validate:"gte=1,max=365"`
}

// ToModel builds the booking with the guest snapshot taken from the request.
// BookingDate must already have passed validation.
func (c *CreateBookingRequest) ToModel(guestID string) model.Booking {
	bookingDate, _ := daterange.Parse(c.BookingDate)

	return model.Booking{
		RoomID:         c.RoomID,
		GuestID:        guestID,
		GuestName:      strings.TrimSpace(c.GuestName),
		NationalID:     strings.TrimSpace(c.NationalID),
		Phone:          strings.TrimSpace(c.Phone),
		NumberOfPeople: c.NumberOfPeople,
		TotalAmount:    c.TotalAmount,
		PaidAmount:     c.PaidAmount,
		BookingDate:    bookingDate,
		DurationDays:   c.DurationDays,
	}
}

type ExtendBookingRequest struct {
	ExtraDays   int   `json:"extra_days"   validate:"gte=1,max=365"`
	ExtraAmount int64 `json:"extra_amount" validate:"gte=0,lte=1000000000000"`
}

type UpdatePaymentRequest struct {
	PaidAmount int64 `json:"paid_amount" validate:"gte=0,lte=1000000000000"`
}

type CreateBookingResponse struct {
	ID string `json:"id"`
}

type BookingResponse struct {
	ID             string  `json:"id"`
	RoomID         string  `json:"room_id"`
	GuestID        string  `json:"guest_id"`
	GuestName      string  `json:"guest_name"`
	NationalID     string  `json:"national_id"`
	Phone          string  `json:"phone"`
	NumberOfPeople int     `json:"number_of_people"`
	TotalAmount    int64   `json:"total_amount"`
	PaidAmount     int64   `json:"paid_amount"`
	Outstanding    int64   `json:"outstanding"`
	BookingDate    string  `json:"booking_date"`
	DurationDays   int     `json:"duration_days"`
	EndDate        string  `json:"end_date"`
	CheckInAt      *string `json:"check_in_at"`
	CheckOutAt     *string `json:"check_out_at"`
	Status         string  `json:"status"`
}

func (r *BookingResponse) FromModel(m model.Booking) {
	r.ID = m.ID
	r.RoomID = m.RoomID
	r.GuestID = m.GuestID
	r.GuestName = m.GuestName
	r.NationalID = m.NationalID
	r.Phone = m.Phone
	r.NumberOfPeople = m.NumberOfPeople
	r.TotalAmount = m.TotalAmount
	r.PaidAmount = m.PaidAmount
	r.Outstanding = m.Outstanding()
	r.BookingDate = m.BookingDate.String()
	r.DurationDays = m.DurationDays
	r.EndDate = m.EndDate().String()
	r.CheckInAt = formatTimestamp(m.CheckInAt)
	r.CheckOutAt = formatTimestamp(m.CheckOutAt)
	r.Status = string(m.Status())
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}

	s := t.Format(constant.DateTimeFormat)

	return &s
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
