package model

import (
	"time"

	"frontdesk/shared/daterange"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldSeq            = "seq"
	FieldRoomID         = "room_id"
	FieldGuestID        = "guest_id"
	FieldGuestName      = "guest_name"
	FieldNationalID     = "national_id"
	FieldPhone          = "phone"
	FieldNumberOfPeople = "number_of_people"
	FieldTotalAmount    = "total_amount"
	FieldPaidAmount     = "paid_amount"
	FieldBookingDate    = "booking_date"
	FieldDurationDays   = "duration_days"
	FieldCheckInAt      = "check_in_at"
	FieldCheckOutAt     = "check_out_at"
)

const (
	// MaxStayDays bounds a stay including its extensions.
	MaxStayDays = 365
	// MaxAmount bounds total and paid amounts, in minor currency units.
	MaxAmount int64 = 1_000_000_000_000
)

// Status is derived from the check-in and check-out timestamps and never
// stored.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Booking reserves one room for DurationDays nights starting on BookingDate.
// GuestName, NationalID and Phone are a snapshot taken at creation and are not
// refreshed when the guest record changes.
type Booking struct {
	ID             string         `db:"id"`
	Seq            int64          `db:"seq" insert:"-"`
	RoomID         string         `db:"room_id"`
	GuestID        string         `db:"guest_id"`
	GuestName      string         `db:"guest_name"`
	NationalID     string         `db:"national_id"`
	Phone          string         `db:"phone"`
	NumberOfPeople int            `db:"number_of_people"`
	TotalAmount    int64          `db:"total_amount"`
	PaidAmount     int64          `db:"paid_amount"`
	BookingDate    daterange.Date `db:"booking_date"`
	DurationDays   int            `db:"duration_days"`
	CheckInAt      *time.Time     `db:"check_in_at"`
	CheckOutAt     *time.Time     `db:"check_out_at"`
}

func (b Booking) IsCheckedIn() bool {
	return b.CheckInAt != nil
}

func (b Booking) IsCheckedOut() bool {
	return b.CheckOutAt != nil
}

func (b Booking) Status() Status {
	switch {
	case b.IsCheckedOut():
		return StatusCompleted
	case b.IsCheckedIn():
		return StatusActive
	default:
		return StatusPending
	}
}

// Occupied is the inclusive run of nights the booking reserves.
func (b Booking) Occupied() daterange.Interval {
	return daterange.Occupied(b.BookingDate, b.DurationDays)
}

// EndDate is the checkout day, the first day the room is free again.
func (b Booking) EndDate() daterange.Date {
	return b.BookingDate.AddDays(b.DurationDays)
}

func (b Booking) Outstanding() int64 {
	return b.TotalAmount - b.PaidAmount
}

// Patch carries the fields to overwrite in a booking; nil fields are left
// untouched.
type Patch struct {
	GuestName      *string
	NationalID     *string
	Phone          *string
	NumberOfPeople *int
	TotalAmount    *int64
	PaidAmount     *int64
	BookingDate    *daterange.Date
	DurationDays   *int
	CheckInAt      *time.Time
	CheckOutAt     *time.Time
}

func (p Patch) Apply(b *Booking) {
	if p.GuestName != nil {
		b.GuestName = *p.GuestName
	}

	if p.NationalID != nil {
		b.NationalID = *p.NationalID
	}

	if p.Phone != nil {
		b.Phone = *p.Phone
	}

	if p.NumberOfPeople != nil {
		b.NumberOfPeople = *p.NumberOfPeople
	}

	if p.TotalAmount != nil {
		b.TotalAmount = *p.TotalAmount
	}

	if p.PaidAmount != nil {
		b.PaidAmount = *p.PaidAmount
	}

	if p.BookingDate != nil {
		b.BookingDate = *p.BookingDate
	}

	if p.DurationDays != nil {
		b.DurationDays = *p.DurationDays
	}

	if p.CheckInAt != nil {
		at := *p.CheckInAt
		b.CheckInAt = &at
	}

	if p.CheckOutAt != nil {
		at := *p.CheckOutAt
		b.CheckOutAt = &at
	}
}

// Columns maps the set fields to their column names.
func (p Patch) Columns() map[string]any {
	columns := map[string]any{}

	if p.GuestName != nil {
		columns[FieldGuestName] = *p.GuestName
	}

	if p.NationalID != nil {
		columns[FieldNationalID] = *p.NationalID
	}

	if p.Phone != nil {
		columns[FieldPhone] = *p.Phone
	}

	if p.NumberOfPeople != nil {
		columns[FieldNumberOfPeople] = *p.NumberOfPeople
	}

	if p.TotalAmount != nil {
		columns[FieldTotalAmount] = *p.TotalAmount
	}

	if p.PaidAmount != nil {
		columns[FieldPaidAmount] = *p.PaidAmount
	}

	if p.BookingDate != nil {
		columns[FieldBookingDate] = *p.BookingDate
	}

	if p.DurationDays != nil {
		columns[FieldDurationDays] = *p.DurationDays
	}

	if p.CheckInAt != nil {
		columns[FieldCheckInAt] = *p.CheckInAt
	}

	if p.CheckOutAt != nil {
		columns[FieldCheckOutAt] = *p.CheckOutAt
	}

	return columns
}

// Clone returns a deep copy so callers cannot reach stored timestamps.
func (b Booking) Clone() Booking {
	if b.CheckInAt != nil {
		at := *b.CheckInAt
		b.CheckInAt = &at
	}

	if b.CheckOutAt != nil {
		at := *b.CheckOutAt
		b.CheckOutAt = &at
	}

	return b
}
