package validator_test

import (
	"strings"
	"testing"

	"frontdesk/shared/validator"

	"github.com/stretchr/testify/assert"
)

type stayRequest struct {
	GuestName    string `json:"guest_name"    validate:"required,notblank,max=100"`
	BookingDate  string `json:"booking_date"  validate:"required,date"`
	DurationDays int    `json:"duration_days" validate:"gte=1"`
	Category     string `json:"category"      validate:"omitempty,oneof=Double Couple Connecting"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        stayRequest
		expectError string
	}{
		{
			name: "valid struct",
			data: stayRequest{GuestName: "Budi", BookingDate: "2024-06-10", DurationDays: 3, Category: "Double"},
		},
		{
			name:        "missing required field",
			data:        stayRequest{BookingDate: "2024-06-10", DurationDays: 3},
			expectError: "guest_name is required",
		},
		{
			name:        "blank name",
			data:        stayRequest{GuestName: "   ", BookingDate: "2024-06-10", DurationDays: 3},
			expectError: "guest_name must not be blank",
		},
		{
			name:        "malformed date",
			data:        stayRequest{GuestName: "Budi", BookingDate: "10/06/2024", DurationDays: 3},
			expectError: "booking_date must be a date formatted as YYYY-MM-DD",
		},
		{
			name:        "zero duration",
			data:        stayRequest{GuestName: "Budi", BookingDate: "2024-06-10"},
			expectError: "duration_days must be greater than or equal to 1",
		},
		{
			name:        "invalid category",
			data:        stayRequest{GuestName: "Budi", BookingDate: "2024-06-10", DurationDays: 1, Category: "Suite"},
			expectError: "category must be one of Double Couple Connecting",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectError == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.expectError)
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "valid date", field: "2024-02-29", tag: "date"},
		{name: "invalid leap day", field: "2023-02-29", tag: "date", expectError: true},
		{name: "valid number in range", field: 25, tag: "gte=0,lte=100"},
		{name: "number out of range", field: 150, tag: "gte=0,lte=100", expectError: true},
		{name: "valid oneof", field: "current", tag: "oneof=all current future past"},
		{name: "invalid oneof", field: "soon", tag: "oneof=all current future past", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:     "valid JSON",
			jsonBody: `{"guest_name":"Budi","booking_date":"2024-06-10","duration_days":2}`,
		},
		{
			name:        "invalid value",
			jsonBody:    `{"guest_name":"Budi","booking_date":"2024-06-10","duration_days":0}`,
			expectError: true,
		},
		{
			name:        "unknown field",
			jsonBody:    `{"guest_name":"Budi","booking_date":"2024-06-10","duration_days":2,"vip":true}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"guest_name":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data stayRequest

			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStructListElement(t *testing.T) {
	type roomRequest struct {
		Problems []string `json:"problems" validate:"omitempty,dive,notblank"`
	}

	err := validator.ValidateStruct(&roomRequest{Problems: []string{"leaky tap", " "}})

	assert.EqualError(t, err, "problems[1] must not be blank")
}

func TestValidateVarMessage(t *testing.T) {
	err := validator.ValidateVar(0, "gte=1")

	assert.EqualError(t, err, "value must be greater than or equal to 1")
}
