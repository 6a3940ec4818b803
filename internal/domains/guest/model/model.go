package model

import (
	"cmp"
	"slices"
	"strings"
)

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID         = "id"
	FieldName       = "name"
	FieldNationalID = "national_id"
	FieldPhone      = "phone"
)

// Guest is identified by NationalID; ID is the internal reference bookings
// point at.
type Guest struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	NationalID string `db:"national_id"`
	Phone      string `db:"phone"`
}

// Matches reports whether term appears in the name, national id or phone,
// ignoring case.
func (g Guest) Matches(term string) bool {
	term = strings.ToLower(term)

	return strings.Contains(strings.ToLower(g.Name), term) ||
		strings.Contains(strings.ToLower(g.NationalID), term) ||
		strings.Contains(strings.ToLower(g.Phone), term)
}

func Sort(guests []Guest) {
	slices.SortStableFunc(guests, func(a, b Guest) int {
		if c := cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}

		return cmp.Compare(a.NationalID, b.NationalID)
	})
}
