package daterange

// Interval is an inclusive run of days, First through Last.
type Interval struct {
	First Date
	Last  Date
}

// Occupied is the interval a stay of durationDays starting on start reserves.
// A 3 day stay from Jun 10 occupies Jun 10..Jun 12; the guest leaves on Jun 13.
func Occupied(start Date, durationDays int) Interval {
	return Interval{First: start, Last: start.AddDays(durationDays - 1)}
}

// FromHalfOpen converts a [start, end) request into the inclusive interval of
// nights it asks for. The result is invalid when end is not after start.
func FromHalfOpen(start, end Date) Interval {
	return Interval{First: start, Last: end.AddDays(-1)}
}

func (i Interval) Valid() bool {
	return !i.First.IsZero() && !i.Last.Before(i.First)
}

func (i Interval) Contains(d Date) bool {
	return !d.Before(i.First) && !d.After(i.Last)
}

// Days is the number of days in the interval.
func (i Interval) Days() int {
	return i.First.DaysUntil(i.Last) + 1
}

// End is the first day after the interval, the checkout day of a stay.
func (i Interval) End() Date {
	return i.Last.AddDays(1)
}

// Overlaps reports whether the request shares at least one day with occupied.
func (i Interval) Overlaps(occupied Interval) bool {
	return Overlaps(i, occupied)
}

// Overlaps reports whether request shares a day with occupied: either end of
// the request falls inside occupied, or occupied sits strictly inside request.
func Overlaps(request, occupied Interval) bool {
	if occupied.Contains(request.First) || occupied.Contains(request.Last) {
		return true
	}

	return occupied.First.After(request.First) && occupied.Last.Before(request.Last)
}
