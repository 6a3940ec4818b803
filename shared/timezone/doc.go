// Package timezone pins every wall-clock reading of the service to the
// configured APP_TIMEZONE (an IANA name such as "Asia/Jakarta").
//
// The front desk decides which bookings are current or future by comparing
// calendar dates against "today", so "today" has to be computed in the hotel's
// timezone rather than the host's:
//
//	now := timezone.Now()
//	local := timezone.ToAppTime(someTime)
//	t, err := timezone.Parse("2006-01-02", "2024-06-10")
//
// Services depend on a Clock so tests can substitute FixedClock.
package timezone
