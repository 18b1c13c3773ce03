package booking

import "time"

// StayDays computes the length of a stay in whole days.  The length is
// the difference between the start of day of now and the start of day of
// checkout, both in UTC, floored at one day: a same-day or partial-day
// checkout still charges one full night.  Checkout must be strictly
// after now, otherwise ErrInvalidStayWindow is returned.
func StayDays(now, checkout time.Time) (int, error) {
	if !checkout.After(now) {
		return 0, ErrInvalidStayWindow
	}
	days := int(startOfDay(checkout).Sub(startOfDay(now)).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days, nil
}

// Quote returns the total charge in minor currency units for a stay of
// the given length at the given nightly rate.
func Quote(rateCents uint64, days int) uint64 {
	return rateCents * uint64(days)
}

// startOfDay truncates t to midnight UTC.
func startOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
