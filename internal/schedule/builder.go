package schedule

// Section is one raw meeting pattern as extracted from the schedule site:
// three opaque string fields, not yet normalized.
type Section struct {
	Location string
	Days     string
	Time     string
}

// BuildBookings normalizes one raw section record into bookings, one per
// meeting day. A section with no meeting days yields no bookings. A TBA
// time still yields bookings (carrying the (0,0) sentinel) so the record
// survives into the calendar for inspection; occupancy checks skip them.
func BuildBookings(location, daysText, timeText string) ([]Booking, error) {
	if location == "" {
		return nil, &ParseError{Field: "location", Value: location, Reason: "missing location"}
	}

	start, end, err := NormalizeTimeRange(timeText)
	if err != nil {
		return nil, err
	}

	days, err := ExpandDays(daysText)
	if err != nil {
		return nil, err
	}

	bookings := make([]Booking, 0, len(days))
	for _, day := range days {
		bookings = append(bookings, Booking{
			Location: location,
			Day:      day,
			Start:    start,
			End:      end,
		})
	}
	return bookings, nil
}
