package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBookings(t *testing.T) {
	t.Run("One booking per meeting day", func(t *testing.T) {
		bookings, err := BuildBookings("HC-100", "MWF", "9-10am")
		require.NoError(t, err)
		require.Len(t, bookings, 3)

		days := []Weekday{Monday, Wednesday, Friday}
		for i, b := range bookings {
			assert.Equal(t, "HC-100", b.Location)
			assert.Equal(t, days[i], b.Day)
			assert.Equal(t, Minutes(900), b.Start)
			assert.Equal(t, Minutes(1000), b.End)
		}
	})

	t.Run("No meeting days yields no bookings", func(t *testing.T) {
		bookings, err := BuildBookings("HC-100", "", "9-10am")
		require.NoError(t, err)
		assert.Empty(t, bookings)
	})

	t.Run("TBA time still yields tagged bookings", func(t *testing.T) {
		bookings, err := BuildBookings("LA-200", "TuTh", "TBA")
		require.NoError(t, err)
		require.Len(t, bookings, 2)
		for _, b := range bookings {
			assert.True(t, b.TBA())
		}
	})

	t.Run("Missing location is rejected", func(t *testing.T) {
		_, err := BuildBookings("", "MWF", "9-10am")
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "location", perr.Field)
	})

	t.Run("Bad time range is rejected", func(t *testing.T) {
		_, err := BuildBookings("HC-100", "MWF", "whenever")
		assert.Error(t, err)
	})

	t.Run("Bad day code is rejected", func(t *testing.T) {
		_, err := BuildBookings("HC-100", "XYZ", "9-10am")
		assert.Error(t, err)
	})
}
