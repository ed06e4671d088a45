package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandDays(t *testing.T) {
	testCases := []struct {
		name      string
		code      string
		expected  []Weekday
		expectErr bool
	}{
		{
			name:     "Single-letter tokens",
			code:     "MWF",
			expected: []Weekday{Monday, Wednesday, Friday},
		},
		{
			name:     "Double-letter tokens",
			code:     "TuTh",
			expected: []Weekday{Tuesday, Thursday},
		},
		{
			name:     "Mixed tokens",
			code:     "MTuWThF",
			expected: []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday},
		},
		{
			name:     "Weekend tokens",
			code:     "SaSu",
			expected: []Weekday{Saturday, Sunday},
		},
		{
			name:     "Empty code means no meeting days",
			code:     "",
			expected: nil,
		},
		{
			name:      "Unknown token",
			code:      "MXF",
			expectErr: true,
		},
		{
			name:      "Lowercase leading run",
			code:      "mwf",
			expectErr: true,
		},
		{
			name:      "Digits in code",
			code:      "M2F",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			days, err := ExpandDays(tc.code)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, days)
			}
		})
	}
}
