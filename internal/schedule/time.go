package schedule

import (
	"strconv"
	"strings"
)

// NormalizeTimeRange converts a raw time-range string from the schedule
// site (e.g. "9-10am", "11-1:30pm", "TBA") into a pair of HHMM values.
// The placeholders "TBA" and "NA" yield the (0, 0) sentinel.
//
// The source omits the meridiem on the start time when it matches the end
// time's, so "9-10am" means 9am-10am: an am/pm marker on the end side is
// propagated to an unmarked start side before conversion.
func NormalizeTimeRange(text string) (Minutes, Minutes, error) {
	text = strings.TrimSpace(text)
	if text == "TBA" || text == "NA" {
		return 0, 0, nil
	}

	parts := strings.Split(text, "-")
	if len(parts) != 2 {
		return 0, 0, &ParseError{Field: "time", Value: text, Reason: "expected a single '-' separator"}
	}
	startText := strings.TrimSpace(parts[0])
	endText := strings.TrimSpace(parts[1])

	if marker := meridiem(endText); marker != "" && meridiem(startText) == "" {
		startText += marker
	}

	start, err := toHHMM(startText)
	if err != nil {
		return 0, 0, err
	}
	end, err := toHHMM(endText)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// meridiem returns "am" or "pm" if s carries that marker, else "".
func meridiem(s string) string {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "am"):
		return "am"
	case strings.Contains(s, "pm"):
		return "pm"
	}
	return ""
}

// toHHMM converts one side of a range ("9", "1:30pm") to the HHMM encoding.
func toHHMM(text string) (Minutes, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	isPM := strings.Contains(s, "pm")
	s = strings.ReplaceAll(s, "am", "")
	s = strings.ReplaceAll(s, "pm", "")
	s = strings.TrimSpace(s)

	hourText, minuteText := s, "00"
	if i := strings.Index(s, ":"); i >= 0 {
		hourText, minuteText = s[:i], s[i+1:]
	}

	hour, err := strconv.Atoi(hourText)
	if err != nil {
		return 0, &ParseError{Field: "time", Value: text, Reason: "non-numeric hour"}
	}
	minute, err := strconv.Atoi(minuteText)
	if err != nil {
		return 0, &ParseError{Field: "time", Value: text, Reason: "non-numeric minute"}
	}
	if hour < 1 || hour > 12 {
		return 0, &ParseError{Field: "time", Value: text, Reason: "hour outside 1-12"}
	}
	if minute < 0 || minute > 59 {
		return 0, &ParseError{Field: "time", Value: text, Reason: "minute outside 0-59"}
	}

	if isPM && hour < 12 {
		hour += 12
	} else if !isPM && hour == 12 {
		hour = 0
	}
	return Minutes(hour*100 + minute), nil
}
