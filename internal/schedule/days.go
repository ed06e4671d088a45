package schedule

import "regexp"

var dayTokenRe = regexp.MustCompile(`[A-Z][a-z]*`)

// ExpandDays splits a compact day-code string ("MWF", "TuTh") into its
// weekday tokens. Tokens start at each capital letter and run through any
// following lowercase letters. An empty code is valid and yields no days
// (sections with no recurring meeting day, e.g. independent study).
func ExpandDays(code string) ([]Weekday, error) {
	if code == "" {
		return nil, nil
	}

	tokens := dayTokenRe.FindAllString(code, -1)

	// Anything outside the matched tokens (a leading lowercase run, digits,
	// punctuation) means the code is not a day string at all.
	matched := 0
	for _, tok := range tokens {
		matched += len(tok)
	}
	if matched != len(code) {
		return nil, &ParseError{Field: "days", Value: code, Reason: "unrecognized characters in day code"}
	}

	days := make([]Weekday, 0, len(tokens))
	for _, tok := range tokens {
		d := Weekday(tok)
		if !d.Valid() {
			return nil, &ParseError{Field: "days", Value: code, Reason: "unknown day token " + tok}
		}
		days = append(days, d)
	}
	return days, nil
}
