package metar

import "unicode"

// RawToken is one whitespace-delimited group of a report. Text is kept
// verbatim; Offset is the byte position of the group in the original report.
type RawToken struct {
	Text   string
	Offset int
}

func (t RawToken) String() string {
	return t.Text
}

// Tokenize splits a report on runs of whitespace, preserving order.
// Empty or all-whitespace input yields no tokens.
func Tokenize(report string) []RawToken {
	var tokens []RawToken
	start := -1
	for i, r := range report {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, RawToken{Text: report[start:i], Offset: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, RawToken{Text: report[start:], Offset: start})
	}
	return tokens
}
