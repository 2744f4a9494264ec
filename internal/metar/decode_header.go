package metar

import (
	"strconv"
	"time"
)

// atoi converts digits already validated by a pattern.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// optionalInt returns nil for "/" placeholders and the number otherwise.
func optionalInt(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func decodeReportKind(tokens []RawToken, _ *errorSink, _ Context) *ReportKind {
	if len(tokens) == 0 {
		return nil
	}
	kind := ReportKind(tokens[0].Text)
	return &kind
}

// decodeAirport returns the first airport token verbatim. The code format is
// not validated beyond what the classifier already checked.
func decodeAirport(tokens []RawToken, errs *errorSink, _ Context) *string {
	if len(tokens) == 0 {
		errs.add("Airport ICAO code not found")
		return nil
	}
	code := tokens[0].Text
	return &code
}

// decodeObservationDayTime decodes DDHHMM[Z] and places it in the month the
// context resolves for that day.
func decodeObservationDayTime(tokens []RawToken, errs *errorSink, ctx Context) *ObservationDayTime {
	if len(tokens) == 0 {
		errs.add("Observation day and time not found")
		return nil
	}
	tok := tokens[0]
	m := dayTimeRe.FindStringSubmatch(tok.Text)
	if m == nil {
		errs.addf("Observation day and time %q at offset %d is not in DDHHMMZ format", tok.Text, tok.Offset)
		return nil
	}

	day, hour, minute := atoi(m[1]), atoi(m[2]), atoi(m[3])
	switch {
	case day < 1 || day > 31:
		errs.addf("Observation day %02d in %q is out of range", day, tok.Text)
		return nil
	case hour > 23:
		errs.addf("Observation hour %02d in %q is out of range", hour, tok.Text)
		return nil
	case minute > 59:
		errs.addf("Observation minute %02d in %q is out of range", minute, tok.Text)
		return nil
	}

	if ctx.Month < time.January || ctx.Month > time.December {
		errs.addf("Cannot resolve observation date for %q: current month %d is invalid", tok.Text, int(ctx.Month))
		return nil
	}
	year, month := ctx.resolveMonth(day)
	if day > daysIn(year, month) {
		errs.addf("Observation day %02d in %q does not exist in %s %d", day, tok.Text, month, year)
		return nil
	}

	return &ObservationDayTime{
		Day:    day,
		Hour:   hour,
		Minute: minute,
		Time:   time.Date(year, month, day, hour, minute, 0, 0, time.UTC),
	}
}

func decodeModifier(tokens []RawToken, errs *errorSink, _ Context) *Modifier {
	if len(tokens) == 0 {
		return nil
	}
	if len(tokens) > 1 {
		errs.addf("Multiple report modifiers found, using %q", tokens[0].Text)
	}
	var mod Modifier
	switch text := tokens[0].Text; {
	case text == "AUTO":
		mod = ModifierAuto
	case text == "NIL":
		mod = ModifierNil
	case text == "COR" || isModifier(text):
		mod = ModifierCorrected
	default:
		errs.addf("Unknown report modifier %q", text)
		return nil
	}
	return &mod
}
