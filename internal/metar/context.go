package metar

import (
	"fmt"
	"strings"
	"time"
)

// RolloverPolicy decides which month a report day belongs to.
type RolloverPolicy int

const (
	// RolloverStrict places the report day in Context.Month. A day that does
	// not exist in that month is a decode error.
	RolloverStrict RolloverPolicy = iota

	// RolloverPreviousMonth moves the report into the previous month when its
	// day is later than Context.Day, e.g. a "312350Z" report read on the 1st.
	RolloverPreviousMonth
)

func (p RolloverPolicy) String() string {
	switch p {
	case RolloverStrict:
		return "strict"
	case RolloverPreviousMonth:
		return "previous"
	default:
		return fmt.Sprintf("RolloverPolicy(%d)", int(p))
	}
}

// ParseRolloverPolicy accepts "strict" or "previous" (case-insensitive).
func ParseRolloverPolicy(s string) (RolloverPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return RolloverStrict, nil
	case "previous", "previous_month":
		return RolloverPreviousMonth, nil
	default:
		return RolloverStrict, fmt.Errorf("unknown month rollover policy %q", s)
	}
}

// Context carries the facts a report does not contain itself. It is read-only
// for the duration of a parse.
type Context struct {
	Year  int
	Month time.Month

	// Day is the reference day of month used by RolloverPreviousMonth.
	// Zero disables rollover.
	Day int

	Rollover RolloverPolicy
}

// ForMonth returns a strict context for the given year and month.
func ForMonth(year int, month time.Month) Context {
	return Context{Year: year, Month: month, Rollover: RolloverStrict}
}

// ContextAt returns a context anchored on t (in UTC) that rolls reports dated
// after t's day back into the previous month.
func ContextAt(t time.Time) Context {
	t = t.UTC()
	return Context{
		Year:     t.Year(),
		Month:    t.Month(),
		Day:      t.Day(),
		Rollover: RolloverPreviousMonth,
	}
}

// WithRollover returns a copy of c using policy p.
func (c Context) WithRollover(p RolloverPolicy) Context {
	c.Rollover = p
	return c
}

// resolveMonth returns the year and month a report day falls in.
func (c Context) resolveMonth(day int) (int, time.Month) {
	if c.Rollover == RolloverPreviousMonth && c.Day > 0 && day > c.Day {
		if c.Month == time.January {
			return c.Year - 1, time.December
		}
		return c.Year, c.Month - 1
	}
	return c.Year, c.Month
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
