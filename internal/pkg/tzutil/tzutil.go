// Package tzutil holds the timezone and interval helpers shared by the
// availability engine. Every function is pure; locations are always passed
// explicitly.
package tzutil

import (
	"math"
	"strings"
	"time"

	"appointment-engine/internal/pkg/errs"
)

// Load resolves an IANA zone name. An empty name resolves to UTC.
func Load(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "UTC") {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errs.Mark(errs.Wrapf(err, "load timezone %q", name), errs.ErrUnknownTimezone)
	}
	return loc, nil
}

// LoadOr resolves name and falls back to fallback when it cannot be loaded.
// The boolean reports whether the fallback was used.
func LoadOr(name string, fallback *time.Location) (*time.Location, bool) {
	loc, err := Load(name)
	if err != nil {
		if fallback == nil {
			fallback = time.UTC
		}
		return fallback, true
	}
	return loc, false
}

// HoursToDuration converts fractional hours to a duration rounded to the second.
func HoursToDuration(hours float64) time.Duration {
	return time.Duration(math.Round(hours*3600)) * time.Second
}

// Round rounds v half away from zero to the given number of decimal places.
// The scaled value is nudged by one unit in the last place of its magnitude so
// decimal ties such as 0.285 round up even when their binary form sits just
// below the tie.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	n := v * p
	n += math.Copysign(math.Abs(n)*0x1p-52, n)
	return math.Round(n) / p
}

// AtHour returns the wall-clock instant at the fractional hour on the calendar
// date of day in loc. 9.5 is 09:30; 24 is midnight of the next date.
func AtHour(day Date, hour float64, loc *time.Location) time.Time {
	h := int(hour)
	m := int(math.Round((hour - float64(h)) * 60))
	return time.Date(day.Year, day.Month, day.Day, h, m, 0, 0, loc)
}

// StartOfDay returns 00:00 of t's date in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	return DateOf(t, loc).Start(loc)
}

// EndOfDay returns the last representable instant of t's date in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	return DateOf(t, loc).AddDays(1).Start(loc).Add(-time.Nanosecond)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Date is a calendar date without a zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t observed in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) Start(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC)
	return DateOf(t, time.UTC)
}

func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Weekday()
}

func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

func (d Date) After(o Date) bool {
	return o.Before(d)
}

func (d Date) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)
}

// DatesBetween lists every date from first to last inclusive.
func DatesBetween(first, last Date) []Date {
	var dates []Date
	for d := first; !d.After(last); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}

// DatesSpanned lists the dates in loc touched by the half-open interval
// [start, end). An interval ending exactly at midnight does not touch the
// following date.
func DatesSpanned(start, end time.Time, loc *time.Location) []Date {
	last := end
	if end.After(start) {
		last = end.Add(-time.Nanosecond)
	}
	return DatesBetween(DateOf(start, loc), DateOf(last, loc))
}
