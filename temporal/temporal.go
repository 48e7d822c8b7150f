// Package temporal implements the proleptic-Gregorian date/time
// conversions and ISO-8601 formatters the codec's graph and driver
// layers build on (spec.md §4.4): epoch-day and nano-of-day
// conversions compatible with JSR-310 semantics, plus string
// formatting for Duration, LocalTime, Date, and zone offsets.
//
// None of these types are PackStream structures in their own right —
// the wire encoding of temporal values is an external concern (the
// driver decides which structure signatures carry them); this package
// only owns the arithmetic and formatting.
package temporal

import (
	"fmt"

	"github.com/boltstream/packstream/bigint"
)

const (
	nanosPerHour   = 3_600_000_000_000
	nanosPerMinute = 60_000_000_000
	nanosPerSecond = 1_000_000_000

	// days0000To1970 is the number of days from the proleptic date
	// 0000-01-01 to 1970-01-01, matching java.time.LocalDate.
	days0000To1970 = 719528
	// daysPer400YearCycle is the length of a Gregorian leap cycle.
	daysPer400YearCycle = 146097

	secondsPerDay = 86400
)

// Date is a proleptic Gregorian calendar date; Year may be negative or
// zero (spec.md §3).
type Date struct {
	Year  int
	Month int
	Day   int
}

// LocalTime is a time of day with nanosecond resolution.
type LocalTime struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// LocalDateTime combines a Date and a LocalTime.
type LocalDateTime struct {
	Date Date
	Time LocalTime
}

// IsLeapYear reports whether y is a leap year in the proleptic
// Gregorian calendar (spec.md §4.4).
func IsLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// LocalTimeToNanoOfDay converts t to a nanosecond-of-day offset.
func LocalTimeToNanoOfDay(t LocalTime) int64 {
	total := int64(t.Hour) * nanosPerHour
	total += int64(t.Minute) * nanosPerMinute
	total += int64(t.Second) * nanosPerSecond
	total += int64(t.Nanosecond)
	return total
}

// NanoOfDayToLocalTime is the inverse of LocalTimeToNanoOfDay, via
// successive divmod by (nanos/hour, nanos/minute, nanos/second).
func NanoOfDayToLocalTime(n int64) LocalTime {
	hour := n / nanosPerHour
	n -= hour * nanosPerHour
	minute := n / nanosPerMinute
	n -= minute * nanosPerMinute
	second := n / nanosPerSecond
	n -= second * nanosPerSecond
	return LocalTime{Hour: int(hour), Minute: int(minute), Second: int(second), Nanosecond: int(n)}
}

// DateToEpochDay converts d to a day count relative to 1970-01-01,
// using the same year/month arithmetic as java.time.LocalDate.toEpochDay
// (spec.md §4.4): separate leap-adjustment formulas for non-negative
// and negative years, a month-based correction term, and a month>2
// leap-year correction, all relative to days0000To1970.
func DateToEpochDay(d Date) int64 {
	y := int64(d.Year)
	m := int64(d.Month)

	var total int64
	total += 365 * y
	if y >= 0 {
		total += (y+3)/4 - (y+99)/100 + (y+399)/400
	} else {
		total -= y/-4 - y/-100 + y/-400
	}
	total += (367*m - 362) / 12
	total += int64(d.Day) - 1
	if m > 2 {
		total--
		if !IsLeapYear(d.Year) {
			total--
		}
	}
	return total - days0000To1970
}

// EpochDayToDate is the inverse of DateToEpochDay, via a zero-day basis
// shifted to 0000-03-01 (so the leap day falls at the end of each
// four-year group), a 400-year cycle adjustment for negative zero-days,
// march-based month numbering, and remapping back to the civil
// calendar (spec.md §4.4).
func EpochDayToDate(epochDay int64) Date {
	zeroDay := epochDay + days0000To1970 - 60

	adjust := int64(0)
	if zeroDay < 0 {
		adjustCycles := (zeroDay+1)/daysPer400YearCycle - 1
		adjust = adjustCycles * 400
		zeroDay -= adjustCycles * daysPer400YearCycle
	}

	yearEst := (400*zeroDay + 591) / daysPer400YearCycle
	dayEst := zeroDay - (365*yearEst + yearEst/4 - yearEst/100 + yearEst/400)
	if dayEst < 0 {
		yearEst--
		dayEst = zeroDay - (365*yearEst + yearEst/4 - yearEst/100 + yearEst/400)
	}
	yearEst += adjust

	marchDayOfYear := dayEst
	marchMonth := (marchDayOfYear*5 + 2) / 153
	month := (marchMonth+2)%12 + 1
	day := marchDayOfYear - (marchMonth*306+5)/10 + 1
	yearEst += marchMonth / 10

	return Date{Year: int(yearEst), Month: int(month), Day: int(day)}
}

// LocalDateTimeToEpochSecond converts dt to a Unix epoch second,
// ignoring its sub-second component.
func LocalDateTimeToEpochSecond(dt LocalDateTime) int64 {
	epochDay := DateToEpochDay(dt.Date)
	secondsOfDay := int64(dt.Time.Hour)*3600 + int64(dt.Time.Minute)*60 + int64(dt.Time.Second)
	return epochDay*secondsPerDay + secondsOfDay
}

// EpochSecondAndNanoToLocalDateTime is the inverse of
// LocalDateTimeToEpochSecond plus a nanosecond remainder, floor-dividing
// and floor-modding by the seconds in a day (spec.md §4.4).
func EpochSecondAndNanoToLocalDateTime(epochSecond int64, nano int) LocalDateTime {
	epochDay := FloorDiv(bigint.FromInt64(epochSecond), bigint.FromInt64(secondsPerDay)).Int64()
	secondsOfDay := FloorMod(bigint.FromInt64(epochSecond), bigint.FromInt64(secondsPerDay)).Int64()
	date := EpochDayToDate(epochDay)
	t := NanoOfDayToLocalTime(secondsOfDay*nanosPerSecond + int64(nano))
	return LocalDateTime{Date: date, Time: t}
}

// FloorDiv divides x by y, rounding toward negative infinity.
func FloorDiv(x, y bigint.BigInt) bigint.BigInt {
	q := x.Div(y)
	r := x.Mod(y)
	if !r.IsZero() && (r.Sign() < 0) != (y.Sign() < 0) {
		q = q.Sub(bigint.FromInt64(1))
	}
	return q
}

// FloorMod returns the remainder of FloorDiv(x, y): x - FloorDiv(x,y)*y.
func FloorMod(x, y bigint.BigInt) bigint.BigInt {
	return x.Sub(FloorDiv(x, y).Mul(y))
}

// Duration is a driver-level duration value: a calendar component
// (months, days) plus a wall-clock component (seconds, nanoseconds),
// matching the server's duration structure shape.
type Duration struct {
	Months      int64
	Days        int64
	Seconds     int64
	Nanoseconds int
}

// DurationToIsoString formats (months, days, seconds, nanoseconds) as
// "P{months}M{days}DT{seconds}.{nanos9}S" with nanos9 zero-padded to 9
// digits (spec.md §4.4, §8).
func DurationToIsoString(months, days, seconds int64, nanoseconds int) string {
	return fmt.Sprintf("P%dM%dDT%d.%09dS", months, days, seconds, nanoseconds)
}

// TimeToIsoString formats a time of day as "HH:MM:SS.nnnnnnnnn".
func TimeToIsoString(hour, minute, second, nanosecond int) string {
	return fmt.Sprintf("%02d:%02d:%02d.%09d", hour, minute, second, nanosecond)
}

// DateToIsoString formats a date as "[-]YYYY-MM-DD" with the year
// zero-padded to 4 digits and a sign prefix when negative.
func DateToIsoString(year, month, day int) string {
	if year < 0 {
		return fmt.Sprintf("-%04d-%02d-%02d", -year, month, day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// TimeZoneOffsetToIsoString formats a UTC offset in seconds as "Z" for
// zero, "±HH:MM" when the seconds component is zero, or "±HH:MM:SS"
// otherwise.
func TimeZoneOffsetToIsoString(offsetSeconds int) string {
	if offsetSeconds == 0 {
		return "Z"
	}
	sign := "+"
	n := offsetSeconds
	if n < 0 {
		sign = "-"
		n = -n
	}
	hours := n / 3600
	minutes := (n % 3600) / 60
	seconds := n % 60
	if seconds == 0 {
		return fmt.Sprintf("%s%02d:%02d", sign, hours, minutes)
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, hours, minutes, seconds)
}
