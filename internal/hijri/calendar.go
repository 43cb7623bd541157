// Package hijri converts civil (Gregorian) dates to the tabular Islamic
// calendar and resolves the sunset day boundary.
//
// The calendar is the civil-epoch tabular variant: a fixed intercalation
// rule, no astronomical sightings, so the mapping is reproducible offline.
package hijri

import (
	"fmt"
	"time"
)

// Epoch is 1 Muharram 1 AH (civil), 16 July 622 CE, as a Julian day number.
const epochJDN = 1948440

// daysPerCycle is the length of one 30-year intercalation cycle:
// 30*354 plus 11 leap days.
const daysPerCycle = 10631

// Date is a tabular Islamic calendar date. Day and Month are 1-based.
// Construct via FromTime or Next; zero value is not a valid date.
type Date struct {
	Day   int
	Month int
	Year  int
}

var monthNames = [12]string{
	"Muharram", "Safar", "Rabi' al-Awwal", "Rabi' al-Thani",
	"Jumada al-Awwal", "Jumada al-Thani", "Rajab", "Sha'ban",
	"Ramadan", "Shawwal", "Dhu al-Qi'dah", "Dhu al-Hijjah",
}

var monthNamesArabic = [12]string{
	"محرم", "صفر", "ربيع الأول", "ربيع الثاني",
	"جمادى الأولى", "جمادى الثانية", "رجب", "شعبان",
	"رمضان", "شوال", "ذو القعدة", "ذو الحجة",
}

// IsLeapYear reports whether year is one of the 11 leap years of its
// 30-year cycle (years 2, 5, 7, 10, 13, 16, 18, 21, 24, 26 and 29).
func IsLeapYear(year int) bool {
	m := (11*year + 14) % 30
	if m < 0 {
		m += 30
	}
	return m < 11
}

// DaysInMonth returns the length of a month: odd months have 30 days,
// even months 29, except month 12 which has 30 in a leap year.
func DaysInMonth(month, year int) int {
	if month%2 == 1 {
		return 30
	}
	if month == 12 && IsLeapYear(year) {
		return 30
	}
	return 29
}

func daysInYear(year int) int {
	if IsLeapYear(year) {
		return 355
	}
	return 354
}

// FromTime converts the civil calendar date of t, as observed in loc, to a
// tabular Islamic date. A nil loc uses t's own location. The conversion is a
// pure function of the civil year/month/day; time of day is ignored (the
// sunset boundary is a separate concern, see BoundaryCrossed).
func FromTime(t time.Time, loc *time.Location) Date {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	days := civilJDN(y, int(m), d) - epochJDN

	cycle := days / daysPerCycle
	rem := days % daysPerCycle
	if rem < 0 {
		cycle--
		rem += daysPerCycle
	}

	year := 1
	for rem >= daysInYear(year) {
		rem -= daysInYear(year)
		year++
	}

	month := 1
	for rem >= DaysInMonth(month, year) {
		rem -= DaysInMonth(month, year)
		month++
	}

	return Date{Day: rem + 1, Month: month, Year: cycle*30 + year}
}

// Next returns the date one day after d, rolling the month and year over
// with the same intercalation rule used by FromTime.
func (d Date) Next() Date {
	if d.Day < DaysInMonth(d.Month, d.Year) {
		return Date{Day: d.Day + 1, Month: d.Month, Year: d.Year}
	}
	if d.Month < 12 {
		return Date{Day: 1, Month: d.Month + 1, Year: d.Year}
	}
	return Date{Day: 1, Month: 1, Year: d.Year + 1}
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// MonthName returns the transliterated month name, or "" for an
// out-of-range month.
func (d Date) MonthName() string {
	if d.Month < 1 || d.Month > 12 {
		return ""
	}
	return monthNames[d.Month-1]
}

// MonthNameArabic returns the Arabic-script month name, or "" for an
// out-of-range month.
func (d Date) MonthNameArabic() string {
	if d.Month < 1 || d.Month > 12 {
		return ""
	}
	return monthNamesArabic[d.Month-1]
}

// Key returns the date as "YYYY-MM-DD". Completion keys use this form,
// so the encoding must stay stable.
func (d Date) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) String() string {
	name := d.MonthName()
	if name == "" {
		return d.Key()
	}
	return fmt.Sprintf("%d %s %d AH", d.Day, name, d.Year)
}

// civilJDN returns the Julian day number for a proleptic Gregorian date
// (Fliegel–Van Flandern; relies on Go's truncating integer division).
func civilJDN(year, month, day int) int {
	a := (month - 14) / 12
	jdn := (1461 * (year + 4800 + a)) / 4
	jdn += (367 * (month - 2 - 12*a)) / 12
	jdn -= (3 * ((year + 4900 + a) / 100)) / 4
	return jdn + day - 32075
}

// CivilDaysBetween returns the number of whole calendar days from a to b
// (negative when b precedes a). Both are read as the civil date in their own
// locations, so daylight-saving shifts cannot produce off-by-one gaps.
func CivilDaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return civilJDN(by, int(bm), bd) - civilJDN(ay, int(am), ad)
}

// CivilDayKey returns the civil calendar day of t in loc as "YYYY-MM-DD".
// All date-only comparisons in the engine go through this form so that
// instants near midnight never shift a day across timezones.
func CivilDayKey(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("2006-01-02")
}
