package dateutil

import (
	"time"

	"github.com/shopspring/decimal"
)

// Age calculates full years elapsed from birthDate to atDate.
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// SeniorityYears calculates whole years of seniority from hireDate to
// referenceDate (floor of elapsed time). Returns 0 when referenceDate is
// before hireDate.
func SeniorityYears(hireDate, referenceDate time.Time) int {
	if referenceDate.Before(hireDate) {
		return 0
	}
	return Age(hireDate, referenceDate)
}

// SeniorityFraction calculates fractional seniority years as
// (elapsed days + 2) / 365. The two-day adjustment reproduces the statutory
// severance computation, which counts both boundary days.
func SeniorityFraction(hireDate, referenceDate time.Time) decimal.Decimal {
	days := DaysBetween(hireDate, referenceDate)
	if days < 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(days + 2).Div(decimal.NewFromInt(365))
}

// DaysBetween returns the number of calendar days between two dates.
func DaysBetween(from, to time.Time) int64 {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int64(toDay.Sub(fromDay).Hours() / 24)
}

// MonthsBetween returns whole months elapsed between two dates.
func MonthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// PeriodStart returns the first day of the given month.
func PeriodStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// PeriodEnd returns the last day of the given month.
func PeriodEnd(year int, month time.Month) time.Time {
	return PeriodStart(year, month).AddDate(0, 1, -1)
}

// IsLeapYear checks if a year is a leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given year.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return PeriodEnd(year, month).Day()
}

// AddYears adds a specified number of years to a date.
func AddYears(date time.Time, years int) time.Time {
	return date.AddDate(years, 0, 0)
}

// AddMonths adds a specified number of months to a date.
func AddMonths(date time.Time, months int) time.Time {
	return date.AddDate(0, months, 0)
}
