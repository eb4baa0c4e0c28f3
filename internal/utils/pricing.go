package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gamerental-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// Date represents a calendar date
type Date struct {
	Year  int
	Month int
	Day   int
}

// ParseDate converts a yyyy-mm-dd formatted string into a Date struct.
// Single-digit months and days are accepted.
func ParseDate(dateStr string) (Date, error) {
	parts := strings.Split(dateStr, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("invalid year: %v", err)
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("invalid month: %v", err)
	}

	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("invalid day: %v", err)
	}

	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month must be between 1 and 12")
	}

	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("day must be between 1 and %d", DaysInMonth(year, month))
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

// DateOf returns the calendar date of t in t's own location
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

// String formats the date as yyyy-mm-dd
func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

// Time returns midnight UTC of the date
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n calendar days later (earlier when n < 0)
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// DaysInMonth returns the number of days in a given month
func DaysInMonth(year, month int) int {
	if month == 2 {
		// Check for leap year
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}

	// Months with 30 days: April, June, September, November
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}

	return 31
}

// DaysBetween returns the number of whole calendar days from start to end.
// The result is negative when end is before start.
func DaysBetween(start, end Date) int {
	return int((end.Time().Unix() - start.Time().Unix()) / 86400)
}

// CalculateOriginalPrice returns the price agreed when a rental is opened.
// It fails with domain.ErrAmountOutOfRange when the product does not fit
// the stored column.
func CalculateOriginalPrice(pricePerDay, daysRented int32) (int32, error) {
	return toAmount(int64(pricePerDay) * int64(daysRented))
}

func toAmount(v int64) (int32, error) {
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("%w: %d", domain.ErrAmountOutOfRange, v)
	}
	return int32(v), nil
}

// DueDate returns the last day a rental can be returned without a fee
func DueDate(rentDate Date, daysRented int32) Date {
	return rentDate.AddDays(int(daysRented))
}

// CalculateDelayFee computes the late fee for a rental returned on returnDate.
// Elapsed time is the full calendar difference between the two dates, so
// rentals spanning a month or year boundary are charged correctly.
// Returns the fee and the number of days late, or domain.ErrAmountOutOfRange
// when either does not fit the stored column.
func CalculateDelayFee(rentDate, returnDate Date, daysRented, pricePerDay int32) (int32, int32, error) {
	elapsed := int64(DaysBetween(rentDate, returnDate))
	if elapsed <= int64(daysRented) {
		return 0, 0, nil
	}
	daysLate, err := toAmount(elapsed - int64(daysRented))
	if err != nil {
		return 0, 0, err
	}
	fee, err := toAmount(int64(daysLate) * int64(pricePerDay))
	if err != nil {
		return 0, 0, err
	}
	return fee, daysLate, nil
}
