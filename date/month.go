package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// MonthFormat is the year-month format used to read and write months.
const MonthFormat = "2006-01"

// Month identifies a calendar month of a given year.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month: NewMonth(2024, 13) is January 2025.
func NewMonth(year int, month time.Month) Month {
	y, m, _ := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Date()
	return Month{y, m}
}

// MonthOf returns the month containing d.
func MonthOf(d Date) Month { return Month{d.y, d.m} }

// Year returns the year of the month.
func (m Month) Year() int { return m.y }

// Month returns the month of the year.
func (m Month) Month() time.Month { return m.m }

// Add returns the month n months later (earlier if n is negative).
func (m Month) Add(n int) Month { return NewMonth(m.y, m.m+time.Month(n)) }

// First returns the first day of the month.
func (m Month) First() Date { return Date{m.y, m.m, 1} }

// Last returns the last day of the month.
func (m Month) Last() Date { return Date{m.y, m.m, m.Days()} }

// Days returns the number of days in the month (28 to 31).
func (m Month) Days() int {
	// day 0 of the next month is the last day of this one.
	return time.Date(m.y, m.m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Range returns the range of dates covering the whole month.
func (m Month) Range() Range { return Range{From: m.First(), To: m.Last()} }

// Before reports whether m is before n.
func (m Month) Before(n Month) bool {
	return m.y < n.y || (m.y == n.y && m.m < n.m)
}

// String formats the month as "YYYY-MM".
func (m Month) String() string { return fmt.Sprintf("%04d-%02d", m.y, int(m.m)) }

// ParseMonth parses a month in the "YYYY-MM" format.
func ParseMonth(str string) (Month, error) {
	on, err := time.Parse(MonthFormat, str)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", str, MonthFormat, err)
	}
	return Month{on.Year(), on.Month()}, nil
}

func (m Month) MarshalJSON() ([]byte, error) {
	str := m.String()
	return json.Marshal(&str)
}

func (m *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	v, err := ParseMonth(str)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
