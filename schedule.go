package depreciation

import (
	"fmt"

	"github.com/etnz/depreciation/date"
	"github.com/shopspring/decimal"
)

// LineItem is the depreciation of one asset over one calendar month.
type LineItem struct {
	AssetID string
	Month   date.Month
	Amount  Money
}

// MarshalJSON writes the line item as {"asset_id":…,"month":…,"amount":…}.
func (l LineItem) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("asset_id", l.AssetID)
	w.Append("month", l.Month)
	w.Append("amount", l.Amount)
	return w.MarshalJSON()
}

// Allocation is the part of a calendar month covered by an asset life.
type Allocation struct {
	Month       date.Month
	Days        int // days of the month within the life
	DaysInMonth int
}

// IsFull reports whether the whole month is within the life.
func (a Allocation) IsFull() bool { return a.Days == a.DaysInMonth }

// Fraction returns Days/DaysInMonth.
func (a Allocation) Fraction() decimal.Decimal {
	return decimal.NewFromInt(int64(a.Days)).Div(decimal.NewFromInt(int64(a.DaysInMonth)))
}

// Allocations returns every calendar month touched by the asset life, in
// chronological order, with the number of days covered.
//
// The first and last months are partial unless the life starts on the first day of a month.
func (a Asset) Allocations() []Allocation {
	life := a.Life()
	var res []Allocation
	for m := range life.Months() {
		res = append(res, Allocation{
			Month:       m,
			Days:        life.Intersect(m.Range()).Days(),
			DaysInMonth: m.Days(),
		})
	}
	return res
}

// Generate returns the monthly depreciation of the asset, one LineItem per
// calendar month touched by its life, in chronological order.
//
// Each month is worth the monthly rate times the fraction of the month covered.
// Amounts are rounded on the cumulative total: the amount booked on a month is
// the rounded ideal total at the end of that month minus the rounded ideal total
// at the end of the previous one. The last month closes the schedule on the
// rounded depreciable amount, absorbing any difference in length between the
// first and last partial months. Amounts therefore always sum exactly to the
// rounded depreciable amount.
func Generate(a Asset) ([]LineItem, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	allocations := a.Allocations()
	depreciable := a.Depreciable()
	total := depreciable.Round()
	life := int64(a.ExpectedLife)

	items := make([]LineItem, 0, len(allocations))
	booked := M(0, total.Currency())
	// elapsed months so far as the fraction num/den.
	var num, den int64 = 0, 1
	for i, al := range allocations {
		target := total
		if i < len(allocations)-1 {
			num, den = addFraction(num, den, int64(al.Days), int64(al.DaysInMonth))
			target = depreciable.MulDivRound(num, den*life)
		}
		items = append(items, LineItem{
			AssetID: a.ID,
			Month:   al.Month,
			Amount:  target.Sub(booked),
		})
		booked = target
	}
	mustSumTo(items, total)
	return items, nil
}

// addFraction returns a/b + c/d reduced.
func addFraction(a, b, c, d int64) (int64, int64) {
	num, den := a*d+c*b, b*d
	g := gcd(num, den)
	return num / g, den / g
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

// Sum returns the total of the amounts.
func Sum(items []LineItem) Money {
	var s Money
	for _, it := range items {
		s = s.Add(it.Amount)
	}
	return s
}

// mustSumTo panics if items do not sum to total. This can only be a bug in Generate.
func mustSumTo(items []LineItem, total Money) {
	if s := Sum(items); !s.Equal(total) {
		panic(fmt.Sprintf("depreciation schedule sums to %s instead of %s", s.Fixed(), total.Fixed()))
	}
}
