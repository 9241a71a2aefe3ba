package depreciation

import (
	"fmt"

	"github.com/etnz/depreciation/date"
)

// MaxYear is the last year a schedule can reach: months are written as four-digit years.
const MaxYear = 9999

// MaxExpectedLife bounds the expected life before any date is computed from it.
const MaxExpectedLife = (MaxYear + 1) * 12

// Asset is a fixed asset depreciated on a straight line over its expected life.
type Asset struct {
	ID            string
	PurchaseDate  date.Date
	ExpectedLife  int // in whole months
	OriginalValue Money
	SalvageValue  Money
}

// Validate checks that the asset can be depreciated and returns an
// *InvalidAssetError otherwise.
func (a Asset) Validate() error {
	invalid := func(reason string) error { return &InvalidAssetError{AssetID: a.ID, Reason: reason} }
	switch {
	case a.ID == "":
		return invalid("missing asset id")
	case a.PurchaseDate.IsZero():
		return invalid("missing purchase date")
	case a.ExpectedLife <= 0:
		return invalid("expected life must be a positive number of months")
	case a.ExpectedLife > MaxExpectedLife || a.End().Add(-1).Year() > MaxYear:
		return invalid(fmt.Sprintf("expected life must end by the year %d", MaxYear))
	case a.OriginalValue.IsNegative():
		return invalid("original value must not be negative")
	case a.SalvageValue.GreaterThan(a.OriginalValue):
		return invalid("salvage value is greater than original value")
	case a.OriginalValue.Currency() != a.SalvageValue.Currency():
		return invalid("original and salvage values are in different currencies")
	}
	return nil
}

// Depreciable returns the total value lost over the asset life, not rounded.
func (a Asset) Depreciable() Money { return a.OriginalValue.Sub(a.SalvageValue) }

// MonthlyRate returns the value lost over one full month, not rounded.
func (a Asset) MonthlyRate() Money { return a.Depreciable().Div(int64(a.ExpectedLife)) }

// End returns the first day after the asset life.
func (a Asset) End() date.Date { return a.PurchaseDate.AddMonths(a.ExpectedLife) }

// Life returns the days of the asset life, from the purchase date to the day before End.
func (a Asset) Life() date.Range { return date.NewRange(a.PurchaseDate, a.End().Add(-1)) }
