package renderer

import (
	"fmt"

	"github.com/etnz/depreciation"
)

// Schedule is the printable view of one asset depreciation schedule.
type Schedule struct {
	AssetID      string
	PurchaseDate string
	End          string // first day after the life
	ExpectedLife int
	Original     string
	Salvage      string
	Depreciable  string
	MonthlyRate  string
	Rows         []ScheduleRow
	Total        string
}

// ScheduleRow is one month of a Schedule.
type ScheduleRow struct {
	Month      string
	Days       string // covered days over days in month, e.g. "19/31"
	Amount     string
	Cumulative string // book value lost at the end of the month
	NetValue   string // book value at the end of the month
}

// NewSchedule builds the view of the asset schedule 'items'.
func NewSchedule(a depreciation.Asset, items []depreciation.LineItem) *Schedule {
	s := &Schedule{
		AssetID:      a.ID,
		PurchaseDate: a.PurchaseDate.String(),
		End:          a.End().String(),
		ExpectedLife: a.ExpectedLife,
		Original:     a.OriginalValue.Round().String(),
		Salvage:      a.SalvageValue.Round().String(),
		Depreciable:  a.Depreciable().Round().String(),
		MonthlyRate:  a.MonthlyRate().Round().String(),
		Total:        depreciation.Sum(items).String(),
	}
	days := make(map[string]depreciation.Allocation)
	for _, al := range a.Allocations() {
		days[al.Month.String()] = al
	}

	var cumulative depreciation.Money
	for _, it := range items {
		cumulative = cumulative.Add(it.Amount)
		month := it.Month.String()
		al := days[month]
		s.Rows = append(s.Rows, ScheduleRow{
			Month:      month,
			Days:       fmt.Sprintf("%d/%d", al.Days, al.DaysInMonth),
			Amount:     it.Amount.String(),
			Cumulative: cumulative.String(),
			NetValue:   a.OriginalValue.Sub(cumulative).Round().String(),
		})
	}
	return s
}

// Report is the printable view of a batch of schedules.
type Report struct {
	Currency  string
	Stats     depreciation.Stats
	Schedules []*Schedule
	Errors    []string
}

// NewReport builds the view of the batch 'results'.
func NewReport(cur depreciation.Currency, results []depreciation.Result) *Report {
	r := &Report{Currency: cur.Code(), Stats: depreciation.Summarize(results)}
	for _, res := range results {
		if res.Err != nil {
			r.Errors = append(r.Errors, res.Err.Error())
			continue
		}
		r.Schedules = append(r.Schedules, NewSchedule(res.Asset, res.Items))
	}
	return r
}
