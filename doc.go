// Package depreciation computes monthly straight-line depreciation schedules
// for fixed assets.
//
// An asset is bought on a purchase date and loses its depreciable value
// (original value minus salvage value) evenly over an expected life counted in
// whole months. The schedule books that loss month by month:
//   - Calendar months: one line item per calendar month touched by the life,
//     so a life starting mid-month spans one more month than its length.
//   - Proration: partial first and last months are worth the fraction of
//     their actual days (28 to 31) covered by the life.
//   - Exact totals: amounts are rounded to the currency subunit on the
//     cumulative total, so they always add up to the rounded depreciable value.
//
// All currency arithmetic is decimal. Assets are read from and line items
// written to CSV files by the `fad` command-line tool, see package cmd.
package depreciation
