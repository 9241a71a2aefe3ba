package depreciation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/depreciation/date"
)

// this file contains functions to read the asset file.
// It is a CSV file with a header row, one asset per row.

// AssetColumns are the required columns of the asset file, in canonical order.
var AssetColumns = []string{"asset_id", "purchase_date", "expected_life", "original_value", "salvage_value"}

// AssetRecord is one row of the asset file.
//
// Err is a *RecordError when the row could not be read into a valid Asset;
// the rest of the file is still usable.
type AssetRecord struct {
	Line  int
	Asset Asset
	Err   error
}

// DecodeAssets reads the asset file from 'r', amounts are in 'cur'.
//
// The header names the columns of AssetColumns, in any order; other columns are
// ignored. Errors affecting a single row are reported in its AssetRecord, errors
// affecting the whole file are returned as a *StructuralError.
func DecodeAssets(r io.Reader, cur Currency) ([]AssetRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // checked per row to report it as a record error.
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &StructuralError{Err: errors.New("missing header row")}
	}
	if err != nil {
		return nil, &StructuralError{Err: err}
	}
	index, err := columnIndex(header)
	if err != nil {
		return nil, &StructuralError{Err: err}
	}

	var records []AssetRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &StructuralError{Err: err}
		}
		line, _ := reader.FieldPos(0)
		records = append(records, decodeRecord(line, row, len(header), index, cur))
	}
	return records, nil
}

// columnIndex returns the position of each required column in the header.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, exists := index[name]; exists && slices.Contains(AssetColumns, name) {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		index[name] = i
	}
	var missing []string
	for _, col := range AssetColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required column(s) %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func decodeRecord(line int, row []string, width int, index map[string]int, cur Currency) AssetRecord {
	rec := AssetRecord{Line: line}
	fail := func(err error) AssetRecord {
		rec.Err = &RecordError{Line: line, AssetID: rec.Asset.ID, Err: err}
		return rec
	}
	if i := index["asset_id"]; i < len(row) {
		rec.Asset.ID = strings.TrimSpace(row[i])
	}
	if len(row) != width {
		return fail(&MalformedRecordError{Err: fmt.Errorf("expected %d fields, got %d", width, len(row))})
	}

	field := func(name string) string { return strings.TrimSpace(row[index[name]]) }
	malformed := func(name string, err error) AssetRecord {
		return fail(&MalformedRecordError{Field: name, Value: field(name), Err: err})
	}

	var err error
	if rec.Asset.PurchaseDate, err = date.Parse(field("purchase_date")); err != nil {
		return malformed("purchase_date", err)
	}
	if rec.Asset.ExpectedLife, err = strconv.Atoi(field("expected_life")); err != nil {
		return malformed("expected_life", err)
	}
	if rec.Asset.OriginalValue, err = ParseMoney(field("original_value"), cur); err != nil {
		return malformed("original_value", err)
	}
	if rec.Asset.SalvageValue, err = ParseMoney(field("salvage_value"), cur); err != nil {
		return malformed("salvage_value", err)
	}
	return rec
}
