package depreciation

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// LineItemColumns are the columns of the line items file.
var LineItemColumns = []string{"asset_id", "month", "amount"}

// EncodeLineItems writes the line items of the successful results to 'w' as CSV.
//
// Rows are grouped by asset in the order of 'results', months are in
// chronological order. Amounts have exactly the currency subunit digits.
func EncodeLineItems(w io.Writer, results []Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(LineItemColumns); err != nil {
		return fmt.Errorf("cannot write line items header: %w", err)
	}
	for _, res := range results {
		for _, item := range res.Items {
			row := []string{item.AssetID, item.Month.String(), item.Amount.Fixed()}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("cannot write line item for asset %q: %w", item.AssetID, err)
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// EncodeLineItemsJSONL writes the same rows as EncodeLineItems, one JSON object per line.
func EncodeLineItemsJSONL(w io.Writer, results []Result) error {
	bw := bufio.NewWriter(w)
	for _, res := range results {
		for _, item := range res.Items {
			data, err := json.Marshal(item)
			if err != nil {
				return fmt.Errorf("cannot marshal line item for asset %q: %w", item.AssetID, err)
			}
			bw.Write(data)
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// Encoder is the signature shared by line item encoders.
type Encoder func(w io.Writer, results []Result) error

// EncoderFor returns the encoder of the named format: "csv" or "jsonl".
func EncoderFor(format string) (Encoder, error) {
	switch format {
	case "csv", "":
		return EncodeLineItems, nil
	case "jsonl":
		return EncodeLineItemsJSONL, nil
	default:
		return nil, fmt.Errorf("unknown output format %q, want csv or jsonl", format)
	}
}
