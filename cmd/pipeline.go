package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/etnz/depreciation"
)

// decodeAssetFile reads the asset file at path.
func decodeAssetFile(path string, cur depreciation.Currency) ([]depreciation.AssetRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open asset file: %w", err)
	}
	defer f.Close()
	records, err := depreciation.DecodeAssets(f, cur)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// generate reads the asset file at path and computes the schedules of all its assets.
// Rejected rows are reported on stderr, they are part of the results.
func generate(ctx context.Context, path string, cur depreciation.Currency, workers int) ([]depreciation.Result, error) {
	records, err := decodeAssetFile(path, cur)
	if err != nil {
		return nil, err
	}
	results, err := depreciation.Process(ctx, records, depreciation.Options{Workers: workers})
	if err != nil {
		return nil, err
	}
	reportErrors(os.Stderr, path, results)
	if *Verbose {
		s := depreciation.Summarize(results)
		log.Printf("%s: %d asset(s), %d line item(s), %d rejected", path, s.Assets, s.LineItems, s.Failed)
	}
	return results, nil
}

// reportErrors prints one line per rejected row.
func reportErrors(w io.Writer, path string, results []depreciation.Result) {
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "Warning: %s: %v\n", path, res.Err)
		}
	}
}

// writeOutput encodes the line items of results to the file at path, "-" for stdout.
func writeOutput(path, format string, results []depreciation.Result) error {
	encode, err := depreciation.EncoderFor(format)
	if err != nil {
		return err
	}
	if path == "-" {
		return encode(os.Stdout, results)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	if err := encode(f, results); err != nil {
		f.Close()
		return fmt.Errorf("cannot write output file %q: %w", path, err)
	}
	return f.Close()
}
