package depreciation

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Options controls how a batch of assets is processed.
type Options struct {
	// Workers is the number of assets computed concurrently. Values below 2
	// compute assets one after the other.
	Workers int
}

// Result is the outcome of one asset record.
type Result struct {
	Line    int
	AssetID string
	Asset   Asset // as decoded, possibly incomplete when Err is set
	Items   []LineItem
	Err     error // a *RecordError, nil on success
}

// Process generates the schedule of every record, independently.
//
// A failing record never stops the others: its error is reported in its
// Result. Results are in the same order as records whatever the number of
// workers. The only error returned is the context's.
func Process(ctx context.Context, records []AssetRecord, opts Options) ([]Result, error) {
	results := make([]Result, len(records))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for i, rec := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = process(rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func process(rec AssetRecord) Result {
	res := Result{Line: rec.Line, AssetID: rec.Asset.ID, Asset: rec.Asset}
	if rec.Err != nil {
		res.Err = rec.Err
		return res
	}
	items, err := Generate(rec.Asset)
	if err != nil {
		res.Err = &RecordError{Line: rec.Line, AssetID: rec.Asset.ID, Err: err}
		return res
	}
	res.Items = items
	return res
}

// Stats counts the outcome of a batch.
type Stats struct {
	Assets    int // records processed
	Failed    int // records with an error
	LineItems int // line items generated
}

// Succeeded reports whether the batch produced something: it is empty or at
// least one record succeeded.
func (s Stats) Succeeded() bool { return s.Assets == 0 || s.Failed < s.Assets }

// Summarize counts the outcome of results.
func Summarize(results []Result) Stats {
	var s Stats
	for _, res := range results {
		s.Assets++
		if res.Err != nil {
			s.Failed++
		}
		s.LineItems += len(res.Items)
	}
	return s
}

// Errors joins the errors of all failed results, nil if none failed.
func Errors(results []Result) error {
	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}
