package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/depreciation"
	"github.com/etnz/depreciation/events"
	"github.com/etnz/depreciation/store"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

type scheduleCmd struct {
	output  string
	format  string
	workers int
	store   bool
	publish bool
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "compute the monthly depreciation of every asset of an asset file" }
func (*scheduleCmd) Usage() string {
	return `fad schedule [-o <file>] [-format csv|jsonl] [-workers <n>] [-store] [-publish] <assets.csv>

  Reads the asset file, a CSV file with the columns
  asset_id, purchase_date, expected_life, original_value, salvage_value
  and writes one line item per asset and calendar month with the columns
  asset_id, month, amount.

  Rows that cannot be depreciated are reported and skipped; the command fails
  only if the asset file cannot be read or if no row could be depreciated.

Usage Examples:
# Writes line_items.csv
$ fad schedule assets.csv

# Prints the line items as JSON lines
$ fad schedule -o - -format jsonl assets.csv

`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "line_items.csv", "Path to the output file, '-' for stdout")
	f.StringVar(&c.format, "format", "csv", "Output format (csv, jsonl)")
	f.IntVar(&c.workers, "workers", 1, "Number of assets computed concurrently")
	f.BoolVar(&c.store, "store", false, "Save the schedules in the schedule database (see -dsn)")
	f.BoolVar(&c.publish, "publish", false, "Publish the schedules to Kafka (see -brokers)")
}

func (c *scheduleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one asset file, got %d\n", f.NArg())
		return subcommands.ExitUsageError
	}
	input := f.Arg(0)

	cur, err := Currency()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	results, err := generate(ctx, input, cur, c.workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := writeOutput(c.output, c.format, results); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	runID := uuid.New()
	if c.store {
		if err := storeResults(ctx, runID, results); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving schedules: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if c.publish {
		if err := publishResults(ctx, runID, results); err != nil {
			fmt.Fprintf(os.Stderr, "Error publishing schedules: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	stats := depreciation.Summarize(results)
	if !stats.Succeeded() {
		fmt.Fprintf(os.Stderr, "Error: none of the %d asset(s) could be depreciated\n", stats.Assets)
		return subcommands.ExitFailure
	}
	if c.output != "-" {
		fmt.Fprintf(os.Stderr, "Successfully wrote %d line item(s) for %d asset(s) to %s\n", stats.LineItems, stats.Assets-stats.Failed, c.output)
	}
	return subcommands.ExitSuccess
}

// storeResults saves the successful schedules in the schedule database.
func storeResults(ctx context.Context, runID uuid.UUID, results []depreciation.Result) error {
	dsn, err := DSN()
	if err != nil {
		return err
	}
	s, err := store.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Migrate(ctx); err != nil {
		return err
	}
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if err := s.SaveSchedule(ctx, runID, res.Items); err != nil {
			return err
		}
	}
	if *Verbose {
		log.Printf("saved schedules of run %s", runID)
	}
	return nil
}

// publishResults publishes the successful schedules to Kafka.
func publishResults(ctx context.Context, runID uuid.UUID, results []depreciation.Result) error {
	brokers, err := Brokers()
	if err != nil {
		return err
	}
	p := events.NewPublisher(brokers, Topic())
	if err := p.Publish(ctx, runID, results); err != nil {
		p.Close()
		return err
	}
	return p.Close()
}
