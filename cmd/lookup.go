package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/depreciation"
	"github.com/etnz/depreciation/store"
	"github.com/google/subcommands"
)

// ExitNotFound is the exit status of lookup when the asset is unknown.
const ExitNotFound subcommands.ExitStatus = 4

type lookupCmd struct {
	asset  string
	format string
}

func (*lookupCmd) Name() string     { return "lookup" }
func (*lookupCmd) Synopsis() string { return "print the stored schedule of an asset" }
func (*lookupCmd) Usage() string {
	return `fad lookup -a <asset_id> [-format csv|jsonl]

  Prints the line items last saved for the asset by 'fad schedule -store'.
  Exits with status 4 if the asset has never been saved.

`
}

func (c *lookupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "a", "", "Asset to look up (required)")
	f.StringVar(&c.format, "format", "csv", "Output format (csv, jsonl)")
}

func (c *lookupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" {
		fmt.Fprintln(os.Stderr, "Error: -a flag is required")
		return subcommands.ExitUsageError
	}
	encode, err := depreciation.EncoderFor(c.format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	dsn, err := DSN()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := store.Open(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	items, err := s.Lookup(ctx, c.asset)
	if errors.Is(err, store.ErrAssetNotFound) {
		fmt.Fprintf(os.Stderr, "Error: asset %q not found\n", c.asset)
		return ExitNotFound
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := encode(os.Stdout, []depreciation.Result{{AssetID: c.asset, Items: items}}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
