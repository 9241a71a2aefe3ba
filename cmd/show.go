package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/depreciation"
	"github.com/etnz/depreciation/renderer"
	"github.com/google/subcommands"
)

type showCmd struct {
	asset string
	raw   bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display the depreciation schedules of an asset file" }
func (*showCmd) Usage() string {
	return `fad show [-a <asset_id>] [-raw] <assets.csv>

  Computes the schedules of the asset file and displays them as tables, with
  the covered days, the cumulative depreciation and the net book value of
  every month, followed by the rows that could not be depreciated.

`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "a", "", "Only display the schedule of this asset")
	f.BoolVar(&c.raw, "raw", false, "Print the markdown source instead of rendering it")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one asset file, got %d\n", f.NArg())
		return subcommands.ExitUsageError
	}
	cur, err := Currency()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	records, err := decodeAssetFile(f.Arg(0), cur)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	results, err := depreciation.Process(ctx, records, depreciation.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.asset != "" {
		results = filterAsset(results, c.asset)
		if len(results) == 0 {
			fmt.Fprintf(os.Stderr, "Error: asset %q not found in %s\n", c.asset, f.Arg(0))
			return subcommands.ExitFailure
		}
	}

	md := renderer.RenderReport(renderer.NewReport(cur, results))
	if c.raw {
		fmt.Print(md)
	} else {
		printMarkdown(md)
	}
	if !depreciation.Summarize(results).Succeeded() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// filterAsset returns the results of the asset 'id'.
func filterAsset(results []depreciation.Result, id string) []depreciation.Result {
	var res []depreciation.Result
	for _, r := range results {
		if r.AssetID == id {
			res = append(res, r)
		}
	}
	return res
}
