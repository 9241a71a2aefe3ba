package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/etnz/depreciation"
	"github.com/fsnotify/fsnotify"
	"github.com/google/subcommands"
)

type watchCmd struct {
	output  string
	format  string
	workers int
}

func (*watchCmd) Name() string { return "watch" }
func (*watchCmd) Synopsis() string {
	return "recompute the line items file every time the asset file changes"
}
func (*watchCmd) Usage() string {
	return `fad watch [-o <file>] [-format csv|jsonl] [-workers <n>] <assets.csv>

  Like 'fad schedule', then waits for changes of the asset file and writes the
  line items file again after each one, until interrupted.

`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "line_items.csv", "Path to the output file, '-' for stdout")
	f.StringVar(&c.format, "format", "csv", "Output format (csv, jsonl)")
	f.IntVar(&c.workers, "workers", 1, "Number of assets computed concurrently")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one asset file, got %d\n", f.NArg())
		return subcommands.ExitUsageError
	}
	input := filepath.Clean(f.Arg(0))
	cur, err := Currency()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer watcher.Close()
	// Editors often replace the file rather than write it: watch the directory.
	if err := watcher.Add(filepath.Dir(input)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	c.run(ctx, input, cur)
	for {
		select {
		case <-ctx.Done():
			return subcommands.ExitSuccess
		case err, ok := <-watcher.Errors:
			if !ok {
				return subcommands.ExitSuccess
			}
			log.Printf("watch error: %v", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return subcommands.ExitSuccess
			}
			if isInputChange(event, input) {
				c.run(ctx, input, cur)
			}
		}
	}
}

// isInputChange reports whether event modifies the file at input.
func isInputChange(event fsnotify.Event, input string) bool {
	if filepath.Clean(event.Name) != input {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// run writes the line items once, failures are logged and do not stop watching.
func (c *watchCmd) run(ctx context.Context, input string, cur depreciation.Currency) {
	results, err := generate(ctx, input, cur, c.workers)
	if err != nil {
		log.Printf("%v", err)
		return
	}
	if err := writeOutput(c.output, c.format, results); err != nil {
		log.Printf("%v", err)
		return
	}
	s := depreciation.Summarize(results)
	log.Printf("%s: wrote %d line item(s), %d asset(s) rejected", c.output, s.LineItems, s.Failed)
}
