package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line of fad for shell completion.
func Completion() *complete.Command {
	assets := predict.Files("*.csv")
	formats := predict.Set{"csv", "jsonl"}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"currency": predict.Set{"EUR", "USD", "GBP", "CHF", "JPY"},
			"dsn":      predict.Something,
			"brokers":  predict.Something,
			"topic":    predict.Something,
			"v":        predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"schedule": {
				Flags: map[string]complete.Predictor{
					"o":       predict.Files("*"),
					"format":  formats,
					"workers": predict.Something,
					"store":   predict.Nothing,
					"publish": predict.Nothing,
				},
				Args: assets,
			},
			"show": {
				Flags: map[string]complete.Predictor{
					"a":   predict.Something,
					"raw": predict.Nothing,
				},
				Args: assets,
			},
			"watch": {
				Flags: map[string]complete.Predictor{
					"o":       predict.Files("*"),
					"format":  formats,
					"workers": predict.Something,
				},
				Args: assets,
			},
			"lookup": {
				Flags: map[string]complete.Predictor{
					"a":      predict.Something,
					"format": formats,
				},
			},
			"serve": {
				Flags: map[string]complete.Predictor{"addr": predict.Something},
			},
			"topic":    {Args: predict.Set{"input", "schedule", "rounding", "configuration", "services", "*"}},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
	}
}
