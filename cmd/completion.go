package cmd

import (
	"github.com/etnz/ledger"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// types predicts the flow types.
var types = func() predict.Set {
	var s predict.Set
	for _, t := range ledger.Types {
		s = append(s, string(t))
	}
	return s
}()

var sources = predict.Or(predict.Files("*.csv"), predict.Files("*.xlsx"), predict.Files("*.xlsm"))

var filterFlags = map[string]complete.Predictor{
	"asset": predict.Something,
	"venue": predict.Something,
	"from":  predict.Something,
	"to":    predict.Something,
}

func withFilter(flags map[string]complete.Predictor) map[string]complete.Predictor {
	for k, v := range filterFlags {
		flags[k] = v
	}
	return flags
}

// completion describes the command line for the shell completion.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"config":    predict.Files("*.env"),
		"db":        predict.Files("*.db"),
		"log-level": predict.Set{"debug", "info", "warn", "error", "disabled"},
		"plain":     predict.Nothing,
	},
	Sub: map[string]*complete.Command{
		"import": {
			Flags: map[string]complete.Predictor{"check": predict.Nothing},
			Args:  sources,
		},
		"add": {
			Flags: map[string]complete.Predictor{
				"id":       predict.Something,
				"t":        predict.Something,
				"type":     types,
				"asset":    predict.Something,
				"amount":   predict.Something,
				"currency": predict.Something,
				"price":    predict.Something,
				"venue":    predict.Something,
				"note":     predict.Something,
			},
		},
		"trade": {
			Flags: map[string]complete.Predictor{
				"t":        predict.Something,
				"type":     predict.Set{"buy", "sell"},
				"asset":    predict.Something,
				"q":        predict.Something,
				"currency": predict.Something,
				"total":    predict.Something,
				"venue":    predict.Something,
				"note":     predict.Something,
			},
		},
		"reverse": {
			Flags: map[string]complete.Predictor{
				"seq":  predict.Something,
				"note": predict.Something,
			},
		},
		"tx": {
			Flags: withFilter(map[string]complete.Predictor{
				"head":   predict.Something,
				"tail":   predict.Something,
				"recent": predict.Something,
				"table":  predict.Nothing,
			}),
		},
		"balance": {
			Flags: map[string]complete.Predictor{
				"asset": predict.Something,
				"venue": predict.Something,
			},
		},
		"assets": {Flags: map[string]complete.Predictor{"table": predict.Nothing}},
		"venues": {Flags: map[string]complete.Predictor{"table": predict.Nothing}},
		"diag":   {Flags: map[string]complete.Predictor{"strict": predict.Nothing}},
		"export": {
			Flags: withFilter(map[string]complete.Predictor{
				"format": predict.Set{"csv", "json", "jsonl"},
				"o":      predict.Files("*"),
			}),
		},
		"topic": {
			Flags: map[string]complete.Predictor{"list": predict.Nothing},
			Args:  predict.Set{"*", "import", "corrections", "views", "export", "config"},
		},
		"help": {},
	},
}

// Complete answers a shell completion request for the binary name and
// returns when the process was not started by the shell for completion.
func Complete(name string) {
	completion.Complete(name)
}
