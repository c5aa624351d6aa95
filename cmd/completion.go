package cmd

import (
	"flag"

	"github.com/etnz/folio/scoring"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors completes flag values by flag name, anything else is free text.
var flagPredictors = map[string]complete.Predictor{
	"ledger-file":     predict.Files("*.jsonl"),
	"prices-file":     predict.Files("*.json"),
	"attributes-file": predict.Files("*.json"),
	"db":              predict.Files("*.db"),
	"in":              predict.Files("*.jsonl"),
	"prices":          predict.Files("*.json"),
	"f":               predict.Files("*.json"),
	"filter":          predict.Set(scoring.FilterNames()),
	"table":           predict.Set{scoring.TechRatingFiveBand.Name, scoring.TechRatingFourBand.Name},
	"format":          predict.Set{"term", "markdown", "html"},
}

func flags(fs *flag.FlagSet) map[string]complete.Predictor {
	res := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			res[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			res[f.Name] = predict.Nothing
			return
		}
		res[f.Name] = predict.Something
	})
	return res
}

// Completion returns the shell completion of fol, built from the registered
// commands and the global flags of fs.
func Completion(fs *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flags(fs),
	}
	for _, c := range Commands {
		sub := flag.NewFlagSet(c.Command.Name(), flag.ContinueOnError)
		c.Command.SetFlags(sub)
		root.Sub[c.Command.Name()] = &complete.Command{Flags: flags(sub)}
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	return root
}
