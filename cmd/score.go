package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio/renderer"
	"github.com/etnz/folio/scoring"
	"github.com/google/subcommands"
)

// scoreCmd ranks the instruments of an attribute snapshot file.
type scoreCmd struct {
	file   string
	rows   string
	filter string
	top    int
	table  string
}

func (*scoreCmd) Name() string     { return "score" }
func (*scoreCmd) Synopsis() string { return "rank instruments by investment score" }
func (*scoreCmd) Usage() string {
	return fmt.Sprintf(`fol score [-f <attributes.json>] [-rows <jsonpath>] [-filter <name>] [-n <count>] [-table <name>]

  Scores every instrument of a screener snapshot and displays the best ones.
  Filters: %v.
`, scoring.FilterNames())
}

func (c *scoreCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "Attributes file, defaults to the global -attributes-file.")
	f.StringVar(&c.rows, "rows", "", "JSONPath of the rows in the file, the whole document by default.")
	f.StringVar(&c.filter, "filter", "all", "Screener filter.")
	f.IntVar(&c.top, "n", scoring.DefaultTop, "Number of instruments to display.")
	f.StringVar(&c.table, "table", "", "Technical rating table (five-band, four-band), defaults to $FOLIO_TECH_RATING.")
}

func (c *scoreCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := scoring.ParseFilter(c.filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		return fail("loading configuration", err)
	}
	log := newLogger(cfg)

	table := cfg.TechTable
	if c.table != "" {
		if table, err = scoring.ParseThresholdTable(c.table); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	path := c.file
	if path == "" {
		path = cfg.AttributesFile
	}

	attrs, err := scoring.File{Path: path, Decoder: scoring.Decoder{Rows: c.rows}}.Attributes(ctx)
	if err != nil {
		return fail("loading attributes", err)
	}
	selected := filter.Apply(attrs)
	log.Debug().Int("universe", len(attrs)).Int("selected", len(selected)).Str("filter", filter.Name).Msg("attributes loaded")

	scored := scoring.ScoreAll(selected, scoring.WithTechRatingTable(table))
	ranking := renderer.NewRanking("Investment scores", filter.Name, scoring.Top(scored, c.top), scoring.Summarize(scored))
	if err := printMarkdown("Investment scores", renderer.RenderRanking(ranking)); err != nil {
		return fail("rendering ranking", err)
	}
	return subcommands.ExitSuccess
}
