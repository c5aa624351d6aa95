package cmd

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/folio/scoring"
	"github.com/etnz/folio/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	port int
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the portfolio and the scores over HTTP" }
func (*serveCmd) Usage() string {
	return `fol serve [-port <port>]

  Starts the HTTP API. Cached results are refreshed on $FOLIO_REFRESH.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.port, "port", 0, "Port to listen on, defaults to $FOLIO_PORT.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail("opening ledger", err)
	}
	defer w.close()

	port := w.cfg.Port
	if c.port > 0 {
		port = c.port
	}
	srv, err := server.New(server.Config{
		Port:         port,
		Log:          w.log,
		Ledger:       w.ledger,
		Sink:         w.sink,
		Prices:       w.prices,
		Attributes:   scoring.File{Path: w.cfg.AttributesFile},
		Normalizer:   normalizer(w.cfg),
		Special:      w.cfg.SpecialSet(),
		Options:      w.options(),
		ScoreOptions: []scoring.Option{scoring.WithTechRatingTable(w.cfg.TechTable)},
		Currency:     w.cfg.Currency,
		CacheTTL:     w.cfg.CacheTTL,
		Refresh:      w.cfg.Refresh,
	})
	if err != nil {
		return fail("creating server", err)
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fail("running server", err)
		}
	case <-quit:
		w.log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fail("shutting down server", err)
	}
	return subcommands.ExitSuccess
}
