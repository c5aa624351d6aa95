package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/etnz/folio/scoring"
	"github.com/go-chi/chi/v5"
	"github.com/patrickmn/go-cache"
)

// sourceError tells which collaborator failed.
type sourceError struct {
	source string
	err    error
}

func (e *sourceError) Error() string { return fmt.Sprintf("%s: %v", e.source, e.err) }
func (e *sourceError) Unwrap() error { return e.err }

// status maps a load failure to its HTTP status: a broken ledger is ours, a
// broken price feed is upstream.
func status(err error) int {
	var serr *sourceError
	if errors.As(err, &serr) && serr.source == "prices" {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) transactions(ctx context.Context) ([]folio.Transaction, error) {
	txs, err := s.cfg.Ledger.Transactions(ctx)
	if err != nil {
		return nil, &sourceError{"ledger", err}
	}
	return txs, nil
}

// portfolio aggregates the ledger, cached until the next refresh or write.
func (s *Server) portfolio(ctx context.Context) (folio.Portfolio, error) {
	if v, ok := s.cache.Get("portfolio"); ok {
		return v.(folio.Portfolio), nil
	}
	txs, err := s.transactions(ctx)
	if err != nil {
		return folio.Portfolio{}, err
	}
	prices := folio.PriceMap{}
	if s.cfg.Prices != nil {
		if prices, err = s.cfg.Prices.Prices(ctx); err != nil {
			return folio.Portfolio{}, &sourceError{"prices", err}
		}
	}
	pf, err := folio.Aggregate(txs, s.cfg.Special, prices, s.cfg.Options...)
	if err != nil {
		return folio.Portfolio{}, &sourceError{"ledger", err}
	}
	s.cache.Set("portfolio", pf, cache.DefaultExpiration)
	return pf, nil
}

func (s *Server) universe(ctx context.Context) ([]scoring.Attributes, error) {
	if v, ok := s.cache.Get("attributes"); ok {
		return v.([]scoring.Attributes), nil
	}
	attrs, err := s.cfg.Attributes.Attributes(ctx)
	if err != nil {
		return nil, &sourceError{"attributes", err}
	}
	s.cache.Set("attributes", attrs, cache.DefaultExpiration)
	return attrs, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	pf, err := s.portfolio(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to compute portfolio")
		s.writeError(w, status(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, pf)
}

func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	instrument := chi.URLParam(r, "instrument")
	pf, err := s.portfolio(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to compute portfolio")
		s.writeError(w, status(err), err.Error())
		return
	}
	pos, ok := pf.Position(instrument)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("no open position on %q", instrument))
		return
	}
	s.writeJSON(w, http.StatusOK, pos)
}

func (s *Server) handleLiquidity(w http.ResponseWriter, r *http.Request) {
	txs, err := s.transactions(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load ledger")
		s.writeError(w, status(err), err.Error())
		return
	}
	report := folio.Liquidity(txs, s.cfg.Currency)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"report":           report,
		"netContributions": report.NetContributions(),
	})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.transactions(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load ledger")
		s.writeError(w, status(err), err.Error())
		return
	}
	if txs == nil {
		txs = []folio.Transaction{}
	}
	s.writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleAppendTransaction(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Sink == nil {
		s.writeError(w, http.StatusNotImplemented, "ledger is read-only")
		return
	}
	var raw folio.RawTransaction
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tx, err := s.cfg.Normalizer.Normalize(raw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.cfg.Sink.AppendTransaction(r.Context(), tx); err != nil {
		s.log.Error().Err(err).Msg("Failed to append transaction")
		s.writeError(w, http.StatusInternalServerError, "failed to append transaction")
		return
	}
	s.cache.Delete("portfolio")
	s.log.Info().Str("id", tx.ID).Str("type", tx.Type.String()).Str("instrument", tx.Instrument).Msg("transaction appended")
	s.writeJSON(w, http.StatusCreated, tx)
}

// handleScore scores one snapshot, or a list of snapshots ranked.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '[' {
		var attrs []scoring.Attributes
		if err := json.Unmarshal(body, &attrs); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid attributes: "+err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, scoring.Rank(scoring.ScoreAll(attrs, s.cfg.ScoreOptions...)))
		return
	}
	var a scoring.Attributes
	if err := json.Unmarshal(body, &a); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid attributes: "+err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, scoring.Score(a, s.cfg.ScoreOptions...))
}

func (s *Server) handleScreener(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Attributes == nil {
		s.writeError(w, http.StatusNotImplemented, "no attribute source configured")
		return
	}
	filter, err := scoring.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit := scoring.DefaultTop
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit <= 0 {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", v))
			return
		}
	}
	attrs, err := s.universe(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load attributes")
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	scored := scoring.ScoreAll(filter.Apply(attrs), s.cfg.ScoreOptions...)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"filter":  filter.Name,
		"summary": scoring.Summarize(scored),
		"results": scoring.Top(scored, limit),
	})
}

// handleReport renders the positions as an HTML page.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	pf, err := s.portfolio(r.Context())
	if err != nil {
		s.writeError(w, status(err), err.Error())
		return
	}
	page, err := renderer.HTML("Portfolio", renderer.RenderPositions(renderer.NewPositions("Portfolio", pf)))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, page)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
