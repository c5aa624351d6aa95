// Package store persists the ledger and the latest quotes in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/folio"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a quote is unknown.
var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	time       TEXT NOT NULL,
	type       TEXT NOT NULL,
	instrument TEXT NOT NULL DEFAULT '',
	quantity   TEXT NOT NULL,
	price      TEXT NOT NULL,
	currency   TEXT NOT NULL,
	commission TEXT NOT NULL DEFAULT '',
	memo       TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_transactions_instrument ON transactions(instrument);
CREATE TABLE IF NOT EXISTS quotes (
	instrument TEXT PRIMARY KEY,
	price      TEXT NOT NULL,
	currency   TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL
);`

// Store is a SQLite ledger. It implements folio.TransactionSource and
// folio.TransactionSink.
type Store struct {
	conn       *sql.DB
	normalizer folio.Normalizer
	log        zerolog.Logger
	now        func() time.Time
}

// Open opens (and creates if needed) the database at path. ":memory:" opens
// a private in-memory database.
func Open(ctx context.Context, path string, n folio.Normalizer, log zerolog.Logger) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps in-memory databases alive and serializes writers
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Store{
		conn:       conn,
		normalizer: n,
		log:        log.With().Str("component", "store").Str("path", path).Logger(),
		now:        time.Now,
	}, nil
}

// Close closes the database connection
func (s *Store) Close() error { return s.conn.Close() }

// AppendTransaction records tx. Recording the same id twice is an error.
func (s *Store) AppendTransaction(ctx context.Context, tx folio.Transaction) error {
	r := tx.Raw()
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO transactions (id, time, type, instrument, quantity, price, currency, commission, memo)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Time, r.Type, r.Instrument, r.Quantity, r.UnitPrice, r.Currency, r.Commission, r.Memo)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", r.ID, err)
	}
	s.log.Debug().Str("id", r.ID).Str("type", r.Type).Str("instrument", r.Instrument).Msg("transaction appended")
	return nil
}

// ImportLedger appends every transaction of txs in a single database
// transaction. Transactions whose id is already stored are skipped. It
// returns the number of transactions inserted.
func (s *Store) ImportLedger(ctx context.Context, txs []folio.Transaction) (int, error) {
	dbtx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin import: %w", err)
	}
	defer dbtx.Rollback()

	inserted := 0
	for _, tx := range txs {
		r := tx.Raw()
		res, err := dbtx.ExecContext(ctx,
			`INSERT OR IGNORE INTO transactions (id, time, type, instrument, quantity, price, currency, commission, memo)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Time, r.Type, r.Instrument, r.Quantity, r.UnitPrice, r.Currency, r.Commission, r.Memo)
		if err != nil {
			return 0, fmt.Errorf("failed to import transaction %s: %w", r.ID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	if err := dbtx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	s.log.Info().Int("read", len(txs)).Int("inserted", inserted).Msg("ledger imported")
	return inserted, nil
}

// Transactions returns the whole ledger in chronological order.
func (s *Store) Transactions(ctx context.Context) ([]folio.Transaction, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, time, type, instrument, quantity, price, currency, commission, memo
		 FROM transactions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	ledger := folio.NewLedger()
	for rows.Next() {
		var r folio.RawTransaction
		if err := rows.Scan(&r.ID, &r.Time, &r.Type, &r.Instrument, &r.Quantity, &r.UnitPrice, &r.Currency, &r.Commission, &r.Memo); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx, err := s.normalizer.Normalize(r)
		if err != nil {
			return nil, fmt.Errorf("stored transaction %s: %w", r.ID, err)
		}
		ledger.Append(tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return ledger.All(), nil
}

// PutQuote records the latest price of instrument.
func (s *Store) PutQuote(ctx context.Context, instrument string, q folio.Quote) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO quotes (instrument, price, currency, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(instrument) DO UPDATE SET price = excluded.price, currency = excluded.currency, updated_at = excluded.updated_at`,
		instrument, q.Price.String(), strings.ToUpper(q.Currency), s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to store quote %s: %w", instrument, err)
	}
	return nil
}

// Quote returns the latest price of instrument, or ErrNotFound.
func (s *Store) Quote(ctx context.Context, instrument string) (folio.Quote, error) {
	var price, currency string
	err := s.conn.QueryRowContext(ctx, `SELECT price, currency FROM quotes WHERE instrument = ?`, instrument).Scan(&price, &currency)
	if errors.Is(err, sql.ErrNoRows) {
		return folio.Quote{}, fmt.Errorf("quote %s: %w", instrument, ErrNotFound)
	}
	if err != nil {
		return folio.Quote{}, fmt.Errorf("failed to query quote %s: %w", instrument, err)
	}
	return parseQuote(instrument, price, currency)
}

// Prices returns every stored quote.
func (s *Store) Prices(ctx context.Context) (folio.PriceMap, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT instrument, price, currency FROM quotes`)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	prices := make(folio.PriceMap)
	for rows.Next() {
		var instrument, price, currency string
		if err := rows.Scan(&instrument, &price, &currency); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		q, err := parseQuote(instrument, price, currency)
		if err != nil {
			return nil, err
		}
		prices[instrument] = q
	}
	return prices, rows.Err()
}

func parseQuote(instrument, price, currency string) (folio.Quote, error) {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return folio.Quote{}, fmt.Errorf("invalid stored price for %s: %w", instrument, err)
	}
	return folio.Quote{Price: p, Currency: currency}, nil
}
