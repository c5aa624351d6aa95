package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/folio"
	"github.com/google/subcommands"
)

// setup points the global flags to a fresh ledger in a temporary directory
// and captures the reports.
func setup(t *testing.T, ledger string) (string, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("FOLIO_CURRENCY", "EUR")

	path := filepath.Join(dir, "transactions.jsonl")
	if ledger != "" {
		if err := os.WriteFile(path, []byte(ledger), 0644); err != nil {
			t.Fatalf("Failed to write ledger: %v", err)
		}
	}
	oldLedger, oldFormat, oldOut := *ledgerFile, *format, stdout
	*ledgerFile, *format = path, "markdown"
	out := new(bytes.Buffer)
	stdout = out
	t.Cleanup(func() { *ledgerFile, *format, stdout = oldLedger, oldFormat, oldOut })
	return path, out
}

func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("Failed to parse %v: %v", args, err)
	}
	return c.Execute(context.Background(), f)
}

func TestRecordCmd(t *testing.T) {
	path, _ := setup(t, "")

	if status := run(t, &recordCmd{typ: folio.Buy}, "-d", "2025-03-01", "-s", "ACME", "-q", "10", "-p", "100", "-fee", "2"); status != subcommands.ExitSuccess {
		t.Fatalf("buy: got %v, want ExitSuccess", status)
	}
	if status := run(t, &recordCmd{typ: folio.Deposit}, "-d", "2025-02-01", "-a", "5000"); status != subcommands.ExitSuccess {
		t.Fatalf("deposit: got %v, want ExitSuccess", status)
	}

	l, err := folio.LedgerFile{Path: path, Normalizer: folio.Normalizer{Currency: "EUR"}}.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	txs := l.All()
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}
	// the deposit is older, it comes first
	if txs[0].Type != folio.Deposit || txs[1].Type != folio.Buy {
		t.Errorf("got types %v, %v, want deposit, buy", txs[0].Type, txs[1].Type)
	}
	if !txs[1].Commission.Equal(folio.M(2, "EUR")) {
		t.Errorf("got commission %v, want 2 EUR", txs[1].Commission)
	}
}

func TestRecordCmd_Invalid(t *testing.T) {
	setup(t, "")
	tests := []struct {
		name string
		cmd  subcommands.Command
		args []string
	}{
		{"missing price", &recordCmd{typ: folio.Buy}, []string{"-s", "ACME", "-q", "1"}},
		{"missing instrument", &recordCmd{typ: folio.Buy}, []string{"-q", "1", "-p", "10"}},
		{"negative amount", &recordCmd{typ: folio.Deposit}, []string{"-a", "-10"}},
		{"bad currency", &recordCmd{typ: folio.Deposit}, []string{"-a", "10", "-c", "XXXX"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status := run(t, tt.cmd, tt.args...); status != subcommands.ExitUsageError {
				t.Errorf("got %v, want ExitUsageError", status)
			}
		})
	}
}

const testLedger = `{"id":"1","time":"2025-01-01T00:00:00Z","type":"deposit","quantity":1,"price":5000,"currency":"EUR"}
{"id":"2","time":"2025-01-02T00:00:00Z","type":"buy","instrument":"ACME","quantity":10,"price":100,"currency":"EUR"}
{"id":"3","time":"2025-01-03T00:00:00Z","type":"buy","instrument":"ACME","quantity":10,"price":200,"currency":"EUR"}
{"id":"4","time":"2025-01-04T00:00:00Z","type":"sell","instrument":"ACME","quantity":15,"price":250,"currency":"EUR"}
{"id":"5","time":"2025-01-05T00:00:00Z","type":"buy","instrument":"GONE","quantity":3,"price":10,"currency":"EUR"}
{"id":"6","time":"2025-01-06T00:00:00Z","type":"sell","instrument":"GONE","quantity":3,"price":12,"currency":"EUR"}
`

func TestPositionsCmd(t *testing.T) {
	_, out := setup(t, testLedger)

	if status := run(t, &positionsCmd{}); status != subcommands.ExitSuccess {
		t.Fatalf("got %v, want ExitSuccess", status)
	}
	report := out.String()
	if !strings.Contains(report, "ACME") {
		t.Errorf("report does not list ACME:\n%s", report)
	}
	if strings.Contains(report, "GONE") {
		t.Errorf("report lists a closed position:\n%s", report)
	}
}

func TestPositionsCmd_Strict(t *testing.T) {
	setup(t, testLedger+`{"id":"7","time":"2025-01-07T00:00:00Z","type":"sell","instrument":"ACME","quantity":50,"price":250,"currency":"EUR"}
`)
	if status := run(t, &positionsCmd{}, "-strict"); status != subcommands.ExitFailure {
		t.Errorf("got %v, want ExitFailure", status)
	}
}

func TestTxCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string // ids listed
	}{
		{"all", nil, []string{"1", "2", "3", "4", "5", "6"}},
		{"instrument", []string{"-s", "GONE"}, []string{"5", "6"}},
		{"range", []string{"-from", "2025-01-02", "-to", "2025-01-03"}, []string{"2", "3"}},
		{"tail", []string{"-tail", "1"}, []string{"6"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out := setup(t, testLedger)
			if status := run(t, &txCmd{}, tt.args...); status != subcommands.ExitSuccess {
				t.Fatalf("got %v, want ExitSuccess", status)
			}
			report := out.String()
			for _, day := range []string{"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04", "2025-01-05", "2025-01-06"} {
				id := day[len(day)-1:]
				listed := strings.Contains(report, day)
				wanted := strings.Contains(strings.Join(tt.want, ","), id)
				if listed != wanted {
					t.Errorf("transaction of %s listed=%v, want %v\n%s", day, listed, wanted, report)
				}
			}
		})
	}
}

func TestTxCmd_HeadAndTail(t *testing.T) {
	setup(t, testLedger)
	if status := run(t, &txCmd{}, "-head", "1", "-tail", "1"); status != subcommands.ExitUsageError {
		t.Errorf("got %v, want ExitUsageError", status)
	}
}

func TestCompletion(t *testing.T) {
	fs := flag.NewFlagSet("fol", flag.ContinueOnError)
	fs.String("ledger-file", "", "")
	c := Completion(fs)
	for _, name := range []string{"buy", "sell", "deposit", "withdraw", "dividend", "tx", "positions", "liquidity", "score", "import", "serve"} {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("missing completion for %q", name)
		}
	}
	if _, ok := c.Sub["buy"].Flags["fee"]; !ok {
		t.Errorf("missing completion of buy -fee")
	}
	if _, ok := c.Flags["ledger-file"]; !ok {
		t.Errorf("missing completion of -ledger-file")
	}
}
