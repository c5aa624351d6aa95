package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime asserts that Time() is canonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.Time() != d2.Time() {
		t.Errorf("same day gives two different times")
	}
}

func TestNewNormalizes(t *testing.T) {
	if got, want := New(2025, 2, 30), New(2025, 3, 2); got != want {
		t.Errorf("New(2025, 2, 30) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, 7, 1)},
		{in: "2025-7-1", want: New(2025, 7, 1)},
		{in: "01/07/2025", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSub(t *testing.T) {
	tests := []struct {
		d, x Date
		want int
	}{
		{New(2025, 1, 1), New(2025, 1, 1), 0},
		{New(2025, 1, 2), New(2025, 1, 1), 1},
		{New(2025, 1, 1), New(2024, 1, 1), 366},
		{New(2024, 1, 1), New(2025, 1, 1), -366},
	}
	for _, tt := range tests {
		if got := tt.d.Sub(tt.x); got != tt.want {
			t.Errorf("%v.Sub(%v) = %d, want %d", tt.d, tt.x, got, tt.want)
		}
	}
}

func TestFromTime(t *testing.T) {
	tm := time.Date(2025, 3, 4, 23, 59, 0, 0, time.UTC)
	if got, want := FromTime(tm), New(2025, 3, 4); got != want {
		t.Errorf("FromTime() = %v, want %v", got, want)
	}
}

func TestJSON(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2025-7-1"`), &d); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(b), `"2025-07-01"`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}
