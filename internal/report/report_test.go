package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"swing-trading-bot/internal/position"
	"swing-trading-bot/internal/types"
)

func TestWriteCSV(t *testing.T) {
	p1, err := position.NewPosition(100, 2, types.OneHour, types.Long)
	if err != nil {
		t.Fatal(err)
	}
	if err := p1.Close(110); err != nil {
		t.Fatal(err)
	}
	p2, err := position.NewStopLossPosition(110, 1, types.OneHour, types.Long, 10)
	if err != nil {
		t.Fatal(err)
	}
	if err := p2.Close(95); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out", "backtest.csv")
	if err := WriteCSV(path, []*position.Position{p1, p2}, []float64{20, -15}); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// header + 2 positions + total
	if len(rows) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(rows))
	}
	if rows[0][0] != "index" {
		t.Errorf("Expected header row, got %v", rows[0])
	}
	if rows[2][1] != string(types.StopLoss) {
		t.Errorf("Expected stop_loss kind in row 2, got %s", rows[2][1])
	}
	if rows[3][0] != "total" || rows[3][6] != "5.00000000" {
		t.Errorf("Expected total row 5.00000000, got %v", rows[3])
	}
}

func TestWriteCSVLengthMismatch(t *testing.T) {
	p, err := position.NewPosition(100, 1, types.OneHour, types.Long)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "backtest.csv")
	if err := WriteCSV(path, []*position.Position{p}, nil); err == nil {
		t.Error("Expected error for mismatched lengths")
	}
}
