package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"swing-trading-bot/internal/position"
)

// WriteCSV writes one row per ledger entry plus a total row. profits
// must be in ledger order, as returned by Management.Evaluate.
func WriteCSV(path string, positions []*position.Position, profits []float64) error {
	if len(positions) != len(profits) {
		return fmt.Errorf("positions (%d) and profits (%d) differ in length", len(positions), len(profits))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"index", "kind", "side", "entry_price", "close_price", "amount", "profit"}); err != nil {
		return err
	}

	total := 0.0
	for i, p := range positions {
		total += profits[i]
		row := []string{
			fmt.Sprintf("%d", i),
			string(p.Kind),
			string(p.OrderType),
			fmt.Sprintf("%.8f", p.EntryPrice),
			fmt.Sprintf("%.8f", p.ClosePrice),
			fmt.Sprintf("%.8f", p.Amount),
			fmt.Sprintf("%.8f", profits[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	if err := w.Write([]string{"total", "", "", "", "", "", fmt.Sprintf("%.8f", total)}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
