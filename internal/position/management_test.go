package position

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"swing-trading-bot/internal/types"
)

// sliceSource is a minimal in-memory bar source for simulation tests.
type sliceSource []types.Bar

func (s sliceSource) Len() int { return len(s) }

func (s sliceSource) At(i int) (types.Bar, error) {
	if i < 0 || i >= len(s) {
		return types.Bar{}, errors.New("index out of range")
	}
	return s[i], nil
}

func closeBar(i int, close float64) types.Bar {
	return types.Bar{
		Timestamp: time.Date(2024, 1, 1, i, 0, 0, 0, time.UTC),
		Open:      close,
		High:      close,
		Low:       close,
		Close:     close,
	}
}

func TestManagementTaxValidation(t *testing.T) {
	src := sliceSource{closeBar(0, 100)}
	if _, err := NewManagement(src, types.OneHour, 200, 10000, 1.5); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for tax rate 1.5, got %v", err)
	}
	if _, err := NewManagement(src, types.OneHour, 200, 10000, -0.1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for negative tax rate, got %v", err)
	}
}

func TestCloseStopLossPositions(t *testing.T) {
	src := sliceSource{
		closeBar(0, 100),
		closeBar(1, 95), // above the 90 threshold
		closeBar(2, 88), // breaches entry - 10%
	}
	m, err := NewManagement(src, types.OneHour, 200, 10000, 0)
	if err != nil {
		t.Fatal(err)
	}
	p, err := m.Hub().OpenNewPosition(100, 1, types.StopLoss, types.Long, 10)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if err := m.CloseStopLossPositions(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if !p.IsOpen {
		t.Fatal("Expected position to survive bar 1")
	}

	if err := m.CloseStopLossPositions(ctx, 2); err != nil {
		t.Fatal(err)
	}
	if p.IsOpen {
		t.Error("Expected stop loss to trigger at bar 2")
	}
	if p.ClosePrice != 88 {
		t.Errorf("Expected close price 88, got %f", p.ClosePrice)
	}
}

func TestCloseAllRemaining(t *testing.T) {
	src := sliceSource{closeBar(0, 100), closeBar(1, 130)}
	m, err := NewManagement(src, types.OneHour, 200, 10000, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Hub().OpenNewPosition(100, 2, types.Basic, types.Long, 0); err != nil {
		t.Fatal(err)
	}

	if err := m.CloseAllRemaining(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if m.Hub().HasOpenPosition() {
		t.Error("Expected no open positions after CloseAllRemaining")
	}
	if m.Hub().Latest().ClosePrice != 130 {
		t.Errorf("Expected close price 130, got %f", m.Hub().Latest().ClosePrice)
	}

	// A second call is a no-op on the already-closed ledger.
	if err := m.CloseAllRemaining(context.Background(), 0); err != nil {
		t.Errorf("Expected no-op, got %v", err)
	}
	if m.Hub().Latest().ClosePrice != 130 {
		t.Error("Expected close price to be unchanged")
	}
}

func TestEvaluate(t *testing.T) {
	src := sliceSource{closeBar(0, 100)}
	m, err := NewManagement(src, types.OneHour, 200, 10000, 0.25)
	if err != nil {
		t.Fatal(err)
	}

	long, err := m.Hub().OpenNewPosition(100, 2, types.Basic, types.Long, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := long.Close(110); err != nil {
		t.Fatal(err)
	}

	short, err := m.Hub().OpenNewPosition(100, 2, types.Basic, types.Short, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := short.Close(110); err != nil {
		t.Fatal(err)
	}

	profits := m.Evaluate()
	if len(profits) != 2 {
		t.Fatalf("Expected 2 profits, got %d", len(profits))
	}
	// (110-100)*2*(1-0.25) = 15 for the long, mirrored for the short.
	if math.Abs(profits[0]-15) > 1e-9 {
		t.Errorf("Expected long profit 15, got %f", profits[0])
	}
	if math.Abs(profits[1]+15) > 1e-9 {
		t.Errorf("Expected short profit -15, got %f", profits[1])
	}
}

func TestPriceAtFallsBackToOpen(t *testing.T) {
	src := sliceSource{
		{Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Open: 50, High: 50, Low: 50, Close: math.NaN()},
	}
	m, err := NewManagement(src, types.OneHour, 200, 10000, 0)
	if err != nil {
		t.Fatal(err)
	}
	price, err := m.priceAt(0)
	if err != nil {
		t.Fatal(err)
	}
	if price != 50 {
		t.Errorf("Expected fallback to open 50, got %f", price)
	}
}
