package position

import (
	"errors"
	"testing"

	"swing-trading-bot/internal/types"
)

func TestHubRollover(t *testing.T) {
	h := NewHub(types.OneHour)

	// Three successive opens: each new entry force-closes the previous.
	for i, price := range []float64{100, 110, 120} {
		if _, err := h.OpenNewPosition(price, 1, types.Basic, types.Long, 0); err != nil {
			t.Fatalf("Open %d failed: %v", i, err)
		}
	}

	if h.Len() != 3 {
		t.Fatalf("Expected 3 positions, got %d", h.Len())
	}
	all := h.All()
	if all[0].IsOpen || all[1].IsOpen {
		t.Error("Expected earlier positions to be force-closed")
	}
	if !all[2].IsOpen {
		t.Error("Expected the latest position to stay open")
	}

	// Rollover closes at the new entry price.
	if all[0].ClosePrice != 110 {
		t.Errorf("Expected first position closed at 110, got %f", all[0].ClosePrice)
	}
	if all[1].ClosePrice != 120 {
		t.Errorf("Expected second position closed at 120, got %f", all[1].ClosePrice)
	}

	if err := h.CheckConsistency(); err != nil {
		t.Errorf("Expected consistent ledger, got %v", err)
	}
}

func TestHubSmallestInvest(t *testing.T) {
	h := NewHub(types.OneHour)
	if _, err := h.OpenNewPosition(100, types.SmallestInvest/2, types.Basic, types.Long, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument below smallest invest, got %v", err)
	}
	if h.Len() != 0 {
		t.Errorf("Expected empty ledger after rejected open, got %d", h.Len())
	}
}

func TestHubCloseLatest(t *testing.T) {
	h := NewHub(types.OneHour)

	if err := h.CloseLatestPosition(100); !errors.Is(err, ErrEmptyLedger) {
		t.Errorf("Expected ErrEmptyLedger, got %v", err)
	}

	if _, err := h.OpenNewPosition(100, 1, types.Basic, types.Long, 0); err != nil {
		t.Fatal(err)
	}
	if err := h.CloseLatestPosition(105); err != nil {
		t.Fatalf("Expected close to succeed, got %v", err)
	}
	if h.HasOpenPosition() {
		t.Error("Expected no open position after close")
	}

	// Closing an already-closed latest is a no-op.
	if err := h.CloseLatestPosition(110); err != nil {
		t.Errorf("Expected no-op, got %v", err)
	}
	if h.Latest().ClosePrice != 105 {
		t.Errorf("Expected close price unchanged at 105, got %f", h.Latest().ClosePrice)
	}
}

func TestHubByKind(t *testing.T) {
	h := NewHub(types.OneDay)
	if _, err := h.OpenNewPosition(100, 1, types.Basic, types.Long, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := h.OpenNewPosition(110, 1, types.StopLoss, types.Long, 5); err != nil {
		t.Fatal(err)
	}
	if _, err := h.OpenNewPosition(120, 1, types.StopLoss, types.Short, 5); err != nil {
		t.Fatal(err)
	}

	stops := h.ByKind(types.StopLoss)
	if len(stops) != 2 {
		t.Fatalf("Expected 2 stop-loss positions, got %d", len(stops))
	}
	if stops[0].EntryPrice != 110 || stops[1].EntryPrice != 120 {
		t.Error("Expected ByKind to preserve ledger order")
	}
	if len(h.ByKind(types.Basic)) != 1 {
		t.Errorf("Expected 1 basic position, got %d", len(h.ByKind(types.Basic)))
	}
}

func TestHubOpenPositionNil(t *testing.T) {
	h := NewHub(types.OneHour)
	if err := h.OpenPosition(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for nil position, got %v", err)
	}
}
