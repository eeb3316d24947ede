package position

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"swing-trading-bot/internal/types"
)

func TestNewPositionValidation(t *testing.T) {
	if _, err := NewPosition(0, 1, types.OneHour, types.Long); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for zero entry price, got %v", err)
	}
	if _, err := NewPosition(100, -1, types.OneHour, types.Long); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for negative amount, got %v", err)
	}

	p, err := NewPosition(100, 2, types.OneHour, types.Long)
	if err != nil {
		t.Fatalf("Expected position, got error: %v", err)
	}
	if !p.IsOpen {
		t.Error("Expected new position to be open")
	}
	if p.Kind != types.Basic {
		t.Errorf("Expected Basic kind, got %v", p.Kind)
	}
	if p.ID == uuid.Nil {
		t.Error("Expected a non-zero position ID")
	}
}

func TestNewStopLossPositionValidation(t *testing.T) {
	for _, pct := range []float64{0, -5, 100, 150} {
		if _, err := NewStopLossPosition(100, 1, types.OneHour, types.Long, pct); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Expected ErrInvalidArgument for stop-loss percent %.1f, got %v", pct, err)
		}
	}

	p, err := NewStopLossPosition(100, 1, types.OneHour, types.Short, 10)
	if err != nil {
		t.Fatalf("Expected position, got error: %v", err)
	}
	if p.Kind != types.StopLoss {
		t.Errorf("Expected StopLoss kind, got %v", p.Kind)
	}
	if p.StopLossPercent != 10 {
		t.Errorf("Expected stop-loss percent 10, got %f", p.StopLossPercent)
	}
}

func TestPositionClose(t *testing.T) {
	p, _ := NewPosition(100, 2, types.OneHour, types.Long)

	if err := p.Close(110); err != nil {
		t.Fatalf("Expected close to succeed, got %v", err)
	}
	if p.IsOpen {
		t.Error("Expected position to be closed")
	}
	if p.ClosePrice != 110 {
		t.Errorf("Expected close price 110, got %f", p.ClosePrice)
	}

	// Double close is an error.
	if err := p.Close(120); !errors.Is(err, ErrAlreadyClosed) {
		t.Errorf("Expected ErrAlreadyClosed, got %v", err)
	}

	// ForceClose on a closed position is a no-op.
	if err := p.ForceClose(120); err != nil {
		t.Errorf("Expected ForceClose no-op, got %v", err)
	}
	if p.ClosePrice != 110 {
		t.Errorf("Expected close price unchanged, got %f", p.ClosePrice)
	}
}

func TestImplicitCloseLong(t *testing.T) {
	p, _ := NewStopLossPosition(100, 1, types.OneHour, types.Long, 10)

	// 92 is above the 90 threshold: stays open.
	if err := p.ImplicitClose(92); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !p.IsOpen {
		t.Fatal("Expected position to stay open above the threshold")
	}

	// 88 breaches entry - 10%: closes.
	if err := p.ImplicitClose(88); err != nil {
		t.Fatalf("Expected implicit close to succeed, got %v", err)
	}
	if p.IsOpen {
		t.Error("Expected position to be closed at 88")
	}
	if p.ClosePrice != 88 {
		t.Errorf("Expected close price 88, got %f", p.ClosePrice)
	}
}

func TestImplicitCloseShort(t *testing.T) {
	p, _ := NewStopLossPosition(100, 1, types.OneHour, types.Short, 10)

	if err := p.ImplicitClose(105); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !p.IsOpen {
		t.Fatal("Expected short to survive 105")
	}

	if err := p.ImplicitClose(112); err != nil {
		t.Fatalf("Expected implicit close to succeed, got %v", err)
	}
	if p.IsOpen {
		t.Error("Expected short to be closed at 112")
	}
}

func TestImplicitCloseBasicIsNoop(t *testing.T) {
	p, _ := NewPosition(100, 1, types.OneHour, types.Long)
	if err := p.ImplicitClose(1); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !p.IsOpen {
		t.Error("Expected basic position to ignore implicit close")
	}
}

func TestImplicitCloseRejectsBadPrice(t *testing.T) {
	p, _ := NewStopLossPosition(100, 1, types.OneHour, types.Long, 10)
	if err := p.ImplicitClose(0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for zero price, got %v", err)
	}
}
