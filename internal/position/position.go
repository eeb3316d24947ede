package position

import (
	"fmt"

	"github.com/google/uuid"

	"swing-trading-bot/internal/types"
)

// Position is a single simulated trade. The stop-loss behavior is a
// tagged variant selected at construction rather than a subtype: a
// StopLoss position carries StopLossPercent and reacts to ImplicitClose,
// a Basic position ignores it.
type Position struct {
	ID              uuid.UUID
	EntryPrice      float64
	Amount          float64
	TimeFrame       types.TimeFrame
	OrderType       types.OrderType
	Kind            types.PositionKind
	StopLossPercent float64
	IsOpen          bool
	ClosePrice      float64
	CreatedIdx      int
}

// NewPosition creates an open basic position.
func NewPosition(entryPrice, amount float64, tf types.TimeFrame, orderType types.OrderType) (*Position, error) {
	if entryPrice <= 0 {
		return nil, fmt.Errorf("%w: entry price has to be bigger than 0", ErrInvalidArgument)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount has to be bigger than 0", ErrInvalidArgument)
	}
	return &Position{
		ID:         uuid.New(),
		EntryPrice: entryPrice,
		Amount:     amount,
		TimeFrame:  tf,
		OrderType:  orderType,
		Kind:       types.Basic,
		IsOpen:     true,
	}, nil
}

// NewStopLossPosition creates an open position that auto-closes once
// adverse price movement exceeds stopLossPercent.
func NewStopLossPosition(entryPrice, amount float64, tf types.TimeFrame, orderType types.OrderType, stopLossPercent float64) (*Position, error) {
	if stopLossPercent <= 0 || stopLossPercent >= 100 {
		return nil, fmt.Errorf("%w: stop-loss percent has to be between 0 and 100", ErrInvalidArgument)
	}
	p, err := NewPosition(entryPrice, amount, tf, orderType)
	if err != nil {
		return nil, err
	}
	p.Kind = types.StopLoss
	p.StopLossPercent = stopLossPercent
	return p, nil
}

// Close closes an open position at closePrice. Closing a closed
// position is an error.
func (p *Position) Close(closePrice float64) error {
	if err := checkClosePrice(closePrice); err != nil {
		return err
	}
	if !p.IsOpen {
		return ErrAlreadyClosed
	}
	p.IsOpen = false
	p.ClosePrice = closePrice
	return nil
}

// ForceClose closes the position if it is still open and is a no-op
// otherwise. Used for rollover and end-of-simulation cleanup.
func (p *Position) ForceClose(closePrice float64) error {
	if !p.IsOpen {
		return nil
	}
	return p.Close(closePrice)
}

// ImplicitClose closes a stop-loss position when the price has moved
// against the entry by more than the configured percentage. Basic
// positions and non-triggering prices are a no-op.
func (p *Position) ImplicitClose(currentPrice float64) error {
	if err := checkClosePrice(currentPrice); err != nil {
		return err
	}
	if p.Kind != types.StopLoss || !p.IsOpen {
		return nil
	}

	priceDrop := p.EntryPrice * (p.StopLossPercent / 100)
	switch p.OrderType {
	case types.Long:
		if currentPrice <= p.EntryPrice-priceDrop {
			return p.Close(currentPrice)
		}
	case types.Short:
		if currentPrice >= p.EntryPrice+priceDrop {
			return p.Close(currentPrice)
		}
	}
	return nil
}

func checkClosePrice(v float64) error {
	if v <= 0 {
		return fmt.Errorf("%w: close price has to be bigger than 0", ErrInvalidArgument)
	}
	return nil
}
