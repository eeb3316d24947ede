package position

import (
	"fmt"

	"swing-trading-bot/internal/types"
)

// Hub is the ordered ledger of positions. Insertion order is
// chronological. At most the last position may be open; opening a new
// one force-closes whatever is currently open first.
type Hub struct {
	positions []*Position
	length    int
	timeFrame types.TimeFrame
}

func NewHub(tf types.TimeFrame) *Hub {
	return &Hub{timeFrame: tf}
}

// OpenNewPosition constructs a position of the requested kind at
// entryPrice and appends it to the ledger. An existing open position is
// force-closed at the new entry price (rollover). stopLossPercent is
// only consulted for the StopLoss kind.
func (h *Hub) OpenNewPosition(entryPrice, amount float64, kind types.PositionKind, orderType types.OrderType, stopLossPercent float64) (*Position, error) {
	if amount < types.SmallestInvest {
		return nil, fmt.Errorf("%w: amount %.4f is below the smallest possible invest %.2f", ErrInvalidArgument, amount, types.SmallestInvest)
	}

	var (
		p   *Position
		err error
	)
	switch kind {
	case types.StopLoss:
		p, err = NewStopLossPosition(entryPrice, amount, h.timeFrame, orderType, stopLossPercent)
	default:
		p, err = NewPosition(entryPrice, amount, h.timeFrame, orderType)
	}
	if err != nil {
		return nil, err
	}

	if err := h.append(p, entryPrice); err != nil {
		return nil, err
	}
	return p, nil
}

// OpenPosition appends a pre-built position with the same rollover
// behavior as OpenNewPosition.
func (h *Hub) OpenPosition(p *Position) error {
	if p == nil {
		return fmt.Errorf("%w: position must not be nil", ErrInvalidArgument)
	}
	return h.append(p, p.EntryPrice)
}

func (h *Hub) append(p *Position, rolloverPrice float64) error {
	if h.length >= 1 {
		if latest := h.positions[len(h.positions)-1]; latest.IsOpen {
			if err := latest.ForceClose(rolloverPrice); err != nil {
				return err
			}
		}
	}
	h.positions = append(h.positions, p)
	h.length++
	return h.CheckConsistency()
}

// CloseLatestPosition closes the most recent position if it is open.
// Closing on an empty ledger is an error; an already-closed latest
// position is a no-op.
func (h *Hub) CloseLatestPosition(closePrice float64) error {
	if len(h.positions) == 0 {
		return fmt.Errorf("%w: nothing to close", ErrEmptyLedger)
	}
	latest := h.positions[len(h.positions)-1]
	if !latest.IsOpen {
		return nil
	}
	if err := latest.Close(closePrice); err != nil {
		return err
	}
	return h.CheckConsistency()
}

// CheckConsistency verifies the ledger invariants: the tracked length
// matches the collection and only the last position may be open.
func (h *Hub) CheckConsistency() error {
	if h.length != len(h.positions) {
		return fmt.Errorf("%w: length %d does not match %d positions", ErrLedgerCorrupt, h.length, len(h.positions))
	}
	for i, p := range h.positions[:max(len(h.positions)-1, 0)] {
		if p.IsOpen {
			return fmt.Errorf("%w: position %d is open but is not the most recent", ErrLedgerCorrupt, i)
		}
	}
	return nil
}

// All returns the ledger in chronological order.
func (h *Hub) All() []*Position {
	return h.positions
}

// ByKind returns all positions of one kind, in ledger order.
func (h *Hub) ByKind(kind types.PositionKind) []*Position {
	var out []*Position
	for _, p := range h.positions {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

func (h *Hub) Len() int { return h.length }

// Latest returns the most recent position, or nil for an empty ledger.
func (h *Hub) Latest() *Position {
	if len(h.positions) == 0 {
		return nil
	}
	return h.positions[len(h.positions)-1]
}

// HasOpenPosition reports whether the ledger currently holds an open
// position (which is always the latest one).
func (h *Hub) HasOpenPosition() bool {
	latest := h.Latest()
	return latest != nil && latest.IsOpen
}

func (h *Hub) TimeFrame() types.TimeFrame { return h.timeFrame }
