package position

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"swing-trading-bot/internal/logger"
	"swing-trading-bot/internal/types"
)

// BarSource is the slice of the bar-source contract the simulation
// needs. The concrete source is supplied externally and outlives the
// management object.
type BarSource interface {
	Len() int
	At(i int) (types.Bar, error)
}

// Management evaluates the ledger against bar data: it sweeps stop-loss
// positions every tick, force-closes remainders at simulation end and
// computes realized profit with tax applied.
type Management struct {
	hub     *Hub
	source  BarSource
	balance float64
	limit   float64
	taxRate float64
}

func NewManagement(source BarSource, tf types.TimeFrame, balance, limit, taxRate float64) (*Management, error) {
	if taxRate < 0 || taxRate > 1 {
		return nil, fmt.Errorf("%w: tax rate must be between 0 and 1", ErrInvalidArgument)
	}
	return &Management{
		hub:     NewHub(tf),
		source:  source,
		balance: balance,
		limit:   limit,
		taxRate: taxRate,
	}, nil
}

// Hub returns the ledger owned by this simulation.
func (m *Management) Hub() *Hub { return m.hub }

// ResetHub discards the ledger and starts an empty one.
func (m *Management) ResetHub() {
	m.hub = NewHub(m.hub.TimeFrame())
}

// CloseStopLossPositions applies the stop-loss check to every open
// stop-loss position at the bar with index idx. Bar-source errors
// propagate; they end the simulation.
func (m *Management) CloseStopLossPositions(ctx context.Context, idx int) error {
	for _, p := range m.hub.ByKind(types.StopLoss) {
		if !p.IsOpen {
			continue
		}
		price, err := m.priceAt(idx)
		if err != nil {
			return err
		}
		wasOpen := p.IsOpen
		if err := p.ImplicitClose(price); err != nil {
			return err
		}
		if wasOpen && !p.IsOpen {
			logger.Warn(ctx, "Stop loss triggered",
				"event", "STOP_LOSS_TRIGGERED",
				"position_id", p.ID.String(),
				"entry_price", p.EntryPrice,
				"close_price", price,
				"stop_loss_percent", p.StopLossPercent,
				"index", idx,
			)
		}
	}
	return nil
}

// CloseAllRemaining force-closes every position at the price of the bar
// with index idx. Called once when a simulation ends, so the final P/L
// can be realized.
func (m *Management) CloseAllRemaining(ctx context.Context, idx int) error {
	price, err := m.priceAt(idx)
	if err != nil {
		return err
	}
	for _, p := range m.hub.All() {
		if err := p.ForceClose(price); err != nil {
			return err
		}
	}
	logger.Debug(ctx, "Remaining positions closed", "index", idx, "price", price)
	return nil
}

// Evaluate computes the realized profit of every position in ledger
// order: (close-entry)*amount for longs, (entry-close)*amount for
// shorts, each multiplied by (1 - taxRate). Assumes all positions are
// closed.
func (m *Management) Evaluate() []float64 {
	positions := m.hub.All()
	afterTax := decimal.NewFromFloat(1).Sub(decimal.NewFromFloat(m.taxRate))

	profits := make([]float64, 0, len(positions))
	for _, p := range positions {
		entry := decimal.NewFromFloat(p.EntryPrice)
		exit := decimal.NewFromFloat(p.ClosePrice)
		amount := decimal.NewFromFloat(p.Amount)

		var gross decimal.Decimal
		switch p.OrderType {
		case types.Long:
			gross = exit.Sub(entry).Mul(amount)
		case types.Short:
			gross = entry.Sub(exit).Mul(amount)
		}
		profits = append(profits, gross.Mul(afterTax).InexactFloat64())
	}
	return profits
}

// TaxRate returns the tax rate applied to realized profit.
func (m *Management) TaxRate() float64 { return m.taxRate }

// Balance returns the simulation's starting balance.
func (m *Management) Balance() float64 { return m.balance }

// priceAt resolves the evaluation price of the bar at idx: the close,
// falling back to the open when the close is missing.
func (m *Management) priceAt(idx int) (float64, error) {
	bar, err := m.source.At(idx)
	if err != nil {
		return 0, err
	}
	if bar.Close == 0 || math.IsNaN(bar.Close) {
		return bar.Open, nil
	}
	return bar.Close, nil
}
