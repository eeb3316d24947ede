package bot

import (
	"context"
	"fmt"
	"math"

	"swing-trading-bot/internal/interfaces"
	"swing-trading-bot/internal/logger"
	"swing-trading-bot/internal/marketdata"
	"swing-trading-bot/internal/position"
	"swing-trading-bot/internal/ta"
	"swing-trading-bot/internal/tradelog"
	"swing-trading-bot/internal/types"
)

// Config holds the SMA bot parameters.
type Config struct {
	Name            string
	Symbol          string
	ShortWindow     int
	LongWindow      int
	StopLossPercent float64
	Amount          float64
	Balance         float64
	Limit           float64
	TaxRate         float64
}

// SMABot trades a simple-moving-average crossover: buy when the short
// SMA rises above the long SMA, sell when it falls below. Every opened
// position carries a stop loss which is swept each tick before the
// crossover is consulted.
type SMABot struct {
	name            string
	symbol          string
	source          interfaces.BarSource
	mgmt            *position.Management
	shortWindow     int
	longWindow      int
	stopLossPercent float64
	amount          float64
	lastEntryIdx    int
	history         []types.TradeRecord
}

var _ interfaces.Bot = (*SMABot)(nil)

func NewSMABot(source interfaces.BarSource, cfg Config) (*SMABot, error) {
	if cfg.ShortWindow <= 0 || cfg.LongWindow <= 0 {
		return nil, fmt.Errorf("%w: window sizes must be positive", position.ErrInvalidArgument)
	}
	if cfg.ShortWindow >= cfg.LongWindow {
		return nil, fmt.Errorf("%w: short window must be less than long window", position.ErrInvalidArgument)
	}
	if cfg.StopLossPercent <= 0 {
		return nil, fmt.Errorf("%w: stop-loss percent must be positive", position.ErrInvalidArgument)
	}
	if cfg.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", position.ErrInvalidArgument)
	}
	if source == nil {
		return nil, fmt.Errorf("%w: bar source is required", position.ErrInvalidArgument)
	}

	mgmt, err := position.NewManagement(source, source.TimeFrame(), cfg.Balance, cfg.Limit, cfg.TaxRate)
	if err != nil {
		return nil, err
	}

	return &SMABot{
		name:            cfg.Name,
		symbol:          cfg.Symbol,
		source:          source,
		mgmt:            mgmt,
		shortWindow:     cfg.ShortWindow,
		longWindow:      cfg.LongWindow,
		stopLossPercent: cfg.StopLossPercent,
		amount:          cfg.Amount,
	}, nil
}

// CalculateSMA returns the mean of the last window prices; ok is false
// while fewer than window prices are available.
func (b *SMABot) CalculateSMA(prices []float64, window int) (float64, bool) {
	v := ta.SMA(prices, window)
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// DecideAndTrade evaluates one tick: sweep stop losses, then act on the
// SMA crossover. Exactly one action fires per tick; ticks where either
// SMA lacks history hold. Bar-source failures are returned and end the
// run; position faults degrade to Hold.
func (b *SMABot) DecideAndTrade(ctx context.Context, prices []float64, idx int) (types.BotAction, error) {
	if err := b.mgmt.CloseStopLossPositions(ctx, idx); err != nil {
		return types.Hold, err
	}

	dir, ok := ta.Crossover(prices, b.shortWindow, b.longWindow)
	if !ok || len(prices) == 0 {
		return types.Hold, nil
	}
	price := prices[len(prices)-1]
	hub := b.mgmt.Hub()

	switch {
	case !hub.HasOpenPosition() && dir > 0:
		return b.openPosition(ctx, idx, price), nil
	case hub.HasOpenPosition() && dir < 0:
		return b.closePosition(ctx, idx, price), nil
	}
	return types.Hold, nil
}

func (b *SMABot) openPosition(ctx context.Context, idx int, price float64) types.BotAction {
	p, err := b.mgmt.Hub().OpenNewPosition(price, b.amount, types.StopLoss, types.Long, b.stopLossPercent)
	if err != nil {
		logger.ErrorWithErr(ctx, "Error opening position", err, "index", idx, "price", price)
		return types.Hold
	}
	p.CreatedIdx = idx
	b.lastEntryIdx = idx
	b.history = append(b.history, types.TradeRecord{Type: types.Buy, Index: idx, Price: price})

	logger.Trade(ctx, b.symbol, string(types.Buy), b.amount, price, idx)
	_ = tradelog.Append(tradelog.Entry{
		Symbol: b.symbol,
		Side:   string(types.Buy),
		Index:  idx,
		Amount: b.amount,
		Price:  price,
		Reason: "sma crossover up",
	})
	return types.Buy
}

func (b *SMABot) closePosition(ctx context.Context, idx int, price float64) types.BotAction {
	if err := b.mgmt.Hub().CloseLatestPosition(price); err != nil {
		logger.ErrorWithErr(ctx, "Error closing position", err, "index", idx, "price", price)
		return types.Hold
	}
	b.history = append(b.history, types.TradeRecord{Type: types.Sell, Index: idx, Price: price})

	logger.Trade(ctx, b.symbol, string(types.Sell), b.amount, price, idx)
	_ = tradelog.Append(tradelog.Entry{
		Symbol: b.symbol,
		Side:   string(types.Sell),
		Index:  idx,
		Amount: b.amount,
		Price:  price,
		Reason: "sma crossover down",
	})
	return types.Sell
}

// Run replays the whole bar source tick by tick, starting once the long
// window has history, then force-closes leftovers and realizes P/L.
func (b *SMABot) Run(ctx context.Context) ([]types.TradeRecord, float64, error) {
	prices, err := marketdata.Closes(b.source)
	if err != nil {
		return nil, 0, err
	}
	if len(prices) == 0 {
		return b.history, 0, nil
	}

	for idx := b.longWindow; idx < len(prices); idx++ {
		action, err := b.DecideAndTrade(ctx, prices[:idx+1], idx)
		if err != nil {
			return nil, 0, err
		}
		shortSMA, _ := b.CalculateSMA(prices[:idx+1], b.shortWindow)
		longSMA, _ := b.CalculateSMA(prices[:idx+1], b.longWindow)
		logger.Decision(ctx, b.symbol, string(action), idx, prices[idx],
			"short_sma", shortSMA, "long_sma", longSMA)
		_ = tradelog.AppendDecision(tradelog.DecisionEntry{
			Symbol:   b.symbol,
			Action:   string(action),
			Index:    idx,
			Price:    prices[idx],
			ShortSMA: shortSMA,
			LongSMA:  longSMA,
		})
	}

	lastIdx := len(prices) - 1
	if err := b.mgmt.CloseAllRemaining(ctx, lastIdx); err != nil {
		return nil, 0, err
	}

	total := 0.0
	for _, profit := range b.mgmt.Evaluate() {
		total += profit
	}
	logger.Info(ctx, "Backtest finished",
		"symbol", b.symbol,
		"trades", len(b.history),
		"positions", b.mgmt.Hub().Len(),
		"total_profit_loss", total,
	)
	return b.history, total, nil
}

// Reset returns the bot to its initial state: empty ledger, empty
// trade history.
func (b *SMABot) Reset() {
	b.mgmt.ResetHub()
	b.history = nil
	b.lastEntryIdx = 0
}

func (b *SMABot) TradeHistory() []types.TradeRecord { return b.history }

func (b *SMABot) Positions() []*position.Position { return b.mgmt.Hub().All() }

func (b *SMABot) OpenPositionsCount() int {
	n := 0
	for _, p := range b.Positions() {
		if p.IsOpen {
			n++
		}
	}
	return n
}

// Management exposes the simulation for reporting.
func (b *SMABot) Management() *position.Management { return b.mgmt }

func (b *SMABot) Name() string { return b.name }
