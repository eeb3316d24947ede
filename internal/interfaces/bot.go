package interfaces

import (
	"context"

	"swing-trading-bot/internal/position"
	"swing-trading-bot/internal/types"
)

// Bot is a backtesting trading bot driven tick-by-tick over a bar source.
type Bot interface {
	// DecideAndTrade evaluates one tick and executes at most one action.
	// prices holds closing prices up to and including idx. Bar-source
	// failures are fatal and returned; position-level faults degrade to Hold.
	DecideAndTrade(ctx context.Context, prices []float64, idx int) (types.BotAction, error)

	// Run replays the whole bar source, force-closes leftovers at the end
	// and returns the trade history with the total realized profit.
	Run(ctx context.Context) ([]types.TradeRecord, float64, error)

	// Reset returns the bot to its initial state for a fresh run.
	Reset()

	TradeHistory() []types.TradeRecord
	Positions() []*position.Position
	OpenPositionsCount() int
}
