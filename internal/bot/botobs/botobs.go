package botobs

import (
	"context"
	"time"

	"swing-trading-bot/internal/interfaces"
	"swing-trading-bot/internal/logger"
	"swing-trading-bot/internal/position"
	"swing-trading-bot/internal/trace"
	"swing-trading-bot/internal/types"
)

type observableBot struct {
	bot interfaces.Bot
}

var _ interfaces.Bot = (*observableBot)(nil)

// Wrap decorates a bot with spans and timing around its runs.
func Wrap(b interfaces.Bot) interfaces.Bot {
	return &observableBot{bot: b}
}

func (ob *observableBot) DecideAndTrade(ctx context.Context, prices []float64, idx int) (types.BotAction, error) {
	action, err := ob.bot.DecideAndTrade(ctx, prices, idx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Tick failed", err, "index", idx)
		return action, err
	}
	return action, nil
}

func (ob *observableBot) Run(ctx context.Context) ([]types.TradeRecord, float64, error) {
	ctx, span := trace.StartSpan(ctx, "bot.Run")
	defer span.End()

	start := time.Now()
	logger.InfoSkip(ctx, 1, "Starting backtest run")

	history, total, err := ob.bot.Run(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Backtest run failed", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, 0, err
	}

	logger.InfoSkip(ctx, 1, "Backtest run completed",
		"trades", len(history),
		"total_profit_loss", total,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return history, total, nil
}

func (ob *observableBot) Reset() { ob.bot.Reset() }

func (ob *observableBot) TradeHistory() []types.TradeRecord { return ob.bot.TradeHistory() }

func (ob *observableBot) Positions() []*position.Position { return ob.bot.Positions() }

func (ob *observableBot) OpenPositionsCount() int { return ob.bot.OpenPositionsCount() }
